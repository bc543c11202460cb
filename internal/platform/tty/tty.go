// Package tty owns the controlling terminal: raw byte I/O, bounded-wait
// queries and the kernel window size.
package tty

import (
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/jerch/sixel-puzzle/internal/termcap"
)

// Path is the controlling terminal device.
const Path = "/dev/tty"

// ErrNotTerminal is returned when the opened file is not a terminal.
var ErrNotTerminal = errors.New("tty: not a terminal")

// replyBuffer bounds a single query reply.
const replyBuffer = 1024

// TTY is a read/write handle on the terminal device.
type TTY struct {
	f     *os.File
	fd    int
	saved *term.State
}

// Open opens the controlling terminal for reading and writing.
func Open() (*TTY, error) {
	f, err := os.OpenFile(Path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("tty: open %s: %w", Path, err)
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		f.Close()
		return nil, ErrNotTerminal
	}
	return &TTY{f: f, fd: fd}, nil
}

// File returns the underlying device, used as the event loop's input.
func (t *TTY) File() *os.File {
	return t.f
}

// Write sends raw bytes to the terminal.
func (t *TTY) Write(p []byte) (int, error) {
	return t.f.Write(p)
}

// Read reads raw bytes from the terminal.
func (t *TTY) Read(p []byte) (int, error) {
	return t.f.Read(p)
}

// MakeRaw switches the terminal to raw mode, remembering the previous state.
// Calling it twice is a no-op.
func (t *TTY) MakeRaw() error {
	if t.saved != nil {
		return nil
	}
	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("tty: raw mode: %w", err)
	}
	t.saved = state
	return nil
}

// Restore returns the terminal to the state saved by MakeRaw.
func (t *TTY) Restore() error {
	if t.saved == nil {
		return nil
	}
	state := t.saved
	t.saved = nil
	if err := term.Restore(t.fd, state); err != nil {
		return fmt.Errorf("tty: restore: %w", err)
	}
	return nil
}

// Close restores the terminal mode and closes the device.
func (t *TTY) Close() error {
	restoreErr := t.Restore()
	if err := t.f.Close(); err != nil {
		return err
	}
	return restoreErr
}

// Query writes seq and returns the reply that arrives within timeout.
// Input already pending is discarded first so a late answer to an earlier
// query cannot be mistaken for this one. Nil means no answer.
func (t *TTY) Query(seq string, timeout time.Duration) []byte {
	t.drain()

	if _, err := t.f.WriteString(seq); err != nil {
		return nil
	}
	if !t.wait(timeout) {
		return nil
	}

	buf := make([]byte, replyBuffer)
	n, err := unix.Read(t.fd, buf)
	if err != nil || n <= 0 {
		return nil
	}
	return buf[:n]
}

// KernelSize returns the window size known to the tty driver.
func (t *TTY) KernelSize() (termcap.Geometry, error) {
	ws, err := unix.IoctlGetWinsize(t.fd, unix.TIOCGWINSZ)
	if err != nil {
		return termcap.Geometry{}, fmt.Errorf("tty: window size: %w", err)
	}
	return termcap.Geometry{
		Rows:   int(ws.Row),
		Cols:   int(ws.Col),
		Width:  int(ws.Xpixel),
		Height: int(ws.Ypixel),
	}, nil
}

// wait blocks until the terminal is readable or timeout passes.
func (t *TTY) wait(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		ms := int(time.Until(deadline) / time.Millisecond)
		if ms < 0 {
			ms = 0
		}
		fds := []unix.PollFd{{Fd: int32(t.fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, ms)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return err == nil && n > 0 && fds[0].Revents&unix.POLLIN != 0
	}
}

// drain discards input that is already waiting.
func (t *TTY) drain() {
	buf := make([]byte, replyBuffer)
	for t.wait(0) {
		if n, err := unix.Read(t.fd, buf); err != nil || n <= 0 {
			return
		}
	}
}
