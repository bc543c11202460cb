package tty

import (
	"errors"
	"io"
)

// Terminal modes toggled around a session.
const (
	enterAltScreen = "\x1b[?1049h"
	exitAltScreen  = "\x1b[?1049l"
	hideCursor     = "\x1b[?25l"
	showCursor     = "\x1b[?25h"
)

// Console is what a session needs from the terminal.
type Console interface {
	io.Writer
	MakeRaw() error
	Restore() error
}

// WithSession runs fn with the terminal in raw mode, on the alternate
// screen and with the cursor hidden. The previous state is restored when
// fn returns, fails or panics.
func WithSession(c Console, fn func() error) (err error) {
	if err := c.MakeRaw(); err != nil {
		return err
	}
	defer func() {
		_, werr := io.WriteString(c, showCursor+exitAltScreen)
		err = errors.Join(err, werr, c.Restore())
	}()

	if _, err := io.WriteString(c, enterAltScreen+hideCursor); err != nil {
		return err
	}
	return fn()
}
