// Package raster turns images into terminal graphics by piping them
// through an external sixel encoder.
package raster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os/exec"
	"strings"
)

var (
	// ErrEncoderFailed is returned when the encoder ran but exited non-zero.
	ErrEncoderFailed = errors.New("raster: encoder failed")

	// ErrEncoderStart is returned when the encoder could not be started.
	ErrEncoderStart = errors.New("raster: cannot start encoder")
)

// stderrLimit bounds how much encoder stderr is kept for error messages.
const stderrLimit = 512

// Rasterizer draws an image at the current cursor position of w.
type Rasterizer interface {
	Render(ctx context.Context, w io.Writer, img image.Image) error
}

// Exec runs an encoder process for every render. The image is sent to
// its stdin as PNG and its stdout goes to the terminal unchanged.
type Exec struct {
	Path string
	Args []string
}

// Render encodes img, runs the encoder and waits for it to exit.
func (e *Exec) Render(ctx context.Context, w io.Writer, img image.Image) error {
	var in bytes.Buffer
	if err := png.Encode(&in, img); err != nil {
		return fmt.Errorf("raster: encode png: %w", err)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.Path, e.Args...)
	cmd.Stdin = &in
	cmd.Stdout = w
	cmd.Stderr = &limitedWriter{buf: &stderr, left: stderrLimit}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w %s: %v", ErrEncoderStart, e.Path, err)
	}
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg := strings.TrimSpace(stderr.String())
			return fmt.Errorf("%w: %s exited with status %d: %s", ErrEncoderFailed, e.Path, exitErr.ExitCode(), msg)
		}
		return fmt.Errorf("raster: %s: %w", e.Path, err)
	}
	return nil
}

// String returns the command line, for logs.
func (e *Exec) String() string {
	return strings.Join(append([]string{e.Path}, e.Args...), " ")
}

// limitedWriter keeps the first bytes written and discards the rest.
type limitedWriter struct {
	buf  *bytes.Buffer
	left int
}

func (l *limitedWriter) Write(p []byte) (int, error) {
	if l.left > 0 {
		n := min(len(p), l.left)
		l.buf.Write(p[:n])
		l.left -= n
	}
	return len(p), nil
}
