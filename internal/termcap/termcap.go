// Package termcap negotiates what the terminal can draw: sixel support, the
// usable pixel canvas, the sixel palette size and the default colors.
// Every query is a bounded request/response round trip; replies that are
// missing or malformed count as "not supported", never as errors.
package termcap

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jerch/sixel-puzzle/internal/core"
)

// Reasons a session cannot start.
var (
	ErrNoSixel    = errors.New("termcap: terminal does not support sixel graphics")
	ErrNoGeometry = errors.New("termcap: cannot determine the terminal's pixel geometry")
	ErrPalette    = errors.New("termcap: cannot raise the sixel palette to 256 colors")
)

// RequiredPalette is the number of sixel color registers rendering needs.
const RequiredPalette = 256

// kernelPixelCorrection compensates for terminals that include padding in
// the pixel size reported through the kernel window size.
const kernelPixelCorrection = 4

// DefaultTimeout bounds the wait for each terminal reply.
const DefaultTimeout = 50 * time.Millisecond

// Terminal is the control channel the negotiator talks to.
type Terminal interface {
	// Query writes seq and returns whatever the terminal answered within
	// timeout, or nil if it did not answer.
	Query(seq string, timeout time.Duration) []byte

	// KernelSize returns the window size reported by the tty driver.
	KernelSize() (Geometry, error)
}

// Geometry is a text area measured in cells and pixels.
// Zero means unknown.
type Geometry struct {
	Rows, Cols    int
	Width, Height int
}

// Complete reports whether all four values are known.
func (g Geometry) Complete() bool {
	return g.Rows > 0 && g.Cols > 0 && g.Width > 0 && g.Height > 0
}

// HasPixels reports whether both pixel values are known.
func (g Geometry) HasPixels() bool {
	return g.Width > 0 && g.Height > 0
}

// CellSize returns the pixel size of one character cell.
func (g Geometry) CellSize() (w, h int) {
	if g.Rows == 0 || g.Cols == 0 {
		return 0, 0
	}
	return g.Width / g.Cols, g.Height / g.Rows
}

// Capabilities is the snapshot negotiated once at startup.
type Capabilities struct {
	Sixel       bool
	PaletteSize int // 0 when the terminal did not report it
	Geometry    Geometry
	Foreground  core.RGB
	Background  core.RGB
}

// Canvas returns the drawable pixel size after reserving text rows at the bottom.
func (c Capabilities) Canvas(reserveRows int) (w, h int) {
	_, cellH := c.Geometry.CellSize()
	h = core.Clamp(c.Geometry.Height-reserveRows*cellH, 0, c.Geometry.Height)
	return c.Geometry.Width, h
}

// Options tune the negotiation.
type Options struct {
	Timeout    time.Duration
	Foreground core.RGB // used when the terminal does not report its own
	Background core.RGB
	Logger     *log.Logger
}

// DefaultOptions returns white-on-black fallbacks and the default timeout.
func DefaultOptions() Options {
	return Options{
		Timeout:    DefaultTimeout,
		Foreground: core.White,
		Background: core.Black,
	}
}

// Negotiate runs the capability handshake.
// The returned error is one of ErrNoSixel, ErrNoGeometry or ErrPalette.
func Negotiate(t Terminal, opts Options) (Capabilities, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var caps Capabilities

	da := t.Query(QueryDeviceAttributes, opts.Timeout)
	logger.Debug("device attributes", "reply", fmt.Sprintf("%q", da))
	caps.Sixel = ParseDeviceAttributes(da)
	if !caps.Sixel {
		return caps, ErrNoSixel
	}

	high := queryTextArea(t, opts.Timeout)
	kernel, err := t.KernelSize()
	if err != nil {
		logger.Debug("kernel window size unavailable", "error", err)
		kernel = Geometry{}
	}
	geo, ok := ResolveGeometry(high, kernel)
	logger.Debug("geometry", "reported", high, "kernel", kernel, "resolved", geo)
	if !ok {
		return caps, ErrNoGeometry
	}
	if vals, ok := ParseGraphicsReply(t.Query(QuerySixelGeometry, opts.Timeout), graphicsGeometry); ok && len(vals) == 2 {
		geo = ClampGeometry(geo, vals[0], vals[1])
		logger.Debug("sixel geometry limit", "width", vals[0], "height", vals[1], "clamped", geo)
	}
	caps.Geometry = geo

	size, err := securePalette(t, opts.Timeout)
	logger.Debug("palette", "size", size)
	if err != nil {
		return caps, err
	}
	caps.PaletteSize = size

	caps.Foreground = opts.Foreground
	if c, ok := ParseColorReply(t.Query(QueryForeground, opts.Timeout), 10); ok {
		caps.Foreground = c
	}
	caps.Background = opts.Background
	if c, ok := ParseColorReply(t.Query(QueryBackground, opts.Timeout), 11); ok {
		caps.Background = c
	}
	logger.Debug("colors", "fg", caps.Foreground.Hex(), "bg", caps.Background.Hex())

	return caps, nil
}

// queryTextArea asks the terminal itself for cell and pixel dimensions.
func queryTextArea(t Terminal, timeout time.Duration) Geometry {
	var g Geometry
	if rows, cols, ok := ParseWindowReport(t.Query(QueryTextAreaCells, timeout), 8); ok {
		g.Rows, g.Cols = rows, cols
	}
	if h, w, ok := ParseWindowReport(t.Query(QueryTextAreaPixels, timeout), 4); ok {
		g.Height, g.Width = h, w
	}
	return g
}

// ResolveGeometry picks the terminal-reported geometry when it is complete
// and otherwise falls back to the kernel window size. Kernel pixel values
// are reduced by a fixed correction when the terminal reported none itself.
func ResolveGeometry(reported, kernel Geometry) (Geometry, bool) {
	if reported.Complete() {
		return reported, true
	}
	if !kernel.HasPixels() {
		return Geometry{}, false
	}

	g := kernel
	if g.Rows == 0 {
		g.Rows = reported.Rows
	}
	if g.Cols == 0 {
		g.Cols = reported.Cols
	}
	if !reported.HasPixels() {
		g.Width -= kernelPixelCorrection
		g.Height -= kernelPixelCorrection
	}
	if !g.Complete() {
		return Geometry{}, false
	}
	return g, true
}

// ClampGeometry limits the pixel size to the terminal's maximum sixel area,
// each axis independently. Non-positive limits are ignored.
func ClampGeometry(g Geometry, maxW, maxH int) Geometry {
	if maxW > 0 && maxW < g.Width {
		g.Width = maxW
	}
	if maxH > 0 && maxH < g.Height {
		g.Height = maxH
	}
	return g
}

// securePalette reads the palette size and raises it when it is too small.
// An unreported size is returned as 0 without error.
func securePalette(t Terminal, timeout time.Duration) (int, error) {
	vals, ok := ParseGraphicsReply(t.Query(QueryPaletteSize, timeout), graphicsPalette)
	if !ok || len(vals) != 1 {
		return 0, nil
	}
	if vals[0] >= RequiredPalette {
		return vals[0], nil
	}

	vals, ok = ParseGraphicsReply(t.Query(SetPaletteSize, timeout), graphicsPalette)
	if !ok || len(vals) != 1 || vals[0] < RequiredPalette {
		return 0, ErrPalette
	}
	return vals[0], nil
}
