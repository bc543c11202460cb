package core

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// RGB is an opaque 24-bit color as reported by the terminal.
type RGB struct {
	R, G, B uint8
}

// Fallback terminal colors used when the terminal does not report its own.
var (
	White = RGB{R: 0xff, G: 0xff, B: 0xff}
	Black = RGB{}
)

// ParseHex parses a "#rrggbb" or "rrggbb" color string.
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("color %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex formats the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA converts to an opaque image color.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Blend mixes c toward other by t in [0, 1].
func (c RGB) Blend(other RGB, t float64) RGB {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return other
	}
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return RGB{R: mix(c.R, other.R), G: mix(c.G, other.G), B: mix(c.B, other.B)}
}
