package termcap

import (
	"bytes"
	"strconv"

	"github.com/jerch/sixel-puzzle/internal/core"
)

// Query sequences and the reply envelopes they are answered with.
const (
	// DA1, answered by CSI ? Pn ; ... c
	QueryDeviceAttributes = "\x1b[c"
	// Text area in cells, answered by CSI 8 ; rows ; cols t
	QueryTextAreaCells = "\x1b[18t"
	// Text area in pixels, answered by CSI 4 ; height ; width t
	QueryTextAreaPixels = "\x1b[14t"
	// XTSMGRAPHICS read of the maximum sixel geometry, answered by CSI ? 2 ; Ps ; w ; h S
	QuerySixelGeometry = "\x1b[?2;1S"
	// XTSMGRAPHICS read of the color register count, answered by CSI ? 1 ; Ps ; n S
	QueryPaletteSize = "\x1b[?1;1S"
	// XTSMGRAPHICS set of the color register count, answered like QueryPaletteSize
	SetPaletteSize = "\x1b[?1;3;256S"
	// OSC 10 / OSC 11 default color reports
	QueryForeground = "\x1b]10;?\x1b\\"
	QueryBackground = "\x1b]11;?\x1b\\"
)

// Sixel graphics attribute in the DA1 report.
const sixelAttribute = 4

// Graphics attribute items of XTSMGRAPHICS.
const (
	graphicsPalette  = 1
	graphicsGeometry = 2
)

// parseParams splits a semicolon separated list of decimal parameters.
func parseParams(body []byte) ([]int, bool) {
	if len(body) == 0 {
		return nil, false
	}
	parts := bytes.Split(body, []byte{';'})
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(string(p))
		if err != nil || v < 0 {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// parseCSI checks the reply against prefix and final byte and returns its
// numeric parameters.
func parseCSI(reply []byte, prefix string, final byte) ([]int, bool) {
	if len(reply) < len(prefix)+1 || !bytes.HasPrefix(reply, []byte(prefix)) || reply[len(reply)-1] != final {
		return nil, false
	}
	return parseParams(reply[len(prefix) : len(reply)-1])
}

// ParseDeviceAttributes reports whether a DA1 reply lists sixel support.
func ParseDeviceAttributes(reply []byte) bool {
	params, ok := parseCSI(reply, "\x1b[?", 'c')
	if !ok {
		return false
	}
	for _, p := range params[1:] {
		if p == sixelAttribute {
			return true
		}
	}
	return false
}

// ParseWindowReport extracts the two values of a CSI code ; a ; b t report.
func ParseWindowReport(reply []byte, code int) (a, b int, ok bool) {
	params, ok := parseCSI(reply, "\x1b[", 't')
	if !ok || len(params) != 3 || params[0] != code {
		return 0, 0, false
	}
	return params[1], params[2], true
}

// ParseGraphicsReply extracts the values of a successful XTSMGRAPHICS reply
// for the given item.
func ParseGraphicsReply(reply []byte, item int) ([]int, bool) {
	params, ok := parseCSI(reply, "\x1b[?", 'S')
	if !ok || len(params) < 3 || params[0] != item || params[1] != 0 {
		return nil, false
	}
	return params[2:], true
}

// ParseColorReply extracts the color of an OSC 10/11 report of the form
// OSC slot ; rgb:R/G/B ST, terminated by ESC \ or BEL.
func ParseColorReply(reply []byte, slot int) (core.RGB, bool) {
	prefix := []byte("\x1b]" + strconv.Itoa(slot) + ";")
	if !bytes.HasPrefix(reply, prefix) {
		return core.RGB{}, false
	}
	body := reply[len(prefix):]
	switch {
	case bytes.HasSuffix(body, []byte("\x1b\\")):
		body = body[:len(body)-2]
	case bytes.HasSuffix(body, []byte("\a")):
		body = body[:len(body)-1]
	default:
		return core.RGB{}, false
	}
	if !bytes.HasPrefix(body, []byte("rgb:")) {
		return core.RGB{}, false
	}

	parts := bytes.Split(body[len("rgb:"):], []byte{'/'})
	if len(parts) != 3 {
		return core.RGB{}, false
	}
	var ch [3]uint8
	for i, p := range parts {
		v, ok := scaleHex(p)
		if !ok {
			return core.RGB{}, false
		}
		ch[i] = v
	}
	return core.RGB{R: ch[0], G: ch[1], B: ch[2]}, true
}

// scaleHex converts a 1 to 4 digit hex channel to 8 bits.
func scaleHex(p []byte) (uint8, bool) {
	if len(p) < 1 || len(p) > 4 {
		return 0, false
	}
	v, err := strconv.ParseUint(string(p), 16, 16)
	if err != nil {
		return 0, false
	}
	max := uint64(1)<<(4*len(p)) - 1
	return uint8((v*255 + max/2) / max), true
}
