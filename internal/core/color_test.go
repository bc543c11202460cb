package core

import "testing"

func TestParseHex(t *testing.T) {
	tests := []struct {
		in       string
		expected RGB
		wantErr  bool
	}{
		{"#ffffff", White, false},
		{"000000", Black, false},
		{"#1a2B3c", RGB{0x1a, 0x2b, 0x3c}, false},
		{"#fff", RGB{}, true},
		{"#gggggg", RGB{}, true},
	}

	for _, tc := range tests {
		result, err := ParseHex(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseHex(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && result != tc.expected {
			t.Errorf("ParseHex(%q) = %v, expected %v", tc.in, result, tc.expected)
		}
	}
}

func TestHexRoundTrip(t *testing.T) {
	c := RGB{R: 0x12, G: 0xab, B: 0x09}
	if c.Hex() != "#12ab09" {
		t.Errorf("Hex() = %q, expected #12ab09", c.Hex())
	}
	back, err := ParseHex(c.Hex())
	if err != nil || back != c {
		t.Errorf("ParseHex(Hex()) = %v, %v", back, err)
	}
}

func TestBlend(t *testing.T) {
	if got := Black.Blend(White, 0); got != Black {
		t.Errorf("Blend(0) = %v, expected black", got)
	}
	if got := Black.Blend(White, 1); got != White {
		t.Errorf("Blend(1) = %v, expected white", got)
	}
	if got := Black.Blend(White, 0.25); got != (RGB{64, 64, 64}) {
		t.Errorf("Blend(0.25) = %v, expected {64 64 64}", got)
	}
}
