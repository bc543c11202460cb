package config

import (
	_ "embed"

	"github.com/jerch/sixel-puzzle/internal/core"
)

//go:embed defaults/puzzle.yaml
var defaultPuzzleYAML []byte

// DefaultPuzzleConfig returns the default puzzle configuration.
func DefaultPuzzleConfig() PuzzleConfig {
	return PuzzleConfig{
		Level: core.DefaultLevel,
		Encoder: EncoderConfig{
			Backend: "img2sixel",
		},
		Terminal: TerminalConfig{
			QueryTimeoutMS: 50,
			Foreground:     "#ffffff",
			Background:     "#000000",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
