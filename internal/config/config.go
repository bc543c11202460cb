// Package config provides YAML-based configuration loading for the puzzle.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jerch/sixel-puzzle/internal/core"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid")

// PuzzleConfig contains all configuration for a puzzle session.
type PuzzleConfig struct {
	Level    int            `yaml:"level"` // tiles per side
	Encoder  EncoderConfig  `yaml:"encoder"`
	Terminal TerminalConfig `yaml:"terminal"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
}

// EncoderConfig selects the sixel encoder.
type EncoderConfig struct {
	Backend string   `yaml:"backend"` // registered backend name
	Path    string   `yaml:"path"`    // overrides the backend's command
	Args    []string `yaml:"args"`    // overrides the backend's arguments
}

// TerminalConfig tunes capability negotiation.
type TerminalConfig struct {
	QueryTimeoutMS int    `yaml:"query_timeout_ms"`
	Foreground     string `yaml:"foreground"` // used when the terminal does not report one
	Background     string `yaml:"background"`
}

// StorageConfig locates the solve records database.
type StorageConfig struct {
	Path string `yaml:"path"` // empty means ~/.sixel-puzzle/records.db
}

// LogConfig defines logging parameters.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty means stderr
}

// QueryTimeout returns the per-query wait as a duration.
func (c TerminalConfig) QueryTimeout() time.Duration {
	return time.Duration(c.QueryTimeoutMS) * time.Millisecond
}

// Colors parses the fallback colors.
func (c TerminalConfig) Colors() (fg, bg core.RGB, err error) {
	if fg, err = core.ParseHex(c.Foreground); err != nil {
		return fg, bg, fmt.Errorf("%w: terminal.foreground: %v", ErrInvalidConfig, err)
	}
	if bg, err = core.ParseHex(c.Background); err != nil {
		return fg, bg, fmt.Errorf("%w: terminal.background: %v", ErrInvalidConfig, err)
	}
	return fg, bg, nil
}

// LogLevel parses the configured log level.
func (c LogConfig) LogLevel() (log.Level, error) {
	lvl, err := log.ParseLevel(c.Level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	return lvl, nil
}

// Validate checks value ranges.
func (c PuzzleConfig) Validate() error {
	if c.Level < core.MinLevel {
		return fmt.Errorf("%w: level %d is below %d", ErrInvalidConfig, c.Level, core.MinLevel)
	}
	if c.Encoder.Backend == "" {
		return fmt.Errorf("%w: encoder.backend is empty", ErrInvalidConfig)
	}
	if c.Terminal.QueryTimeoutMS <= 0 {
		return fmt.Errorf("%w: terminal.query_timeout_ms must be positive", ErrInvalidConfig)
	}
	if _, _, err := c.Terminal.Colors(); err != nil {
		return err
	}
	if _, err := c.Log.LogLevel(); err != nil {
		return err
	}
	return nil
}
