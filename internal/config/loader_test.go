package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/jerch/sixel-puzzle/internal/core"
)

// isolate points HOME and the working directory at empty temp dirs.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(work); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return home, work
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	isolate(t)

	cfg, err := LoadPuzzle("")
	if err != nil {
		t.Fatalf("LoadPuzzle() failed: %v", err)
	}
	def := DefaultPuzzleConfig()
	if cfg.Level != def.Level || cfg.Encoder.Backend != def.Encoder.Backend ||
		cfg.Terminal != def.Terminal || cfg.Log != def.Log || cfg.Storage != def.Storage {
		t.Errorf("embedded config %+v differs from DefaultPuzzleConfig() %+v", cfg, def)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home, work := isolate(t)

	writeFile(t, filepath.Join(work, "configs", "puzzle.yaml"), "level: 5\n")
	cfg, err := LoadPuzzle("")
	if err != nil {
		t.Fatalf("LoadPuzzle() failed: %v", err)
	}
	if cfg.Level != 5 {
		t.Errorf("local config: Level = %d, want 5", cfg.Level)
	}

	writeFile(t, filepath.Join(home, AppDir, "config.yaml"), "level: 7\n")
	cfg, _ = LoadPuzzle("")
	if cfg.Level != 7 {
		t.Errorf("user config should win over local: Level = %d, want 7", cfg.Level)
	}

	custom := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, custom, "level: 9\n")
	cfg, _ = LoadPuzzle(custom)
	if cfg.Level != 9 {
		t.Errorf("custom config should win: Level = %d, want 9", cfg.Level)
	}
}

func TestLoadBrokenUserConfigFallsThrough(t *testing.T) {
	home, work := isolate(t)
	writeFile(t, filepath.Join(home, AppDir, "config.yaml"), "level: [\n")
	writeFile(t, filepath.Join(work, "configs", "puzzle.yaml"), "level: 5\n")

	cfg, err := LoadPuzzle("")
	if err != nil {
		t.Fatalf("LoadPuzzle() failed: %v", err)
	}
	if cfg.Level != 5 {
		t.Errorf("Level = %d, want 5 from the local config", cfg.Level)
	}
}

func TestLoadCustomErrors(t *testing.T) {
	isolate(t)

	if _, err := LoadPuzzle(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	broken := filepath.Join(t.TempDir(), "broken.yaml")
	writeFile(t, broken, "level: [\n")
	if _, err := LoadPuzzle(broken); err == nil {
		t.Error("unparsable custom config should fail")
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	isolate(t)
	custom := filepath.Join(t.TempDir(), "partial.yaml")
	writeFile(t, custom, "encoder:\n  backend: magick\n")

	cfg, err := LoadPuzzle(custom)
	if err != nil {
		t.Fatalf("LoadPuzzle() failed: %v", err)
	}
	if cfg.Encoder.Backend != "magick" {
		t.Errorf("Backend = %q, want magick", cfg.Encoder.Backend)
	}
	if cfg.Level != 3 || cfg.Terminal.QueryTimeoutMS != 50 {
		t.Errorf("unset values should keep defaults, got %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*PuzzleConfig)
	}{
		{"level too small", func(c *PuzzleConfig) { c.Level = 1 }},
		{"no backend", func(c *PuzzleConfig) { c.Encoder.Backend = "" }},
		{"zero timeout", func(c *PuzzleConfig) { c.Terminal.QueryTimeoutMS = 0 }},
		{"bad foreground", func(c *PuzzleConfig) { c.Terminal.Foreground = "white" }},
		{"bad background", func(c *PuzzleConfig) { c.Terminal.Background = "#12345" }},
		{"bad log level", func(c *PuzzleConfig) { c.Log.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultPuzzleConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestAccessors(t *testing.T) {
	cfg := DefaultPuzzleConfig()
	cfg.Terminal.Foreground = "#dddddd"
	cfg.Log.Level = "debug"

	if got := cfg.Terminal.QueryTimeout().Milliseconds(); got != 50 {
		t.Errorf("QueryTimeout() = %dms, want 50ms", got)
	}
	fg, bg, err := cfg.Terminal.Colors()
	if err != nil {
		t.Fatalf("Colors() failed: %v", err)
	}
	if fg != (core.RGB{R: 0xdd, G: 0xdd, B: 0xdd}) || bg != core.Black {
		t.Errorf("Colors() = %v, %v", fg, bg)
	}
	if lvl, _ := cfg.Log.LogLevel(); lvl != log.DebugLevel {
		t.Errorf("LogLevel() = %v, want debug", lvl)
	}
}
