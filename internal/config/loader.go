package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory under the home directory.
const AppDir = ".sixel-puzzle"

// LoadPuzzle loads the puzzle configuration.
// Search order: customPath -> ~/.sixel-puzzle/config.yaml -> ./configs/puzzle.yaml -> embedded default
// Values missing from a file keep their defaults.
func LoadPuzzle(customPath string) (PuzzleConfig, error) {
	cfg := DefaultPuzzleConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if c, ok := parse(data); ok {
				return c, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "puzzle.yaml")); err == nil {
		if c, ok := parse(data); ok {
			return c, nil
		}
	}

	// Use embedded default YAML
	if c, ok := parse(defaultPuzzleYAML); ok {
		return c, nil
	}
	return DefaultPuzzleConfig(), nil // Fallback to hardcoded if embed fails
}

// parse decodes data over the defaults. A broken file is skipped.
func parse(data []byte) (PuzzleConfig, bool) {
	cfg := DefaultPuzzleConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, true
}

// UserPath returns the path of a file in the per-user directory, or empty
// if home is unavailable.
func UserPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDir, filename)
}
