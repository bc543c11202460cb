package core

// RuntimeConfig contains the per-run settings handed to the game session.
type RuntimeConfig struct {
	ImagePath string // Source picture
	Level     int    // Board side length N
	Seed      int64  // RNG seed, 0 means use current time in platform layer
}

// DefaultLevel is the board side used when none is given.
const DefaultLevel = 3

// MinLevel is the smallest board that makes a playable puzzle.
const MinLevel = 2
