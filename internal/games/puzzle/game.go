package puzzle

import (
	"math/rand"

	"github.com/jerch/sixel-puzzle/internal/core"
)

// Game is the mutable state of one puzzle session: the board, the cursor
// marking the highlighted tile, and the number of accepted slides.
type Game struct {
	board  *Board
	cursor core.Pos
	moves  int
}

// New creates a game over a freshly shuffled board that is not yet solved.
func New(rng *rand.Rand, level int) (*Game, error) {
	b, err := ShuffleUnsolved(rng, level)
	if err != nil {
		return nil, err
	}
	return NewWithBoard(b), nil
}

// NewWithBoard creates a game over a given arrangement with the cursor at
// the top-left slot.
func NewWithBoard(b *Board) *Game {
	return &Game{board: b}
}

// Board returns the current board. Callers must not mutate it.
func (g *Game) Board() *Board {
	return g.board
}

// Level returns the board side length.
func (g *Game) Level() int {
	return g.board.n
}

// Cursor returns the cursor position.
func (g *Game) Cursor() core.Pos {
	return g.cursor
}

// Moves returns the number of accepted slides.
func (g *Game) Moves() int {
	return g.moves
}

// Solved reports whether the board is in goal state.
func (g *Game) Solved() bool {
	return g.board.IsGoal()
}

// Highlighted returns the tile under the cursor, if the cursor is not on the gap.
func (g *Game) Highlighted() (Tile, bool) {
	t := g.board.At(g.cursor)
	return t, t != Empty
}

// MoveCursor moves the cursor one step. Moves off the board are rejected.
func (g *Game) MoveCursor(dir core.Direction) bool {
	next := g.cursor.Step(dir)
	if !next.In(g.board.n) {
		return false
	}
	g.cursor = next
	return true
}

// Slide pushes the highlighted tile toward the gap in dir.
// On success the cursor follows the pushed tile and the move counter grows by one.
func (g *Game) Slide(dir core.Direction) bool {
	next, ok := g.board.Slide(g.cursor, dir)
	if !ok {
		return false
	}
	g.cursor = next
	g.moves++
	return true
}

// SlideAny tries every direction in priority order and applies the first
// slide that succeeds.
func (g *Game) SlideAny() bool {
	for _, dir := range core.Directions {
		if g.Slide(dir) {
			return true
		}
	}
	return false
}
