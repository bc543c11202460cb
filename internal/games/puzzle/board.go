// Package puzzle implements the sliding-tile picture puzzle: the square board
// with its single gap, the slide move, the goal test, and a shuffler that only
// produces boards reachable from the goal.
package puzzle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jerch/sixel-puzzle/internal/core"
)

// Tile identifies the source picture region a slot depicts.
// Identity i belongs at row-major slot i in the solved picture.
type Tile int

// Empty marks the single gap on the board.
const Empty Tile = -1

// ErrInvalidBoard is returned when slots violate the board invariants.
var ErrInvalidBoard = errors.New("puzzle: invalid board")

// Board is a square grid of N*N slots in row-major order.
// Exactly one slot holds Empty; every other slot holds a distinct tile.
type Board struct {
	n     int
	slots []Tile
}

// NewBoard validates slots and wraps them in a Board.
// The slice is copied.
func NewBoard(n int, slots []Tile) (*Board, error) {
	if n < core.MinLevel {
		return nil, fmt.Errorf("%w: level %d is below %d", ErrInvalidBoard, n, core.MinLevel)
	}
	if len(slots) != n*n {
		return nil, fmt.Errorf("%w: want %d slots, got %d", ErrInvalidBoard, n*n, len(slots))
	}

	empties := 0
	seen := make([]bool, n*n)
	for i, t := range slots {
		if t == Empty {
			empties++
			continue
		}
		if t < 0 || int(t) >= n*n {
			return nil, fmt.Errorf("%w: tile %d at slot %d out of range", ErrInvalidBoard, t, i)
		}
		if seen[t] {
			return nil, fmt.Errorf("%w: tile %d appears twice", ErrInvalidBoard, t)
		}
		seen[t] = true
	}
	if empties != 1 {
		return nil, fmt.Errorf("%w: want exactly one empty slot, got %d", ErrInvalidBoard, empties)
	}

	b := &Board{n: n, slots: make([]Tile, len(slots))}
	copy(b.slots, slots)
	return b, nil
}

// GoalBoard returns the solved arrangement with the gap at slot empty.
func GoalBoard(n, empty int) *Board {
	b := &Board{n: n, slots: make([]Tile, n*n)}
	for i := range b.slots {
		b.slots[i] = Tile(i)
	}
	b.slots[empty] = Empty
	return b
}

// Level returns the board side length.
func (b *Board) Level() int {
	return b.n
}

// At returns the tile at the given position.
func (b *Board) At(p core.Pos) Tile {
	return b.slots[p.Index(b.n)]
}

// Index returns the tile at a row-major slot index.
func (b *Board) Index(i int) Tile {
	return b.slots[i]
}

// Slots returns a copy of the row-major slots.
func (b *Board) Slots() []Tile {
	out := make([]Tile, len(b.slots))
	copy(out, b.slots)
	return out
}

// EmptyIndex returns the slot index of the gap.
func (b *Board) EmptyIndex() int {
	for i, t := range b.slots {
		if t == Empty {
			return i
		}
	}
	return -1
}

// Missing returns the identity of the tile that was removed to make the gap.
// On a solved board the gap sits exactly at this identity's home slot.
func (b *Board) Missing() Tile {
	present := make([]bool, len(b.slots))
	for _, t := range b.slots {
		if t != Empty {
			present[t] = true
		}
	}
	for i, ok := range present {
		if !ok {
			return Tile(i)
		}
	}
	return Empty
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	c := &Board{n: b.n, slots: make([]Tile, len(b.slots))}
	copy(c.slots, b.slots)
	return c
}

// Equal reports whether two boards hold the same arrangement.
func (b *Board) Equal(other *Board) bool {
	if b.n != other.n {
		return false
	}
	for i := range b.slots {
		if b.slots[i] != other.slots[i] {
			return false
		}
	}
	return true
}

// IsGoal reports whether every tile sits at its home slot.
// The gap is not checked.
func (b *Board) IsGoal() bool {
	for i, t := range b.slots {
		if t != Empty && int(t) != i {
			return false
		}
	}
	return true
}

// Slide pushes the tile at active one step in dir, together with every tile
// between it and the nearest gap further along the same line.
// The gap ends up at active and the returned position follows the pushed tile.
// If no gap lies in line between active and the board edge, the board is left
// untouched and false is returned.
func (b *Board) Slide(active core.Pos, dir core.Direction) (core.Pos, bool) {
	if !active.In(b.n) || b.At(active) == Empty {
		return active, false
	}

	// Nearest gap in line wins.
	steps := 0
	for p := active.Step(dir); p.In(b.n); p = p.Step(dir) {
		steps++
		if b.At(p) == Empty {
			break
		}
		if !p.Step(dir).In(b.n) {
			return active, false
		}
	}
	if steps == 0 {
		return active, false
	}

	dc, dr := dir.Delta()
	at := func(k int) int {
		return core.Pos{Col: active.Col + k*dc, Row: active.Row + k*dr}.Index(b.n)
	}
	for k := steps; k > 0; k-- {
		b.slots[at(k)] = b.slots[at(k-1)]
	}
	b.slots[at(0)] = Empty

	return active.Step(dir), true
}

// String renders the board as a grid of identities with "." for the gap.
func (b *Board) String() string {
	var sb strings.Builder
	width := len(fmt.Sprint(b.n*b.n - 1))
	for r := 0; r < b.n; r++ {
		if r > 0 {
			sb.WriteRune('\n')
		}
		for c := 0; c < b.n; c++ {
			if c > 0 {
				sb.WriteRune(' ')
			}
			t := b.slots[r*b.n+c]
			if t == Empty {
				fmt.Fprintf(&sb, "%*s", width, ".")
			} else {
				fmt.Fprintf(&sb, "%*d", width, t)
			}
		}
	}
	return sb.String()
}
