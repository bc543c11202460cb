// Package core provides fundamental types and utilities shared by the puzzle,
// the tile pipeline and the terminal layers. It contains no external
// dependencies (especially no Bubble Tea) to keep game logic pure and testable.
package core

// Direction is one of the four orthogonal board directions.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists all directions in the priority order used when a single
// key tries every direction (up, down, left, right).
var Directions = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Delta returns the column and row offset of one step in this direction.
func (d Direction) Delta() (dc, dr int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// Pos is a (column, row) coordinate on a square board.
type Pos struct {
	Col, Row int
}

// Step returns the position one step away in the given direction.
func (p Pos) Step(d Direction) Pos {
	dc, dr := d.Delta()
	return Pos{Col: p.Col + dc, Row: p.Row + dr}
}

// In reports whether the position lies inside an n×n board.
func (p Pos) In(n int) bool {
	return p.Col >= 0 && p.Col < n && p.Row >= 0 && p.Row < n
}

// Index returns the row-major slot index of the position on an n×n board.
func (p Pos) Index(n int) int {
	return p.Row*n + p.Col
}

// PosOf converts a row-major slot index back into a position.
func PosOf(index, n int) Pos {
	return Pos{Col: index % n, Row: index / n}
}

// Rect represents an axis-aligned pixel rectangle.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Inset shrinks the rectangle by d on every side.
func (r Rect) Inset(d int) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
