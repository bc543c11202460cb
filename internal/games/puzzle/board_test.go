package puzzle

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/jerch/sixel-puzzle/internal/core"
)

// tiles builds slots from ints, using -1 for the gap.
func tiles(vals ...int) []Tile {
	out := make([]Tile, len(vals))
	for i, v := range vals {
		out[i] = Tile(v)
	}
	return out
}

func mustBoard(t *testing.T, n int, vals ...int) *Board {
	t.Helper()
	b, err := NewBoard(n, tiles(vals...))
	if err != nil {
		t.Fatalf("NewBoard() failed: %v", err)
	}
	return b
}

func TestNewBoardValidation(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		slots   []Tile
		wantErr bool
	}{
		{"valid 2x2", 2, tiles(0, 1, 2, -1), false},
		{"valid 3x3 gap in middle", 3, tiles(0, 1, 2, 3, -1, 5, 6, 7, 8), false},
		{"no gap", 2, tiles(0, 1, 2, 3), true},
		{"two gaps", 2, tiles(0, -1, 2, -1), true},
		{"duplicate tile", 2, tiles(0, 0, 2, -1), true},
		{"tile out of range", 2, tiles(0, 1, 4, -1), true},
		{"wrong slot count", 2, tiles(0, 1, -1), true},
		{"level too small", 1, tiles(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBoard(tt.n, tt.slots)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewBoard() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidBoard) {
				t.Errorf("NewBoard() error = %v, want ErrInvalidBoard", err)
			}
		})
	}
}

func TestNewBoardCopiesSlots(t *testing.T) {
	slots := tiles(0, 1, 2, -1)
	b, err := NewBoard(2, slots)
	if err != nil {
		t.Fatalf("NewBoard() failed: %v", err)
	}
	slots[0] = 3
	if b.Index(0) != 0 {
		t.Error("Board should not alias the caller's slice")
	}
}

func TestSlide(t *testing.T) {
	tests := []struct {
		name       string
		slots      []int
		active     core.Pos
		dir        core.Direction
		expected   []int
		wantActive core.Pos
		wantOK     bool
	}{
		{
			name:       "right into adjacent gap",
			slots:      []int{0, 1, 2, 3, -1, 5, 6, 7, 8},
			active:     core.Pos{Col: 0, Row: 1},
			dir:        core.DirRight,
			expected:   []int{0, 1, 2, -1, 3, 5, 6, 7, 8},
			wantActive: core.Pos{Col: 1, Row: 1},
			wantOK:     true,
		},
		{
			name:       "right pushes two tiles",
			slots:      []int{0, 1, -1, 3, 4, 5, 6, 7, 8},
			active:     core.Pos{Col: 0, Row: 0},
			dir:        core.DirRight,
			expected:   []int{-1, 0, 1, 3, 4, 5, 6, 7, 8},
			wantActive: core.Pos{Col: 1, Row: 0},
			wantOK:     true,
		},
		{
			name:       "left pushes two tiles",
			slots:      []int{0, 1, 2, 3, 4, 5, -1, 7, 8},
			active:     core.Pos{Col: 2, Row: 2},
			dir:        core.DirLeft,
			expected:   []int{0, 1, 2, 3, 4, 5, 7, 8, -1},
			wantActive: core.Pos{Col: 1, Row: 2},
			wantOK:     true,
		},
		{
			name:       "down pushes column",
			slots:      []int{0, 1, 2, 3, 4, 5, 6, -1, 8},
			active:     core.Pos{Col: 1, Row: 0},
			dir:        core.DirDown,
			expected:   []int{0, -1, 2, 3, 1, 5, 6, 4, 8},
			wantActive: core.Pos{Col: 1, Row: 1},
			wantOK:     true,
		},
		{
			name:       "up into adjacent gap",
			slots:      []int{0, 1, 2, 3, 4, -1, 6, 7, 8},
			active:     core.Pos{Col: 2, Row: 2},
			dir:        core.DirUp,
			expected:   []int{0, 1, 2, 3, 4, 8, 6, 7, -1},
			wantActive: core.Pos{Col: 2, Row: 1},
			wantOK:     true,
		},
		{
			name:       "no gap in line",
			slots:      []int{0, 1, 2, 3, 4, 5, 6, 7, -1},
			active:     core.Pos{Col: 0, Row: 0},
			dir:        core.DirRight,
			expected:   []int{0, 1, 2, 3, 4, 5, 6, 7, -1},
			wantActive: core.Pos{Col: 0, Row: 0},
			wantOK:     false,
		},
		{
			name:       "gap behind the tile",
			slots:      []int{-1, 1, 2, 3, 4, 5, 6, 7, 8},
			active:     core.Pos{Col: 1, Row: 0},
			dir:        core.DirRight,
			expected:   []int{-1, 1, 2, 3, 4, 5, 6, 7, 8},
			wantActive: core.Pos{Col: 1, Row: 0},
			wantOK:     false,
		},
		{
			name:       "toward the wall",
			slots:      []int{0, 1, 2, 3, 4, 5, 6, 7, -1},
			active:     core.Pos{Col: 2, Row: 0},
			dir:        core.DirRight,
			expected:   []int{0, 1, 2, 3, 4, 5, 6, 7, -1},
			wantActive: core.Pos{Col: 2, Row: 0},
			wantOK:     false,
		},
		{
			name:       "active on the gap",
			slots:      []int{0, 1, 2, 3, -1, 5, 6, 7, 8},
			active:     core.Pos{Col: 1, Row: 1},
			dir:        core.DirRight,
			expected:   []int{0, 1, 2, 3, -1, 5, 6, 7, 8},
			wantActive: core.Pos{Col: 1, Row: 1},
			wantOK:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBoard(t, 3, tt.slots...)
			active, ok := b.Slide(tt.active, tt.dir)
			if ok != tt.wantOK {
				t.Errorf("Slide() ok = %v, want %v", ok, tt.wantOK)
			}
			if active != tt.wantActive {
				t.Errorf("Slide() active = %v, want %v", active, tt.wantActive)
			}
			want := mustBoard(t, 3, tt.expected...)
			if !b.Equal(want) {
				t.Errorf("Slide(): got\n%v\nwant\n%v", b, want)
			}
		})
	}
}

// transpose swaps rows and columns.
func transpose(n int, slots []Tile) []Tile {
	out := make([]Tile, len(slots))
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			out[c*n+r] = slots[r*n+c]
		}
	}
	return out
}

// slideRowReference is the horizontal scan-and-shift on a single row.
func slideRowReference(row []Tile, col int, right bool) (int, bool) {
	if row[col] == Empty {
		return col, false
	}
	if right {
		for e := col + 1; e < len(row); e++ {
			if row[e] == Empty {
				copy(row[col+1:e+1], row[col:e])
				row[col] = Empty
				return col + 1, true
			}
		}
		return col, false
	}
	for e := col - 1; e >= 0; e-- {
		if row[e] == Empty {
			copy(row[e:col], row[e+1:col+1])
			row[col] = Empty
			return col - 1, true
		}
	}
	return col, false
}

// slideViaTranspose moves vertically by transposing, sliding horizontally,
// and transposing back.
func slideViaTranspose(n int, slots []Tile, active core.Pos, dir core.Direction) ([]Tile, core.Pos, bool) {
	switch dir {
	case core.DirLeft, core.DirRight:
		out := make([]Tile, len(slots))
		copy(out, slots)
		row := out[active.Row*n : (active.Row+1)*n]
		col, ok := slideRowReference(row, active.Col, dir == core.DirRight)
		return out, core.Pos{Col: col, Row: active.Row}, ok
	default:
		tr := transpose(n, slots)
		row := tr[active.Col*n : (active.Col+1)*n]
		r, ok := slideRowReference(row, active.Row, dir == core.DirDown)
		return transpose(n, tr), core.Pos{Col: active.Col, Row: r}, ok
	}
}

func TestSlideMatchesTransposeDefinition(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, n := range []int{2, 3, 4, 5} {
		for round := 0; round < 50; round++ {
			slots := make([]Tile, n*n)
			for i, v := range rng.Perm(n * n) {
				slots[i] = Tile(v)
			}
			slots[rng.Intn(n*n)] = Empty
			base, err := NewBoard(n, slots)
			if err != nil {
				t.Fatalf("NewBoard() failed: %v", err)
			}

			for i := 0; i < n*n; i++ {
				active := core.PosOf(i, n)
				for _, dir := range core.Directions {
					want, wantActive, wantOK := slideViaTranspose(n, base.Slots(), active, dir)

					b := base.Clone()
					gotActive, gotOK := b.Slide(active, dir)
					if gotOK != wantOK || gotActive != wantActive {
						t.Fatalf("n=%d %v from %v: got (%v, %v), want (%v, %v)\n%v",
							n, dir, active, gotActive, gotOK, wantActive, wantOK, base)
					}
					for k, tile := range b.Slots() {
						if tile != want[k] {
							t.Fatalf("n=%d %v from %v: slot %d = %d, want %d\n%v",
								n, dir, active, k, tile, want[k], base)
						}
					}
				}
			}
		}
	}
}

func TestSlideTouchesOnlyTheSegment(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	n := 4

	for round := 0; round < 200; round++ {
		slots := make([]Tile, n*n)
		for i, v := range rng.Perm(n * n) {
			slots[i] = Tile(v)
		}
		slots[rng.Intn(n*n)] = Empty
		before, _ := NewBoard(n, slots)

		b := before.Clone()
		active := core.PosOf(rng.Intn(n*n), n)
		dir := core.Directions[rng.Intn(4)]
		oldGap := core.PosOf(before.EmptyIndex(), n)

		if _, ok := b.Slide(active, dir); !ok {
			if !b.Equal(before) {
				t.Fatalf("rejected slide mutated the board\nbefore:\n%v\nafter:\n%v", before, b)
			}
			continue
		}

		// Board invariants survive.
		if _, err := NewBoard(n, b.Slots()); err != nil {
			t.Fatalf("slide broke the board: %v", err)
		}

		// New gap is where the pushed tile was.
		if b.At(active) != Empty {
			t.Fatalf("gap should move to the active slot %v\n%v", active, b)
		}

		// Only slots on the line from the new gap to the old gap change.
		onSegment := map[int]bool{}
		for p := active; ; p = p.Step(dir) {
			onSegment[p.Index(n)] = true
			if p == oldGap {
				break
			}
		}
		for i := range slots {
			if !onSegment[i] && b.Index(i) != before.Index(i) {
				t.Fatalf("slot %d changed outside the segment\nbefore:\n%v\nafter:\n%v", i, before, b)
			}
		}
	}
}

func TestIsGoal(t *testing.T) {
	for n := 2; n <= 4; n++ {
		for gap := 0; gap < n*n; gap++ {
			if !GoalBoard(n, gap).IsGoal() {
				t.Errorf("GoalBoard(%d, %d) should be goal", n, gap)
			}
		}
	}

	// Two tiles swapped.
	if mustBoard(t, 3, 1, 0, 2, 3, 4, 5, 6, 7, -1).IsGoal() {
		t.Error("board with swapped tiles should not be goal")
	}

	// After moving a tile off its home slot.
	b := GoalBoard(3, 4)
	if _, ok := b.Slide(core.Pos{Col: 0, Row: 1}, core.DirRight); !ok {
		t.Fatal("slide into the gap should succeed")
	}
	if b.IsGoal() {
		t.Errorf("board after one slide should not be goal\n%v", b)
	}
}

func TestMissing(t *testing.T) {
	b := mustBoard(t, 2, 3, -1, 0, 1)
	if b.Missing() != 2 {
		t.Errorf("Missing() = %d, want 2", b.Missing())
	}
	if b.EmptyIndex() != 1 {
		t.Errorf("EmptyIndex() = %d, want 1", b.EmptyIndex())
	}
}

func TestBoardString(t *testing.T) {
	b := mustBoard(t, 2, 0, 1, -1, 2)
	expected := "0 1\n. 2"
	if b.String() != expected {
		t.Errorf("String() = %q, want %q", b.String(), expected)
	}
}
