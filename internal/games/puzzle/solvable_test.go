package puzzle

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/jerch/sixel-puzzle/internal/core"
)

// key encodes a board as a compact map key.
func key(b *Board) string {
	buf := make([]byte, len(b.slots))
	for i, t := range b.slots {
		buf[i] = byte(t + 1)
	}
	return string(buf)
}

// reachableFrom explores every board reachable from start by slide moves,
// stopping after maxDepth moves (0 means unbounded).
func reachableFrom(start *Board, maxDepth int) map[string]*Board {
	n := start.n
	seen := map[string]*Board{key(start): start}
	frontier := []*Board{start}

	for depth := 0; len(frontier) > 0 && (maxDepth == 0 || depth < maxDepth); depth++ {
		var next []*Board
		for _, b := range frontier {
			gap := core.PosOf(b.EmptyIndex(), n)
			for _, dir := range core.Directions {
				// Push the neighbor on the far side of dir back into the gap.
				from := gap.Step(dir.Opposite())
				if !from.In(n) {
					continue
				}
				c := b.Clone()
				if _, ok := c.Slide(from, dir); !ok {
					continue
				}
				k := key(c)
				if _, ok := seen[k]; ok {
					continue
				}
				seen[k] = c
				next = append(next, c)
			}
		}
		frontier = next
	}
	return seen
}

func TestPermutationRank(t *testing.T) {
	tests := []struct {
		perm     []int
		expected int
	}{
		{[]int{0, 1, 2, 3}, 0},
		{[]int{0, 1, 3, 2}, 1},
		{[]int{1, 0, 2, 3}, 6},
		{[]int{3, 2, 1, 0}, 23},
		{[]int{2, 0, 1}, 4},
	}

	for _, tt := range tests {
		if got := PermutationRank(tt.perm); got != tt.expected {
			t.Errorf("PermutationRank(%v) = %d, want %d", tt.perm, got, tt.expected)
		}
	}
}

// permutations returns every ordering of 0..n-1.
func permutations(n int) [][]int {
	if n == 0 {
		return [][]int{{}}
	}
	var out [][]int
	for _, p := range permutations(n - 1) {
		for pos := 0; pos <= len(p); pos++ {
			q := make([]int, 0, n)
			q = append(q, p[:pos]...)
			q = append(q, n-1)
			q = append(q, p[pos:]...)
			out = append(out, q)
		}
	}
	return out
}

func TestPermutationRankIsBijective(t *testing.T) {
	seen := make(map[int]bool)
	for _, p := range permutations(4) {
		r := PermutationRank(p)
		if r < 0 || r >= 24 {
			t.Fatalf("PermutationRank(%v) = %d out of range", p, r)
		}
		if seen[r] {
			t.Fatalf("PermutationRank(%v) = %d collides", p, r)
		}
		seen[r] = true
	}
}

func TestSolvable2x2MatchesSearch(t *testing.T) {
	// One reachable set per identity removed to make the gap.
	reach := make([]map[string]*Board, 4)
	for missing := 0; missing < 4; missing++ {
		reach[missing] = reachableFrom(GoalBoard(2, missing), 0)
		if len(reach[missing]) != 12 {
			t.Errorf("goal with gap %d reaches %d boards, want 12", missing, len(reach[missing]))
		}
	}

	checked := 0
	for _, perm := range permutations(4) {
		for gap := 0; gap < 4; gap++ {
			slots := make([]Tile, 4)
			for i, v := range perm {
				slots[i] = Tile(v)
			}
			slots[gap] = Empty
			b := mustBoard(t, 2, intsOf(slots)...)

			got, err := Solvable(b)
			if err != nil {
				t.Fatalf("Solvable() failed: %v", err)
			}
			_, want := reach[perm[gap]][key(b)]
			if got != want {
				t.Errorf("perm %v gap %d: Solvable() = %v, search says %v", perm, gap, got, want)
			}
			checked++
		}
	}
	if checked != 96 {
		t.Errorf("checked %d arrangements, want 96", checked)
	}
}

func intsOf(slots []Tile) []int {
	out := make([]int, len(slots))
	for i, t := range slots {
		out[i] = int(t)
	}
	return out
}

func TestSolvable3x3MatchesExhaustiveSearch(t *testing.T) {
	if testing.Short() {
		t.Skip("exhaustive 3x3 search skipped in short mode")
	}

	reach := reachableFrom(GoalBoard(3, 8), 0)

	// Exactly half of the 9! arrangements with tile 8 removed.
	if len(reach) != 181440 {
		t.Fatalf("reached %d boards, want 181440", len(reach))
	}
	for _, b := range reach {
		if Inversions(b)%2 != 0 {
			t.Fatalf("reachable board has odd inversions:\n%v", b)
		}
		ok, err := Solvable(b)
		if err != nil || !ok {
			t.Fatalf("Solvable() = %v, %v for reachable board:\n%v", ok, err, b)
		}
	}

	// Random arrangements with tile 8 missing: Solvable agrees with the search.
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 500; i++ {
		perm := rng.Perm(8)
		slots := make([]int, 9)
		gap := rng.Intn(9)
		k := 0
		for s := range slots {
			if s == gap {
				slots[s] = -1
				continue
			}
			slots[s] = perm[k]
			k++
		}
		b := mustBoard(t, 3, slots...)
		got, _ := Solvable(b)
		_, want := reach[key(b)]
		if got != want {
			t.Errorf("Solvable() = %v, search says %v for\n%v", got, want, b)
		}
	}
}

func TestSolvable5x5BoundedSearch(t *testing.T) {
	reach := reachableFrom(GoalBoard(5, 12), 10)
	if len(reach) < 100 {
		t.Fatalf("bounded search reached only %d boards", len(reach))
	}
	for _, b := range reach {
		ok, err := Solvable(b)
		if err != nil || !ok {
			t.Fatalf("Solvable() = %v, %v for reachable board:\n%v", ok, err, b)
		}
	}

	// A single transposition flips parity and is never reachable.
	swapped := GoalBoard(5, 12)
	swapped.slots[0], swapped.slots[1] = swapped.slots[1], swapped.slots[0]
	ok, err := Solvable(swapped)
	if err != nil {
		t.Fatalf("Solvable() failed: %v", err)
	}
	if ok {
		t.Errorf("board with one swapped pair should be unsolvable:\n%v", swapped)
	}
	if Inversions(swapped) != 1 {
		t.Errorf("Inversions() = %d, want 1", Inversions(swapped))
	}
}

func TestInversionsIgnoreGap(t *testing.T) {
	b := mustBoard(t, 3, 1, 0, 2, 3, -1, 5, 6, 7, 8)
	if Inversions(b) != 1 {
		t.Errorf("Inversions() = %d, want 1", Inversions(b))
	}
	// Same tiles, gap moved: the count must not change.
	c := mustBoard(t, 3, -1, 1, 0, 2, 3, 5, 6, 7, 8)
	if Inversions(c) != 1 {
		t.Errorf("Inversions() = %d, want 1", Inversions(c))
	}
}

func TestSolvableUnsupportedLevel(t *testing.T) {
	for _, n := range []int{4, 6} {
		_, err := Solvable(GoalBoard(n, 0))
		if !errors.Is(err, ErrUnsupportedLevel) {
			t.Errorf("Solvable() on level %d error = %v, want ErrUnsupportedLevel", n, err)
		}
	}
}
