package puzzle

import (
	"fmt"
	"math/rand"

	"github.com/jerch/sixel-puzzle/internal/core"
)

// Shuffle draws random arrangements until one is reachable from the goal.
// Each draw is a uniform permutation of the identities plus an independent
// uniform gap position; the tile drawn at the gap is left out.
func Shuffle(rng *rand.Rand, n int) (*Board, error) {
	if n < core.MinLevel {
		return nil, fmt.Errorf("%w: level %d is below %d", ErrInvalidBoard, n, core.MinLevel)
	}
	if n%2 == 0 && n > 2 {
		return nil, fmt.Errorf("%w: level %d", ErrUnsupportedLevel, n)
	}

	slots := make([]Tile, n*n)
	for {
		for i, v := range rng.Perm(n * n) {
			slots[i] = Tile(v)
		}
		slots[rng.Intn(n*n)] = Empty

		b := &Board{n: n, slots: slots}
		ok, err := Solvable(b)
		if err != nil {
			return nil, err
		}
		if ok {
			return b.Clone(), nil
		}
	}
}

// ShuffleUnsolved shuffles until the board is not already in goal state.
func ShuffleUnsolved(rng *rand.Rand, n int) (*Board, error) {
	for {
		b, err := Shuffle(rng, n)
		if err != nil {
			return nil, err
		}
		if !b.IsGoal() {
			return b, nil
		}
	}
}
