package puzzle

import (
	"errors"
	"fmt"
)

// ErrUnsupportedLevel is returned for even boards larger than 2×2,
// for which no solvability test is implemented.
var ErrUnsupportedLevel = errors.New("puzzle: solvability for even levels above 2 is not implemented")

// reachable2x2 holds, for every arrangement of the four identities on a 2×2
// board, which gap positions leave the board reachable from its goal.
// Rows are indexed by PermutationRank of the four slot identities (the gap
// slot contributes the identity of the tile removed there), columns by the
// gap's slot index.
var reachable2x2 = [24][4]bool{
	{true, true, true, true},     // 0: 0123
	{false, false, true, true},   // 1: 0132
	{false, false, false, false}, // 2: 0213
	{true, true, false, false},   // 3: 0231
	{true, false, true, false},   // 4: 0312
	{false, true, false, true},   // 5: 0321
	{true, true, false, false},   // 6: 1023
	{false, false, false, false}, // 7: 1032
	{false, true, false, true},   // 8: 1203
	{true, false, true, false},   // 9: 1230
	{true, true, true, true},     // 10: 1302
	{false, false, true, true},   // 11: 1320
	{false, false, true, true},   // 12: 2013
	{true, true, true, true},     // 13: 2031
	{true, false, true, false},   // 14: 2103
	{false, true, false, true},   // 15: 2130
	{false, false, false, false}, // 16: 2301
	{true, true, false, false},   // 17: 2310
	{false, true, false, true},   // 18: 3012
	{true, false, true, false},   // 19: 3021
	{true, true, false, false},   // 20: 3102
	{false, false, false, false}, // 21: 3120
	{false, false, true, true},   // 22: 3201
	{true, true, true, true},     // 23: 3210
}

// PermutationRank returns the factorial-number-system (Lehmer) rank of a
// permutation of 0..len(perm)-1.
func PermutationRank(perm []int) int {
	rank := 0
	for i := range perm {
		smaller := 0
		for j := i + 1; j < len(perm); j++ {
			if perm[j] < perm[i] {
				smaller++
			}
		}
		rank = rank*(len(perm)-i) + smaller
	}
	return rank
}

// Inversions counts out-of-order pairs among the non-empty slots.
func Inversions(b *Board) int {
	count := 0
	for i := 0; i < len(b.slots); i++ {
		if b.slots[i] == Empty {
			continue
		}
		for j := i + 1; j < len(b.slots); j++ {
			if b.slots[j] != Empty && b.slots[i] > b.slots[j] {
				count++
			}
		}
	}
	return count
}

// Solvable reports whether the board can be reached from its goal
// arrangement using slide moves.
func Solvable(b *Board) (bool, error) {
	switch {
	case b.n == 2:
		perm := make([]int, 4)
		for i, t := range b.slots {
			perm[i] = int(t)
		}
		gap := b.EmptyIndex()
		perm[gap] = int(b.Missing())
		return reachable2x2[PermutationRank(perm)][gap], nil
	case b.n%2 == 1:
		return Inversions(b)%2 == 0, nil
	default:
		return false, fmt.Errorf("%w: level %d", ErrUnsupportedLevel, b.n)
	}
}
