package trip

import (
	"golang.org/x/exp/slices"

	. "github.com/ttpr0/go-trip/util"
)

//*******************************************
// brute force tour
//*******************************************

// Tries every ordering of the component with the first location fixed.
//
// Permutations are visited in lexicographic order and the first one with
// minimal cost is kept.
type BruteForceBuilder struct{}

func (self *BruteForceBuilder) BuildTour(component Array[int32], matrix CostMatrix) Array[int32] {
	_CheckComponent(component)
	if component.Length() == 1 {
		return component.Copy()
	}

	tour := component.Copy()
	rest := tour[1:]
	slices.Sort(rest)

	best := tour.Copy()
	best_cost := TourCost(tour, matrix, true)
	for _NextPermutation(rest) {
		cost := TourCost(tour, matrix, true)
		if cost < best_cost {
			best_cost = cost
			copy(best, tour)
		}
	}
	return best
}

// Rearranges perm into its lexicographic successor, returns false if perm
// was already the last permutation.
func _NextPermutation(perm []int32) bool {
	i := len(perm) - 2
	for i >= 0 && perm[i] >= perm[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(perm) - 1
	for perm[j] <= perm[i] {
		j--
	}
	perm[i], perm[j] = perm[j], perm[i]
	for l, r := i+1, len(perm)-1; l < r; l, r = l+1, r-1 {
		perm[l], perm[r] = perm[r], perm[l]
	}
	return true
}
