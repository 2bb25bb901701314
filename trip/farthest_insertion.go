package trip

import (
	"github.com/ttpr0/go-trip/structs"
	. "github.com/ttpr0/go-trip/util"
)

//*******************************************
// farthest insertion tour
//*******************************************

// Builds an approximate tour by repeatedly inserting the location that is
// farthest away from the partial tour at its cheapest position.
type FarthestInsertionBuilder struct{}

func (self *FarthestInsertionBuilder) BuildTour(component Array[int32], matrix CostMatrix) Array[int32] {
	_CheckComponent(component)
	if component.Length() == 1 {
		return component.Copy()
	}

	inserted := NewArray[bool](matrix.Size())
	tour := NewList[int32](component.Length())

	x, y := _FarthestPair(component, matrix)
	tour.Add(x)
	tour.Add(y)
	inserted[x] = true
	inserted[y] = true

	for tour.Length() < component.Length() {
		next := _FarthestLocation(component, tour, inserted, matrix)
		pos := _CheapestPosition(tour, next, matrix)
		tour.Insert(pos, next)
		inserted[next] = true
	}
	return Array[int32](tour)
}

// Returns the pair with maximal finite cost, pairs reachable in both
// directions are preferred.
func _FarthestPair(component Array[int32], matrix CostMatrix) (int32, int32) {
	both_x, both_y, both_dist := int32(-1), int32(-1), int32(-1)
	any_x, any_y, any_dist := component[0], component[1], int32(-1)
	for _, a := range component {
		for _, b := range component {
			if a == b {
				continue
			}
			d_ab := matrix.Get(a, b)
			if d_ab == structs.INVALID_WEIGHT {
				continue
			}
			if d_ab > any_dist {
				any_x, any_y, any_dist = a, b, d_ab
			}
			if matrix.Get(b, a) != structs.INVALID_WEIGHT && d_ab > both_dist {
				both_x, both_y, both_dist = a, b, d_ab
			}
		}
	}
	if both_x != -1 {
		return both_x, both_y
	}
	return any_x, any_y
}

// Returns the uninserted location whose nearest distance (in either direction)
// to the tour is maximal.
func _FarthestLocation(component Array[int32], tour List[int32], inserted Array[bool], matrix CostMatrix) int32 {
	farthest := int32(-1)
	farthest_dist := int64(-1)
	for _, loc := range component {
		if inserted[loc] {
			continue
		}
		nearest := int64(structs.INVALID_WEIGHT)
		for _, t := range tour {
			if d := matrix.Get(t, loc); d != structs.INVALID_WEIGHT && int64(d) < nearest {
				nearest = int64(d)
			}
			if d := matrix.Get(loc, t); d != structs.INVALID_WEIGHT && int64(d) < nearest {
				nearest = int64(d)
			}
		}
		if nearest > farthest_dist {
			farthest = loc
			farthest_dist = nearest
		}
	}
	return farthest
}

// Returns the insertion index into the cyclic tour that minimizes the added cost.
//
// Positions with an unreachable leg to or from loc are skipped, replacing an
// unreachable leg counts as a gain of the full sentinel.
func _CheapestPosition(tour List[int32], loc int32, matrix CostMatrix) int {
	best_pos := tour.Length()
	best_delta := int64(0)
	found := false
	for i := 0; i < tour.Length(); i++ {
		a := tour[i]
		b := tour[(i+1)%tour.Length()]
		d_ax := matrix.Get(a, loc)
		d_xb := matrix.Get(loc, b)
		if d_ax == structs.INVALID_WEIGHT || d_xb == structs.INVALID_WEIGHT {
			continue
		}
		delta := int64(d_ax) + int64(d_xb) - int64(matrix.Get(a, b))
		if !found || delta < best_delta {
			best_pos = i + 1
			best_delta = delta
			found = true
		}
	}
	return best_pos
}
