package trip

import (
	"github.com/ttpr0/go-trip/structs"
	. "github.com/ttpr0/go-trip/util"
)

// Components smaller than this are solved exactly.
const BRUTE_FORCE_MAX_SIZE = 10

// Computes a visiting order for the locations of one component.
//
// Tours are cyclic, the last location connects back to the first.
type ITourBuilder interface {
	BuildTour(component Array[int32], matrix CostMatrix) Array[int32]
}

// Selects the tour builder used for a component of the given size.
func SelectTourBuilder(size int) ITourBuilder {
	if size < BRUTE_FORCE_MAX_SIZE {
		return &BruteForceBuilder{}
	}
	return &FarthestInsertionBuilder{}
}

// Sums the costs of consecutive locations, if closed the leg from the last
// back to the first location is included.
func TourCost(tour Array[int32], matrix CostMatrix, closed bool) int32 {
	cost := int32(0)
	for i := 0; i+1 < tour.Length(); i++ {
		cost = structs.AddWeight(cost, matrix.Get(tour[i], tour[i+1]))
	}
	if closed && tour.Length() > 1 {
		cost = structs.AddWeight(cost, matrix.Get(tour[tour.Length()-1], tour[0]))
	}
	return cost
}

func _CheckComponent(component Array[int32]) {
	if component.Length() == 0 {
		panic("tour builder called with empty component")
	}
}
