package trip

import (
	"github.com/ttpr0/go-trip/structs"
	. "github.com/ttpr0/go-trip/util"
)

// Fixed start and end location of an open trip.
type Endpoints struct {
	Source      int32
	Destination int32
}

// Rewrites a copy of the matrix so that the optimal closed tour corresponds
// to the optimal open path from source to destination.
//
// No location can reach the source and the destination can not reach any
// location, except for the free leg destination -> source that closes the
// tour. The direct leg source -> destination is blocked unless only these
// two locations exist.
func AdaptFixedEndpoints(matrix CostMatrix, source, destination int32) CostMatrix {
	adapted := matrix.Copy()
	n := int32(adapted.Size())
	for i := int32(0); i < n; i++ {
		adapted.Set(i, source, structs.INVALID_WEIGHT)
		adapted.Set(destination, i, structs.INVALID_WEIGHT)
	}
	adapted.Set(source, source, 0)
	adapted.Set(destination, destination, 0)
	adapted.Set(destination, source, 0)
	if n > 2 {
		adapted.Set(source, destination, structs.INVALID_WEIGHT)
	} else {
		adapted.Set(source, destination, matrix.Get(source, destination))
	}
	return adapted
}

// Rotates a cyclic tour so that it begins at start.
//
// Returns an unchanged copy if start is not part of the tour.
func RotateTour(tour Array[int32], start int32) Array[int32] {
	pos := -1
	for i, loc := range tour {
		if loc == start {
			pos = i
			break
		}
	}
	rotated := NewArray[int32](tour.Length())
	if pos == -1 {
		copy(rotated, tour)
		return rotated
	}
	copy(rotated, tour[pos:])
	copy(rotated[tour.Length()-pos:], tour[:pos])
	return rotated
}
