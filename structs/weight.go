package structs

import (
	"math"
)

// Reserved weight for "no path". All real weights are non-negative and
// strictly smaller.
const INVALID_WEIGHT int32 = math.MaxInt32

// Adds two weights without overflowing into the sentinel.
//
// If either operand is INVALID_WEIGHT or the sum does not fit below it,
// INVALID_WEIGHT is returned.
func AddWeight(a, b int32) int32 {
	if a == INVALID_WEIGHT || b == INVALID_WEIGHT {
		return INVALID_WEIGHT
	}
	sum := int64(a) + int64(b)
	if sum >= int64(INVALID_WEIGHT) {
		return INVALID_WEIGHT
	}
	return int32(sum)
}

// Sums weights with AddWeight semantics.
func SumWeights(weights ...int32) int32 {
	sum := int32(0)
	for _, w := range weights {
		sum = AddWeight(sum, w)
	}
	return sum
}
