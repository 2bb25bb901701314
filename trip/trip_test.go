package trip

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttpr0/go-trip/structs"
	. "github.com/ttpr0/go-trip/util"
)

const inf = structs.INVALID_WEIGHT

func _ExampleMatrix() CostMatrix {
	return CostMatrixFromRows([][]int32{
		{0, 15, 36, 34, 30},
		{15, 0, 25, 30, 34},
		{36, 25, 0, 18, 32},
		{34, 30, 18, 0, 15},
		{30, 34, 32, 15, 0},
	})
}

func _RandomMatrix(rng *rand.Rand, n int, symmetric bool) CostMatrix {
	matrix := NewCostMatrix(n, NewArray[int32](n*n))
	for i := int32(0); i < int32(n); i++ {
		for j := int32(0); j < int32(n); j++ {
			if i == j {
				continue
			}
			if symmetric && j < i {
				matrix.Set(i, j, matrix.Get(j, i))
				continue
			}
			matrix.Set(i, j, int32(rng.Intn(1000)+1))
		}
	}
	return matrix
}

func _Range(n int) Array[int32] {
	arr := NewArray[int32](n)
	for i := 0; i < n; i++ {
		arr[i] = int32(i)
	}
	return arr
}

// enumerates all orderings of locs, calls handler with every complete ordering
func _Permute(locs []int32, k int, handler func([]int32)) {
	if k == len(locs) {
		handler(locs)
		return
	}
	for i := k; i < len(locs); i++ {
		locs[k], locs[i] = locs[i], locs[k]
		_Permute(locs, k+1, handler)
		locs[k], locs[i] = locs[i], locs[k]
	}
}

// minimal open path cost from source to destination over all locations
// and the number of paths reaching it
func _BestOpenPath(matrix CostMatrix, source, destination int32) (int32, Array[int32], int) {
	inner := make([]int32, 0)
	for i := int32(0); i < int32(matrix.Size()); i++ {
		if i != source && i != destination {
			inner = append(inner, i)
		}
	}
	best_cost := inf
	var best Array[int32]
	count := 0
	_Permute(inner, 0, func(perm []int32) {
		path := NewArray[int32](0)
		path = append(path, source)
		path = append(path, perm...)
		path = append(path, destination)
		cost := TourCost(path, matrix, false)
		if cost < best_cost {
			best_cost = cost
			best = path
			count = 1
		} else if cost == best_cost {
			count += 1
		}
	})
	return best_cost, best, count
}

//*******************************************
// cost matrix
//*******************************************

func TestCostMatrix(t *testing.T) {
	matrix := _ExampleMatrix()
	assert.Equal(t, 5, matrix.Size())
	assert.Equal(t, int32(36), matrix.Get(0, 2))
	assert.Equal(t, int32(32), matrix.Get(4, 2))
	assert.False(t, matrix.HasUnreachable())

	copied := matrix.Copy()
	copied.Set(0, 2, inf)
	assert.True(t, copied.HasUnreachable())
	assert.Equal(t, int32(36), matrix.Get(0, 2))

	assert.Panics(t, func() { NewCostMatrix(3, NewArray[int32](8)) })
}

func TestDirectedGraphView(t *testing.T) {
	matrix := CostMatrixFromRows([][]int32{
		{0, 1, inf},
		{inf, 0, 2},
		{3, inf, 5},
	})
	view := NewDirectedGraphView(matrix)
	assert.Equal(t, 3, view.NodeCount())

	succs := func(node int32) []int32 {
		result := make([]int32, 0)
		view.ForSuccessors(node, func(other int32) {
			result = append(result, other)
		})
		return result
	}
	assert.Equal(t, []int32{1}, succs(0))
	assert.Equal(t, []int32{2}, succs(1))
	// self entry is ignored
	assert.Equal(t, []int32{0}, succs(2))
}

//*******************************************
// partition
//*******************************************

func TestPartitionSingleComponent(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for n := 1; n < 12; n++ {
		components := SplitUnaccessibleLocations(_RandomMatrix(rng, n, false))
		require.NoError(t, components.Validate())
		require.Equal(t, 1, components.ComponentCount())
		assert.Equal(t, _Range(n), components.GetComponent(0))
	}
}

func TestPartitionTilesLocations(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 50; i++ {
		n := rng.Intn(15) + 1
		matrix := _RandomMatrix(rng, n, false)
		for j := 0; j < n*n/3; j++ {
			matrix.Set(int32(rng.Intn(n)), int32(rng.Intn(n)), inf)
		}
		components := SplitUnaccessibleLocations(matrix)
		require.NoError(t, components.Validate())

		seen := NewArray[int](n)
		total := 0
		for c := 0; c < components.ComponentCount(); c++ {
			component := components.GetComponent(c)
			require.NotEmpty(t, component)
			for _, loc := range component {
				seen[loc] += 1
			}
			total += component.Length()

			// builders keep every member
			if component.Length() > 1 {
				tour := SelectTourBuilder(component.Length()).BuildTour(component, matrix)
				assert.ElementsMatch(t, component, tour)
			}
		}
		assert.Equal(t, n, total)
		for _, count := range seen {
			assert.Equal(t, 1, count)
		}
	}
}

func TestPartitionIsolatesUnreachableLocation(t *testing.T) {
	matrix := _ExampleMatrix()
	for i := int32(0); i < 5; i++ {
		if i == 4 {
			continue
		}
		matrix.Set(i, 4, inf)
		matrix.Set(4, i, inf)
	}

	components := SplitUnaccessibleLocations(matrix)
	require.NoError(t, components.Validate())
	require.Equal(t, 2, components.ComponentCount())

	sizes := []int{components.GetComponent(0).Length(), components.GetComponent(1).Length()}
	assert.ElementsMatch(t, []int{1, 4}, sizes)
	for c := 0; c < 2; c++ {
		component := components.GetComponent(c)
		if component.Length() == 1 {
			assert.Equal(t, int32(4), component[0])
		} else {
			assert.ElementsMatch(t, []int32{0, 1, 2, 3}, component)
		}
	}
}

func TestPartitionBlockedPairStaysConnected(t *testing.T) {
	// 2 and 4 still reach each other through the other locations
	matrix := _ExampleMatrix()
	matrix.Set(2, 4, inf)
	matrix.Set(4, 2, inf)

	components := SplitUnaccessibleLocations(matrix)
	require.NoError(t, components.Validate())
	require.Equal(t, 1, components.ComponentCount())

	tour := (&BruteForceBuilder{}).BuildTour(components.GetComponent(0), matrix)
	assert.Less(t, TourCost(tour, matrix, true), inf)
}

func TestPartitionEmpty(t *testing.T) {
	components := SplitUnaccessibleLocations(NewCostMatrix(0, NewArray[int32](0)))
	require.NoError(t, components.Validate())
	assert.Equal(t, 0, components.ComponentCount())
}

func TestComponentsValidate(t *testing.T) {
	valid := Components{Nodes: Array[int32]{2, 0, 1}, Ranges: Array[int]{0, 1, 3}}
	assert.NoError(t, valid.Validate())

	invalid := []Components{
		{Nodes: Array[int32]{2, 0, 1}, Ranges: Array[int]{}},
		{Nodes: Array[int32]{2, 0, 1}, Ranges: Array[int]{1, 3}},
		{Nodes: Array[int32]{2, 0, 1}, Ranges: Array[int]{0, 2}},
		{Nodes: Array[int32]{2, 0, 1}, Ranges: Array[int]{0, 2, 1, 3}},
		{Nodes: Array[int32]{2, 0, 0}, Ranges: Array[int]{0, 3}},
		{Nodes: Array[int32]{2, 0, 3}, Ranges: Array[int]{0, 3}},
	}
	for _, components := range invalid {
		assert.Error(t, components.Validate())
	}
}

//*******************************************
// tour builders
//*******************************************

func TestSelectTourBuilder(t *testing.T) {
	assert.IsType(t, &BruteForceBuilder{}, SelectTourBuilder(1))
	assert.IsType(t, &BruteForceBuilder{}, SelectTourBuilder(BRUTE_FORCE_MAX_SIZE-1))
	assert.IsType(t, &FarthestInsertionBuilder{}, SelectTourBuilder(BRUTE_FORCE_MAX_SIZE))
	assert.IsType(t, &FarthestInsertionBuilder{}, SelectTourBuilder(100))
}

func TestTourCost(t *testing.T) {
	matrix := _ExampleMatrix()
	tour := Array[int32]{0, 1, 2}
	assert.Equal(t, int32(40), TourCost(tour, matrix, false))
	assert.Equal(t, int32(76), TourCost(tour, matrix, true))
	assert.Equal(t, int32(0), TourCost(Array[int32]{3}, matrix, true))

	matrix.Set(2, 0, inf)
	assert.Equal(t, inf, TourCost(tour, matrix, true))
}

func TestBuildersSingleton(t *testing.T) {
	matrix := _ExampleMatrix()
	for _, builder := range []ITourBuilder{&BruteForceBuilder{}, &FarthestInsertionBuilder{}} {
		tour := builder.BuildTour(Array[int32]{3}, matrix)
		assert.Equal(t, Array[int32]{3}, tour)
		assert.Equal(t, int32(0), TourCost(tour, matrix, true))
	}
}

func TestBuildersEmptyComponentPanics(t *testing.T) {
	matrix := _ExampleMatrix()
	for _, builder := range []ITourBuilder{&BruteForceBuilder{}, &FarthestInsertionBuilder{}} {
		assert.Panics(t, func() { builder.BuildTour(Array[int32]{}, matrix) })
	}
}

func TestBruteForceExample(t *testing.T) {
	matrix := _ExampleMatrix()
	components := SplitUnaccessibleLocations(matrix)
	require.Equal(t, 1, components.ComponentCount())
	assert.Equal(t, Array[int32]{0, 1, 2, 3, 4}, components.GetComponent(0))

	tour := SelectTourBuilder(5).BuildTour(components.GetComponent(0), matrix)

	// minimum over all cycles starting at 0
	expected := inf
	_Permute([]int32{1, 2, 3, 4}, 0, func(perm []int32) {
		cycle := append(Array[int32]{0}, perm...)
		if cost := TourCost(cycle, matrix, true); cost < expected {
			expected = cost
		}
	})
	assert.Equal(t, int32(103), expected)
	assert.Equal(t, expected, TourCost(tour, matrix, true))
	// ties resolve to the lexicographically first permutation
	assert.Equal(t, Array[int32]{0, 1, 2, 3, 4}, tour)
}

func TestBruteForceAsymmetric(t *testing.T) {
	matrix := CostMatrixFromRows([][]int32{
		{0, 1, 100, 100},
		{100, 0, 1, 100},
		{100, 100, 0, 1},
		{1, 100, 100, 0},
	})
	tour := (&BruteForceBuilder{}).BuildTour(Array[int32]{0, 1, 2, 3}, matrix)
	assert.Equal(t, Array[int32]{0, 1, 2, 3}, tour)
	assert.Equal(t, int32(4), TourCost(tour, matrix, true))

	// reversed direction is expensive
	tour = (&BruteForceBuilder{}).BuildTour(Array[int32]{3, 2, 1, 0}, matrix)
	assert.Equal(t, Array[int32]{3, 0, 1, 2}, tour)
}

func TestExactNotWorseThanHeuristic(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		n := rng.Intn(4) + 1
		matrix := _RandomMatrix(rng, n, true)
		component := _Range(n)
		rng.Shuffle(n, func(a, b int) { component[a], component[b] = component[b], component[a] })

		exact := (&BruteForceBuilder{}).BuildTour(component, matrix)
		heuristic := (&FarthestInsertionBuilder{}).BuildTour(component, matrix)
		assert.ElementsMatch(t, component, exact)
		assert.ElementsMatch(t, component, heuristic)
		assert.LessOrEqual(t, TourCost(exact, matrix, true), TourCost(heuristic, matrix, true))
	}
}

func TestFarthestInsertionLarge(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for _, n := range []int{10, 25, 60} {
		matrix := _RandomMatrix(rng, n, false)
		component := _Range(n)
		tour := SelectTourBuilder(n).BuildTour(component, matrix)
		assert.ElementsMatch(t, component, tour)
		assert.Less(t, TourCost(tour, matrix, true), inf)
	}
}

func TestFarthestInsertionSubset(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	matrix := _RandomMatrix(rng, 30, true)
	component := Array[int32]{29, 3, 17, 8, 21, 0, 12, 5, 26, 14, 9}
	tour := (&FarthestInsertionBuilder{}).BuildTour(component, matrix)
	assert.ElementsMatch(t, component, tour)
}

func TestBuildersDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	for _, n := range []int{6, 9, 14} {
		matrix := _RandomMatrix(rng, n, false)
		component := _Range(n)
		builder := SelectTourBuilder(n)
		first := builder.BuildTour(component, matrix)
		second := builder.BuildTour(component, matrix)
		assert.Equal(t, first, second)
	}
}

//*******************************************
// fixed endpoints
//*******************************************

func TestAdaptFixedEndpoints(t *testing.T) {
	matrix := _ExampleMatrix()
	adapted := AdaptFixedEndpoints(matrix, 0, 1)

	for i := int32(0); i < 5; i++ {
		if i != 0 && i != 1 {
			assert.Equal(t, inf, adapted.Get(i, 0), "column of source")
			assert.Equal(t, inf, adapted.Get(1, i), "row of destination")
			assert.Equal(t, matrix.Get(0, i), adapted.Get(0, i))
			assert.Equal(t, matrix.Get(i, 1), adapted.Get(i, 1))
		}
	}
	assert.Equal(t, int32(0), adapted.Get(0, 0))
	assert.Equal(t, int32(0), adapted.Get(1, 1))
	assert.Equal(t, int32(0), adapted.Get(1, 0))
	assert.Equal(t, inf, adapted.Get(0, 1))
	assert.Equal(t, int32(25), adapted.Get(2, 1))
	assert.Equal(t, int32(18), adapted.Get(2, 3))

	// original is untouched
	assert.Equal(t, int32(15), matrix.Get(0, 1))
	assert.Equal(t, int32(30), matrix.Get(1, 3))
	assert.Equal(t, int32(34), matrix.Get(1, 4))
}

func TestFixedEndpointsExample(t *testing.T) {
	matrix := _ExampleMatrix()
	trips, err := ComputeTrips(matrix, Some(Endpoints{Source: 0, Destination: 1}))
	require.NoError(t, err)
	require.Equal(t, 1, trips.Length())

	tour := trips[0]
	assert.Equal(t, int32(0), tour[0])
	assert.Equal(t, int32(1), tour[tour.Length()-1])
	assert.Equal(t, Array[int32]{0, 4, 3, 2, 1}, tour)
	assert.Equal(t, int32(88), TourCost(tour, matrix, false))
}

func TestFixedEndpointsMatchOpenPath(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 60; i++ {
		n := rng.Intn(5) + 3
		matrix := _RandomMatrix(rng, n, false)
		source := int32(rng.Intn(n))
		destination := int32(rng.Intn(n - 1))
		if destination >= source {
			destination += 1
		}

		trips, err := ComputeTrips(matrix, Some(Endpoints{Source: source, Destination: destination}))
		require.NoError(t, err)
		require.Equal(t, 1, trips.Length())
		tour := trips[0]

		expected_cost, expected, count := _BestOpenPath(matrix, source, destination)
		assert.Equal(t, source, tour[0])
		assert.Equal(t, destination, tour[tour.Length()-1])
		assert.Equal(t, expected_cost, TourCost(tour, matrix, false))
		if count == 1 {
			assert.Equal(t, expected, tour)
		}
	}
}

func TestFixedEndpointsLargeComponents(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	for i := 0; i < 80; i++ {
		n := rng.Intn(20) + BRUTE_FORCE_MAX_SIZE
		matrix := _RandomMatrix(rng, n, i%2 == 0)
		source := int32(rng.Intn(n))
		destination := int32(rng.Intn(n - 1))
		if destination >= source {
			destination += 1
		}

		trips, err := ComputeTrips(matrix, Some(Endpoints{Source: source, Destination: destination}))
		require.NoError(t, err)
		require.Equal(t, 1, trips.Length(), "n=%v", n)
		tour := trips[0]
		require.Len(t, tour, n)
		assert.ElementsMatch(t, _Range(n), tour)
		assert.Equal(t, source, tour[0], "n=%v", n)
		assert.Equal(t, destination, tour[tour.Length()-1], "n=%v", n)
		assert.Less(t, TourCost(tour, matrix, false), structs.INVALID_WEIGHT)
	}
}

func TestFixedEndpointsTwoLocations(t *testing.T) {
	matrix := CostMatrixFromRows([][]int32{
		{0, 7},
		{9, 0},
	})
	adapted := AdaptFixedEndpoints(matrix, 1, 0)
	assert.Equal(t, int32(9), adapted.Get(1, 0))
	assert.Equal(t, int32(0), adapted.Get(0, 1))

	trips, err := ComputeTrips(matrix, Some(Endpoints{Source: 1, Destination: 0}))
	require.NoError(t, err)
	require.Equal(t, 1, trips.Length())
	assert.Equal(t, Array[int32]{1, 0}, trips[0])
	assert.Equal(t, int32(9), TourCost(trips[0], matrix, false))
}

func TestEqualEndpointsIsRoundTrip(t *testing.T) {
	matrix := _ExampleMatrix()
	trips, err := ComputeTrips(matrix, Some(Endpoints{Source: 3, Destination: 3}))
	require.NoError(t, err)
	require.Equal(t, 1, trips.Length())
	assert.Equal(t, int32(3), trips[0][0])
	assert.Equal(t, int32(103), TourCost(trips[0], matrix, true))
}

func TestRotateTour(t *testing.T) {
	tour := Array[int32]{4, 2, 7, 1}
	assert.Equal(t, Array[int32]{7, 1, 4, 2}, RotateTour(tour, 7))
	assert.Equal(t, Array[int32]{4, 2, 7, 1}, RotateTour(tour, 4))
	assert.Equal(t, Array[int32]{4, 2, 7, 1}, RotateTour(tour, 9))
	// input is not modified
	assert.Equal(t, Array[int32]{4, 2, 7, 1}, tour)
}

//*******************************************
// trips
//*******************************************

func TestComputeTripsErrors(t *testing.T) {
	_, err := ComputeTrips(NewCostMatrix(0, NewArray[int32](0)), None[Endpoints]())
	assert.ErrorIs(t, err, ErrNoTrips)

	_, err = ComputeTrips(_ExampleMatrix(), Some(Endpoints{Source: 0, Destination: 5}))
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestComputeTripsIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	for _, n := range []int{5, 12} {
		matrix := _RandomMatrix(rng, n, false)
		matrix.Set(1, 2, inf)
		for i := int32(0); i < int32(n); i++ {
			if i != 3 {
				matrix.Set(i, 3, inf)
			}
		}
		first, err := ComputeTrips(matrix, None[Endpoints]())
		require.NoError(t, err)
		second, err := ComputeTrips(matrix.Copy(), None[Endpoints]())
		require.NoError(t, err)
		assert.Equal(t, first, second)
		// nothing reaches 3
		assert.Equal(t, 2, first.Length())
	}
}

func TestWaypointIndices(t *testing.T) {
	trips := List[Array[int32]]{
		{2, 0, 4},
		{3},
	}
	waypoints := WaypointIndices(trips, 6)
	assert.Equal(t, Waypoint{TripsIndex: 0, WaypointIndex: 1}, waypoints[0])
	assert.Equal(t, Waypoint{TripsIndex: 0, WaypointIndex: 0}, waypoints[2])
	assert.Equal(t, Waypoint{TripsIndex: 1, WaypointIndex: 0}, waypoints[3])
	assert.Equal(t, Waypoint{TripsIndex: 0, WaypointIndex: 2}, waypoints[4])
	assert.Equal(t, Waypoint{TripsIndex: -1, WaypointIndex: -1}, waypoints[5])
}
