package trip

import (
	"fmt"

	"golang.org/x/exp/slog"

	"github.com/ttpr0/go-trip/batched/manytomany"
	"github.com/ttpr0/go-trip/routing"
	"github.com/ttpr0/go-trip/structs"
	. "github.com/ttpr0/go-trip/util"
)

//*******************************************
// trip computation
//*******************************************

type Options struct {
	// logs matrices, partitions and tours
	Debug bool
}

// Computes one tour per strongly connected component of the matrix.
//
// With endpoints set, every tour containing the source starts at the source
// and ends at the destination. Equal source and destination yield a round
// trip starting at that location.
func ComputeTrips(matrix CostMatrix, endpoints Optional[Endpoints]) (List[Array[int32]], error) {
	return _ComputeTrips(matrix, endpoints, false)
}

func _ComputeTrips(matrix CostMatrix, endpoints Optional[Endpoints], debug bool) (List[Array[int32]], error) {
	n := matrix.Size()
	if n == 0 {
		return nil, ErrNoTrips
	}
	if endpoints.HasValue() {
		ep := endpoints.Value
		if ep.Source < 0 || int(ep.Source) >= n || ep.Destination < 0 || int(ep.Destination) >= n {
			return nil, fmt.Errorf("%w: endpoints (%v, %v) out of range", ErrInvalidValue, ep.Source, ep.Destination)
		}
	}

	active := matrix
	if _IsOpenTrip(endpoints) {
		active = AdaptFixedEndpoints(matrix, endpoints.Value.Source, endpoints.Value.Destination)
		if debug {
			slog.Debug("adapted cost matrix", "values", active.Values())
		}
	}

	components := SplitUnaccessibleLocations(active)
	if err := components.Validate(); err != nil {
		panic(fmt.Sprintf("invalid partition: %v", err))
	}
	if debug {
		slog.Debug("partitioned locations", "nodes", components.Nodes, "ranges", components.Ranges)
	}

	trips := NewList[Array[int32]](components.ComponentCount())
	for i := 0; i < components.ComponentCount(); i++ {
		component := components.GetComponent(i)
		builder := SelectTourBuilder(component.Length())
		tour := builder.BuildTour(component, active)
		if endpoints.HasValue() {
			tour = RotateTour(tour, endpoints.Value.Source)
		}
		if debug {
			slog.Debug("computed tour", "component", i, "tour", tour, "cost", TourCost(tour, active, true))
		}
		trips.Add(tour)
	}
	if trips.Length() == 0 {
		return nil, ErrNoTrips
	}
	return trips, nil
}

func _IsOpenTrip(endpoints Optional[Endpoints]) bool {
	return endpoints.HasValue() && endpoints.Value.Source != endpoints.Value.Destination
}

//*******************************************
// trip planner
//*******************************************

type TripResult struct {
	Tour  Array[int32]
	Route routing.Route
}

// Runs the full trip pipeline: cost matrix, partitioning, tour building
// and route materialization.
//
// Safe for concurrent use.
type Planner struct {
	table   manytomany.IManyToMany
	router  routing.IRouter
	options Options
}

func NewPlanner(table manytomany.IManyToMany, router routing.IRouter, options Options) *Planner {
	return &Planner{
		table:   table,
		router:  router,
		options: options,
	}
}

// Computes the cost matrix between all phantoms.
//
// Diagonal entries are set to zero.
func (self *Planner) CalcMatrix(phantoms Array[structs.PhantomNode]) CostMatrix {
	n := phantoms.Length()
	indices := NewArray[int](n)
	for i := 0; i < n; i++ {
		indices[i] = i
	}
	solver := self.table.CreateSolver()
	matrix := NewCostMatrix(n, solver.CalcTable(phantoms, indices, indices))
	for i := int32(0); i < int32(n); i++ {
		matrix.Set(i, i, 0)
	}
	return matrix
}

func (self *Planner) Plan(phantoms Array[structs.PhantomNode], endpoints Optional[Endpoints]) (List[TripResult], error) {
	n := phantoms.Length()
	if n == 0 {
		return nil, ErrNoTrips
	}
	for i, phantom := range phantoms {
		if !phantom.IsValid() {
			return nil, fmt.Errorf("%w %v", ErrNoSegment, i)
		}
	}

	matrix := self.CalcMatrix(phantoms)
	if self.options.Debug {
		slog.Debug("cost matrix", "size", n, "values", matrix.Values())
	}

	trips, err := _ComputeTrips(matrix, endpoints, self.options.Debug)
	if err != nil {
		return nil, err
	}

	closed := !_IsOpenTrip(endpoints)
	results := NewList[TripResult](trips.Length())
	var failed error
	for i, tour := range trips {
		waypoints := NewArray[structs.PhantomNode](tour.Length())
		for j, loc := range tour {
			waypoints[j] = phantoms[loc]
		}
		route, err := self.router.CalcRoute(waypoints, closed)
		if err != nil {
			slog.Error(fmt.Sprintf("failed to route trip %v: %v", i, err))
			if failed == nil {
				failed = fmt.Errorf("%w: trip %v: %v", ErrUnroutable, i, err)
			}
			continue
		}
		results.Add(TripResult{
			Tour:  tour,
			Route: route,
		})
	}
	if failed != nil {
		return nil, failed
	}
	return results, nil
}
