package main

import (
	"fmt"

	"github.com/ttpr0/go-trip/geo"
	"github.com/ttpr0/go-trip/trip"
	. "github.com/ttpr0/go-trip/util"
)

type TripRequest struct {
	Locations []geo.Coord `json:"locations" validate:"required,min=1"`
	Profile   string      `json:"profile" validate:"required"`
	// "time" or "distance"
	Metric      string `json:"metric" validate:"omitempty,oneof=time distance"`
	Source      *int   `json:"source" validate:"omitempty,min=0"`
	Destination *int   `json:"destination" validate:"omitempty,min=0"`
	Geometry    bool   `json:"geometry"`
}

type TripResponse struct {
	Trips     []TripItem     `json:"trips"`
	Waypoints []TripWaypoint `json:"waypoints"`
}

type TripItem struct {
	Tour     []int32         `json:"tour"`
	Weight   int32           `json:"weight"`
	Legs     []TripLeg       `json:"legs"`
	Geometry *geo.LineString `json:"geometry,omitempty"`
}

type TripLeg struct {
	// input location indices
	From   int32 `json:"from"`
	To     int32 `json:"to"`
	Weight int32 `json:"weight"`
}

type TripWaypoint struct {
	Location      geo.Coord `json:"location"`
	TripsIndex    int       `json:"trips_index"`
	WaypointIndex int       `json:"waypoint_index"`
}

func HandleTripRequest(manager *RoutingManager, req TripRequest) Result {
	options := manager._GetServiceConfig().Services.Trip
	n := len(req.Locations)
	if options.MaxLocations > 0 && n > options.MaxLocations {
		return ErrorResult(fmt.Errorf("%w: %v locations exceed the limit of %v", trip.ErrTooBig, n, options.MaxLocations))
	}
	if (req.Source == nil) != (req.Destination == nil) {
		return ErrorResult(fmt.Errorf("%w: source and destination have to be set together", ErrInvalidOptions))
	}
	endpoints := None[trip.Endpoints]()
	if req.Source != nil {
		endpoints = Some(trip.Endpoints{
			Source:      int32(*req.Source),
			Destination: int32(*req.Destination),
		})
	}

	profile, err := GetRequestProfile(manager, req.Profile, req.Metric)
	if err != nil {
		return ErrorResult(err)
	}
	phantoms, err := SnapCoordinates(profile.GetGraph(), req.Locations)
	if err != nil {
		return ErrorResult(err)
	}

	planner := trip.NewPlanner(profile.GetManyToMany(), profile.GetRouter(), trip.Options{Debug: options.Debug})
	results, err := planner.Plan(phantoms, endpoints)
	if err != nil {
		return ErrorResult(err)
	}
	TripComponents.Observe(float64(results.Length()))

	tours := NewList[Array[int32]](results.Length())
	items := make([]TripItem, 0, results.Length())
	for _, result := range results {
		tours.Add(result.Tour)
		legs := make([]TripLeg, 0, result.Route.Legs.Length())
		for _, leg := range result.Route.Legs {
			legs = append(legs, TripLeg{
				From:   result.Tour[leg.From],
				To:     result.Tour[leg.To],
				Weight: leg.Weight,
			})
		}
		item := TripItem{
			Tour:   result.Tour,
			Weight: result.Route.Weight,
			Legs:   legs,
		}
		if req.Geometry {
			line := geo.NewLineString(result.Route.Geometry)
			item.Geometry = &line
		}
		items = append(items, item)
	}

	indices := trip.WaypointIndices(tours, n)
	waypoints := make([]TripWaypoint, n)
	for i, index := range indices {
		waypoints[i] = TripWaypoint{
			Location:      phantoms[i].Location,
			TripsIndex:    index.TripsIndex,
			WaypointIndex: index.WaypointIndex,
		}
	}

	return OK(TripResponse{
		Trips:     items,
		Waypoints: waypoints,
	})
}
