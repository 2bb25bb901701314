package main

import (
	"fmt"

	"github.com/ttpr0/go-trip/geo"
	"github.com/ttpr0/go-trip/structs"
	"github.com/ttpr0/go-trip/trip"
	. "github.com/ttpr0/go-trip/util"
)

type TableRequest struct {
	Sources      []geo.Coord `json:"sources" validate:"required,min=1"`
	Destinations []geo.Coord `json:"destinations" validate:"required,min=1"`
	Profile      string      `json:"profile" validate:"required"`
	Metric       string      `json:"metric" validate:"omitempty,oneof=time distance"`
}

type TableResponse struct {
	// -1 for unreachable pairs
	Weights [][]int32 `json:"weights"`
}

func HandleTableRequest(manager *RoutingManager, req TableRequest) Result {
	max_locations := manager._GetServiceConfig().Services.Table.MaxLocations
	count := len(req.Sources) + len(req.Destinations)
	if max_locations > 0 && count > max_locations {
		return ErrorResult(fmt.Errorf("%w: %v locations exceed the limit of %v", trip.ErrTooBig, count, max_locations))
	}

	profile, err := GetRequestProfile(manager, req.Profile, req.Metric)
	if err != nil {
		return ErrorResult(err)
	}
	coords := make([]geo.Coord, 0, count)
	coords = append(coords, req.Sources...)
	coords = append(coords, req.Destinations...)
	phantoms, err := SnapCoordinates(profile.GetGraph(), coords)
	if err != nil {
		return ErrorResult(err)
	}

	sources := NewArray[int](len(req.Sources))
	for i := range sources {
		sources[i] = i
	}
	targets := NewArray[int](len(req.Destinations))
	for i := range targets {
		targets[i] = len(req.Sources) + i
	}
	solver := profile.GetManyToMany().CreateSolver()
	table := solver.CalcTable(phantoms, sources, targets)
	TableSize.Observe(float64(table.Length()))

	weights := make([][]int32, len(req.Sources))
	for i := range weights {
		row := make([]int32, len(req.Destinations))
		for j := range row {
			w := table[i*len(req.Destinations)+j]
			if w == structs.INVALID_WEIGHT {
				w = -1
			}
			row[j] = w
		}
		weights[i] = row
	}
	return OK(TableResponse{
		Weights: weights,
	})
}
