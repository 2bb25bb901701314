package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ttpr0/go-trip/geo"
	"github.com/ttpr0/go-trip/graph"
	"github.com/ttpr0/go-trip/parser"
	"github.com/ttpr0/go-trip/structs"
	"github.com/ttpr0/go-trip/trip"
	. "github.com/ttpr0/go-trip/util"
)

var ErrInvalidOptions = errors.New("invalid options")
var ErrProfileNotFound = errors.New("profile not found")

// Missing directories are treated as empty.
func IsDirectoryEmpty(path string) bool {
	files, err := os.ReadDir(path)
	if err != nil {
		return true
	}
	return len(files) == 0
}

// Resolves a request profile of the form "<type>-<vehicle>" and a metric ("time" or "distance").
func GetRequestProfile(manager *RoutingManager, profile, metric string) (IRoutingProfile, error) {
	tokens := strings.Split(profile, "-")
	if len(tokens) != 2 {
		return nil, fmt.Errorf("%w: invalid profile %q", ErrInvalidOptions, profile)
	}
	typ, err := ProfileTypeFromString(tokens[0])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid profile type %q", ErrInvalidOptions, tokens[0])
	}
	vehicle, err := VehicleTypeFromString(tokens[1])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid vehicle type %q", ErrInvalidOptions, tokens[1])
	}
	var metr MetricType
	switch metric {
	case "time", "":
		metr = FASTEST
	case "distance":
		metr = SHORTEST
	default:
		return nil, fmt.Errorf("%w: invalid metric %q", ErrInvalidOptions, metric)
	}
	prof := manager.GetMatchingProfile(typ, vehicle, metr)
	if !prof.HasValue() {
		return nil, fmt.Errorf("%w: %v with metric %v", ErrProfileNotFound, profile, metr)
	}
	return prof.Value, nil
}

// Snaps every coordinate to its closest graph node.
func SnapCoordinates(g graph.IGraph, coords []geo.Coord) (Array[structs.PhantomNode], error) {
	phantoms := NewArray[structs.PhantomNode](len(coords))
	for i, coord := range coords {
		if !coord.IsValid() {
			return nil, fmt.Errorf("%w: location %v is not a valid coordinate", trip.ErrInvalidValue, i)
		}
		node, ok := g.GetClosestNode(coord)
		if !ok {
			return nil, fmt.Errorf("%w: location %v", trip.ErrNoSegment, i)
		}
		phantoms[i] = structs.PhantomNode{
			Node:     node,
			Offset:   0,
			Location: g.GetNodeGeom(node),
		}
	}
	return phantoms, nil
}

func GetDecoder(typ ProfileType) parser.IOSMDecoder {
	var decoder parser.IOSMDecoder
	switch typ {
	case DRIVING:
		decoder = &parser.DrivingDecoder{}
	case WALKING:
		decoder = &parser.WalkingDecoder{}
	}
	return decoder
}
