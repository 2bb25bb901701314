package main

import (
	"github.com/ttpr0/go-trip/geo"
)

type RouteRequest struct {
	Start   geo.Coord `json:"start"`
	End     geo.Coord `json:"end"`
	Profile string    `json:"profile" validate:"required"`
	Metric  string    `json:"metric" validate:"omitempty,oneof=time distance"`
}

type FeatureCollection struct {
	Type     string        `json:"type"`
	Features []geo.Feature `json:"features"`
}

func NewFeatureCollection(features []geo.Feature) FeatureCollection {
	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}

// Returns the route as a feature collection with one feature per edge.
func HandleRouteRequest(manager *RoutingManager, req RouteRequest) Result {
	profile, err := GetRequestProfile(manager, req.Profile, req.Metric)
	if err != nil {
		return ErrorResult(err)
	}
	phantoms, err := SnapCoordinates(profile.GetGraph(), []geo.Coord{req.Start, req.End})
	if err != nil {
		return ErrorResult(err)
	}
	path, err := profile.GetRouter().CalcPath(phantoms[0], phantoms[1])
	if err != nil {
		return ErrorResult(err)
	}

	g := profile.GetGraph()
	attributes := profile.GetAttributes()
	edges := path.GetEdges()
	features := make([]geo.Feature, 0, edges.Length())
	for _, edge := range edges {
		var coords geo.CoordArray
		if attributes.HasValue() {
			coords = attributes.Value.GetEdgeGeom(edge)
		} else {
			e := g.GetEdge(edge)
			coords = geo.CoordArray{g.GetNodeGeom(e.NodeA), g.GetNodeGeom(e.NodeB)}
		}
		line := geo.NewLineString(coords)
		features = append(features, geo.NewFeature(&line, map[string]any{
			"edge": edge,
		}))
	}
	return OK(struct {
		FeatureCollection
		Weight int32 `json:"weight"`
	}{NewFeatureCollection(features), path.GetWeight()})
}

type NearestRequest struct {
	Lon     float32 `json:"lon" validate:"min=-180,max=180"`
	Lat     float32 `json:"lat" validate:"min=-90,max=90"`
	Profile string  `json:"profile" validate:"required"`
}

type NearestResponse struct {
	Node     int32     `json:"node"`
	Location geo.Coord `json:"location"`
}

func HandleNearestRequest(manager *RoutingManager, req NearestRequest) Result {
	profile, err := GetRequestProfile(manager, req.Profile, "")
	if err != nil {
		return ErrorResult(err)
	}
	phantoms, err := SnapCoordinates(profile.GetGraph(), []geo.Coord{{req.Lon, req.Lat}})
	if err != nil {
		return ErrorResult(err)
	}
	return OK(NearestResponse{
		Node:     phantoms[0].Node,
		Location: phantoms[0].Location,
	})
}
