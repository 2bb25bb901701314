package routing

import (
	"errors"
	"fmt"

	"github.com/ttpr0/go-trip/attr"
	"github.com/ttpr0/go-trip/geo"
	"github.com/ttpr0/go-trip/graph"
	"github.com/ttpr0/go-trip/structs"
	. "github.com/ttpr0/go-trip/util"
)

var ErrNoPath = errors.New("no path found")

//*******************************************
// route
//*******************************************

// Part of a route between two consecutive waypoints.
type Leg struct {
	// positions of the waypoints in the routed sequence
	From     int
	To       int
	Weight   int32
	Edges    List[int32]
	Geometry geo.CoordArray
}

type Route struct {
	Legs     List[Leg]
	Weight   int32
	Geometry geo.CoordArray
}

//*******************************************
// router
//*******************************************

type IRouter interface {
	// Routes through all waypoints in order, if closed the route returns
	// to the first waypoint.
	CalcRoute(waypoints Array[structs.PhantomNode], closed bool) (Route, error)
	CalcPath(start, end structs.PhantomNode) (Path, error)
}

// Materializes routes with point-to-point queries.
//
// Safe for concurrent use, every query creates its own search state.
type Router struct {
	g          graph.IGraph
	attributes Optional[attr.IAttributes]
	create     func(start, end int32) IShortestPath
}

func NewCHRouter(g graph.ICHGraph, attributes Optional[attr.IAttributes]) *Router {
	return &Router{
		g:          g,
		attributes: attributes,
		create: func(start, end int32) IShortestPath {
			return NewCH(g, start, end)
		},
	}
}

func NewDijkstraRouter(g graph.IGraph, attributes Optional[attr.IAttributes]) *Router {
	return &Router{
		g:          g,
		attributes: attributes,
		create: func(start, end int32) IShortestPath {
			return NewDijkstra(g, start, end)
		},
	}
}

func (self *Router) CalcPath(start, end structs.PhantomNode) (Path, error) {
	if !start.IsValid() || !end.IsValid() {
		return Path{}, fmt.Errorf("%w: waypoint not snapped to graph", ErrNoPath)
	}
	if start.Node == end.Node {
		return NewPath(start.Node, end.Node, NewList[int32](0), 0), nil
	}
	alg := self.create(start.Node, end.Node)
	if !alg.CalcShortestPath() {
		return Path{}, fmt.Errorf("%w: from node %v to node %v", ErrNoPath, start.Node, end.Node)
	}
	return alg.GetShortestPath(), nil
}

func (self *Router) CalcRoute(waypoints Array[structs.PhantomNode], closed bool) (Route, error) {
	count := waypoints.Length()
	leg_count := count - 1
	if closed && count > 1 {
		leg_count = count
	}
	if leg_count < 0 {
		leg_count = 0
	}

	route := Route{
		Legs:     NewList[Leg](leg_count),
		Weight:   0,
		Geometry: geo.CoordArray{},
	}
	if count == 1 {
		if !waypoints[0].IsValid() {
			return Route{}, fmt.Errorf("%w: waypoint not snapped to graph", ErrNoPath)
		}
		route.Geometry = append(route.Geometry, self.g.GetNodeGeom(waypoints[0].Node))
	}

	for i := 0; i < leg_count; i++ {
		from := i
		to := (i + 1) % count
		start := waypoints[from]
		end := waypoints[to]
		path, err := self.CalcPath(start, end)
		if err != nil {
			return Route{}, fmt.Errorf("leg %v: %w", i, err)
		}
		weight := structs.SumWeights(start.Offset, path.GetWeight(), end.Offset)
		geom := path.GetGeometry(self.g, self.attributes)
		route.Legs.Add(Leg{
			From:     from,
			To:       to,
			Weight:   weight,
			Edges:    path.GetEdges(),
			Geometry: geom,
		})
		route.Weight = structs.AddWeight(route.Weight, weight)
		if len(route.Geometry) > 0 && len(geom) > 0 {
			geom = geom[1:]
		}
		route.Geometry = append(route.Geometry, geom...)
	}
	return route, nil
}
