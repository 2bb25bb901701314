package routing

import (
	"github.com/ttpr0/go-trip/attr"
	"github.com/ttpr0/go-trip/geo"
	"github.com/ttpr0/go-trip/graph"
	. "github.com/ttpr0/go-trip/util"
)

//*******************************************
// path
//*******************************************

// Sequence of base graph edges between two nodes.
type Path struct {
	start  int32
	end    int32
	edges  List[int32]
	weight int32
}

func NewPath(start, end int32, edges List[int32], weight int32) Path {
	return Path{
		start:  start,
		end:    end,
		edges:  edges,
		weight: weight,
	}
}

func (self Path) GetStart() int32 {
	return self.start
}
func (self Path) GetEnd() int32 {
	return self.end
}
func (self Path) GetEdges() List[int32] {
	return self.edges
}
func (self Path) GetWeight() int32 {
	return self.weight
}

// Builds the geometry of the path.
//
// Edge geometries are taken from attributes if available, otherwise edges
// are drawn as straight lines between their nodes.
func (self Path) GetGeometry(g graph.IGraph, attributes Optional[attr.IAttributes]) geo.CoordArray {
	coords := NewList[geo.Coord](self.edges.Length() + 1)
	coords.Add(g.GetNodeGeom(self.start))
	for _, edge_id := range self.edges {
		if attributes.HasValue() {
			geom := attributes.Value.GetEdgeGeom(edge_id)
			if len(geom) >= 2 {
				coords = append(coords, geom[1:]...)
				continue
			}
		}
		edge := g.GetEdge(edge_id)
		coords.Add(g.GetNodeGeom(edge.NodeB))
	}
	return geo.CoordArray(coords)
}
