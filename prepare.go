package main

import (
	"github.com/ttpr0/go-trip/algorithm"
	"github.com/ttpr0/go-trip/attr"
	"github.com/ttpr0/go-trip/comps"
	"github.com/ttpr0/go-trip/geo"
	"github.com/ttpr0/go-trip/graph"
	"github.com/ttpr0/go-trip/parser"
	"github.com/ttpr0/go-trip/structs"
	"golang.org/x/exp/slog"

	. "github.com/ttpr0/go-trip/util"
)

// Parses the osm file for the given profile type (cached per type)
// and removes all nodes outside the largest strongly connected component.
func PrepareGraph(typ ProfileType, osm_file string, prep_cache PrepDict) (*comps.GraphBase, *attr.GraphAttributes, error) {
	if prep_cache.ContainsKey(typ) {
		cached := prep_cache.Get(typ)
		return cached.A, cached.B, nil
	}

	base, attributes, err := parser.ParseGraph(osm_file, GetDecoder(typ))
	if err != nil {
		return nil, nil, err
	}
	remove := RemoveConnectedComponents(base)
	if remove.Length() > 0 {
		slog.Info("Removing disconnected nodes", "count", remove.Length())
		base, attributes = RemoveNodes(base, attributes, remove)
	}
	slog.Info("Graph prepared", "nodes", base.NodeCount(), "edges", base.EdgeCount())

	prep_cache.Set(typ, MakeTuple(base, attributes))
	return base, attributes, nil
}

func RemoveConnectedComponents(base *comps.GraphBase) List[int32] {
	eq_weight := comps.NewEqualWeighting()
	g := graph.BuildGraph(base, eq_weight, None[comps.IGraphIndex]())
	return algorithm.FindDisconnectedNodes(g)
}

// Rebuilds base and attributes without the given nodes and all edges touching them.
func RemoveNodes(base *comps.GraphBase, attributes *attr.GraphAttributes, nodes List[int32]) (*comps.GraphBase, *attr.GraphAttributes) {
	removed := NewArray[bool](base.NodeCount())
	for _, node := range nodes {
		removed[node] = true
	}

	mapping := NewArray[int32](base.NodeCount())
	new_nodes := NewList[structs.Node](base.NodeCount())
	for i := 0; i < base.NodeCount(); i++ {
		if removed[i] {
			mapping[i] = -1
			continue
		}
		mapping[i] = int32(new_nodes.Length())
		new_nodes.Add(base.GetNode(int32(i)))
	}

	new_edges := NewList[structs.Edge](base.EdgeCount())
	new_attribs := NewList[attr.EdgeAttribs](base.EdgeCount())
	new_geoms := NewList[geo.CoordArray](base.EdgeCount())
	for i := 0; i < base.EdgeCount(); i++ {
		edge := base.GetEdge(int32(i))
		if removed[edge.NodeA] || removed[edge.NodeB] {
			continue
		}
		new_edges.Add(structs.Edge{
			NodeA: mapping[edge.NodeA],
			NodeB: mapping[edge.NodeB],
		})
		new_attribs.Add(attributes.GetEdgeAttribs(int32(i)))
		new_geoms.Add(attributes.GetEdgeGeom(int32(i)))
	}

	new_base := comps.NewGraphBase(Array[structs.Node](new_nodes), Array[structs.Edge](new_edges))
	new_attributes := attr.New(Array[attr.EdgeAttribs](new_attribs), Array[geo.CoordArray](new_geoms))
	return new_base, new_attributes
}
