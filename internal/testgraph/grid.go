// Package testgraph builds small synthetic road graphs for tests.
package testgraph

import (
	"math/rand"

	"github.com/ttpr0/go-trip/comps"
	"github.com/ttpr0/go-trip/geo"
	"github.com/ttpr0/go-trip/structs"
	. "github.com/ttpr0/go-trip/util"
)

// Returns the node id of grid cell (x, y).
func GridNode(width, x, y int) int32 {
	return int32(y*width + x)
}

// Returns the location of grid cell (x, y).
func GridCoord(x, y int) geo.Coord {
	return geo.Coord{7.0 + float32(x)*0.001, 50.0 + float32(y)*0.001}
}

// Builds a width x height grid with random weights in [1, 20].
//
// Every oneway_every-th street is only traversable in one direction,
// 0 disables oneways.
func BuildGrid(width, height int, seed int64, oneway_every int) (*comps.GraphBase, *comps.DefaultWeighting) {
	rng := rand.New(rand.NewSource(seed))

	nodes := NewArray[structs.Node](width * height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			nodes[GridNode(width, x, y)] = structs.Node{Loc: GridCoord(x, y)}
		}
	}

	edges := NewList[structs.Edge](4 * width * height)
	weights := NewList[int32](4 * width * height)
	street := 0
	add := func(a, b int32) {
		street += 1
		w_ab := int32(rng.Intn(20) + 1)
		w_ba := int32(rng.Intn(20) + 1)
		edges.Add(structs.Edge{NodeA: a, NodeB: b})
		weights.Add(w_ab)
		if oneway_every > 0 && street%oneway_every == 0 {
			return
		}
		edges.Add(structs.Edge{NodeA: b, NodeB: a})
		weights.Add(w_ba)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x+1 < width {
				add(GridNode(width, x, y), GridNode(width, x+1, y))
			}
			if y+1 < height {
				add(GridNode(width, x, y), GridNode(width, x, y+1))
			}
		}
	}

	base := comps.NewGraphBase(nodes, Array[structs.Edge](edges))
	weight := comps.NewDefaultWeighting(base)
	for i, w := range weights {
		weight.SetEdgeWeight(int32(i), w)
	}
	return base, weight
}

// Builds two disjoint grids side by side, nodes of the second grid start at width*height.
func BuildSplitGrid(width, height int, seed int64) (*comps.GraphBase, *comps.DefaultWeighting) {
	base_a, weight_a := BuildGrid(width, height, seed, 0)
	base_b, weight_b := BuildGrid(width, height, seed+1, 0)

	offset := int32(base_a.NodeCount())
	nodes := NewList[structs.Node](2 * base_a.NodeCount())
	for i := 0; i < base_a.NodeCount(); i++ {
		nodes.Add(base_a.GetNode(int32(i)))
	}
	for i := 0; i < base_b.NodeCount(); i++ {
		node := base_b.GetNode(int32(i))
		node.Loc[0] += 1.0
		nodes.Add(node)
	}
	edges := NewList[structs.Edge](base_a.EdgeCount() + base_b.EdgeCount())
	weights := NewList[int32](base_a.EdgeCount() + base_b.EdgeCount())
	for i := 0; i < base_a.EdgeCount(); i++ {
		edges.Add(base_a.GetEdge(int32(i)))
		weights.Add(weight_a.GetEdgeWeight(int32(i)))
	}
	for i := 0; i < base_b.EdgeCount(); i++ {
		edge := base_b.GetEdge(int32(i))
		edges.Add(structs.Edge{NodeA: edge.NodeA + offset, NodeB: edge.NodeB + offset})
		weights.Add(weight_b.GetEdgeWeight(int32(i)))
	}

	base := comps.NewGraphBase(Array[structs.Node](nodes), Array[structs.Edge](edges))
	weight := comps.NewDefaultWeighting(base)
	for i, w := range weights {
		weight.SetEdgeWeight(int32(i), w)
	}
	return base, weight
}
