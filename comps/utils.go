package comps

import (
	"github.com/ttpr0/go-trip/structs"
	. "github.com/ttpr0/go-trip/util"
)

//*******************************************
// build graph components
//*******************************************

func _BuildTopology(nodes Array[structs.Node], edges Array[structs.Edge]) structs.AdjacencyArray {
	dyn := structs.NewAdjacencyList(nodes.Length())
	for id, edge := range edges {
		dyn.AddEdgeEntries(edge.NodeA, edge.NodeB, int32(id), structs.CHILD_EDGE)
	}

	return *structs.AdjacencyListToArray(&dyn)
}

func _BuildKDTreeIndex(base IGraphBase) KDTree[int32] {
	tree := NewKDTree[int32](2)
	for i := 0; i < base.NodeCount(); i++ {
		if !base.IsNode(int32(i)) {
			continue
		}
		node := base.GetNode(int32(i))
		geom := node.Loc
		tree.Insert(geom[:], int32(i))
	}
	return tree
}
