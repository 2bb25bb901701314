package graph

import (
	"github.com/ttpr0/go-trip/comps"
	. "github.com/ttpr0/go-trip/util"
)

//*******************************************
// build graphs
//*******************************************

// Builds a graph over base and weight.
//
// If no index is given it will be built on the first snapping request.
func BuildGraph(base comps.IGraphBase, weight comps.IWeighting, index Optional[comps.IGraphIndex]) *Graph {
	return &Graph{
		base:   base,
		weight: weight,
		index:  _NewLazyIndex(base, index.Value),
	}
}

func BuildCHGraph(base comps.IGraphBase, weight comps.IWeighting, ch *comps.CH, index Optional[comps.IGraphIndex]) *CHGraph {
	return &CHGraph{
		base:   base,
		weight: weight,
		index:  _NewLazyIndex(base, index.Value),

		ch: ch,
	}
}
