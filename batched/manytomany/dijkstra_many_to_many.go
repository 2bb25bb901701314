package manytomany

import (
	"github.com/ttpr0/go-trip/algorithm"
	"github.com/ttpr0/go-trip/graph"
	"github.com/ttpr0/go-trip/structs"
	. "github.com/ttpr0/go-trip/util"
)

//*******************************************
// dijkstra many-to-many
//*******************************************

// Computes tables with one full forward dijkstra per source.
type DijkstraManyToMany struct {
	g graph.IGraph
}

func NewDijkstraManyToMany(g graph.IGraph) *DijkstraManyToMany {
	return &DijkstraManyToMany{
		g: g,
	}
}

func (self *DijkstraManyToMany) CreateSolver() ISolver {
	return &DijkstraManyToManySolver{
		g:     self.g,
		flags: NewFlags[algorithm.DistFlag](int32(self.g.NodeCount()), algorithm.UnreachedFlag()),
	}
}

type DijkstraManyToManySolver struct {
	g     graph.IGraph
	flags Flags[algorithm.DistFlag]
}

func (self *DijkstraManyToManySolver) CalcTable(phantoms Array[structs.PhantomNode], sources Array[int], targets Array[int]) Array[int32] {
	rows := sources.Length()
	cols := targets.Length()
	table := _NewTable(rows, cols)

	for row, s := range sources {
		phantom := phantoms[s]
		if phantom.Node < 0 {
			continue
		}
		self.flags.Reset()
		starts := Array[Tuple[int32, int32]]{MakeTuple(phantom.Node, phantom.Offset)}
		algorithm.CalcRangeDijkstra(self.g, starts, self.flags, structs.INVALID_WEIGHT-1)
		for col, t := range targets {
			target := phantoms[t]
			if target.Node < 0 {
				continue
			}
			dist := self.flags.Get(target.Node).Dist
			table[row*cols+col] = structs.AddWeight(dist, target.Offset)
		}
	}

	return table
}
