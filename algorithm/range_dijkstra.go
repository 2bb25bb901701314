package algorithm

import (
	"github.com/ttpr0/go-trip/graph"
	"github.com/ttpr0/go-trip/structs"
	. "github.com/ttpr0/go-trip/util"
)

type DistFlag struct {
	Dist int32
}

func (self *DistFlag) GetDist() int32 {
	return self.Dist
}

// Default flag value for CalcRangeDijkstra.
func UnreachedFlag() DistFlag {
	return DistFlag{Dist: structs.INVALID_WEIGHT}
}

type PQItem struct {
	item int32
	dist int32
}

// Runs a forward dijkstra from all starts (node, initial distance) until every node
// within max_range is settled. Distances are written to node_flags.
func CalcRangeDijkstra(g graph.IGraph, starts Array[Tuple[int32, int32]], node_flags Flags[DistFlag], max_range int32) {
	heap := NewPriorityQueue[PQItem, int32](100)
	explorer := g.GetGraphExplorer()

	for _, item := range starts {
		start := item.A
		dist := item.B
		start_flag := node_flags.Get(start)
		if dist >= start_flag.Dist {
			continue
		}
		start_flag.Dist = dist
		heap.Enqueue(PQItem{start, dist}, dist)
	}

	for {
		curr_item, ok := heap.Dequeue()
		if !ok {
			break
		}
		curr_id := curr_item.item
		curr_dist := curr_item.dist
		curr_flag := node_flags.Get(curr_id)
		if curr_flag.Dist < curr_dist {
			continue
		}
		explorer.ForAdjacentEdges(curr_id, graph.FORWARD, graph.ADJACENT_EDGES, func(ref graph.EdgeRef) {
			other_id := ref.OtherID
			other_flag := node_flags.Get(other_id)
			new_length := structs.AddWeight(curr_flag.Dist, explorer.GetEdgeWeight(ref))
			if new_length > max_range {
				return
			}
			if other_flag.Dist > new_length {
				other_flag.Dist = new_length
				heap.Enqueue(PQItem{other_id, new_length}, new_length)
			}
		})
	}
}
