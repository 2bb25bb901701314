package routing

import (
	"github.com/ttpr0/go-trip/graph"
	"github.com/ttpr0/go-trip/structs"
	. "github.com/ttpr0/go-trip/util"
)

//*******************************************
// one-directional dijkstra
//*******************************************

type _FlagD struct {
	path_length int32
	prev_edge   int32
	visited     bool
}

type Dijkstra struct {
	g        graph.IGraph
	explorer graph.IGraphExplorer
	flags    Flags[_FlagD]
	heap     PriorityQueue[int32, int32]
	start    int32
	end      int32
}

func NewDijkstra(g graph.IGraph, start, end int32) *Dijkstra {
	return &Dijkstra{
		g:        g,
		explorer: g.GetGraphExplorer(),
		flags:    NewFlags[_FlagD](int32(g.NodeCount()), _FlagD{path_length: structs.INVALID_WEIGHT, prev_edge: -1}),
		heap:     NewPriorityQueue[int32, int32](100),
		start:    start,
		end:      end,
	}
}

func (self *Dijkstra) CalcShortestPath() bool {
	self.flags.Reset()
	self.heap.Clear()
	self.flags.Get(self.start).path_length = 0
	self.heap.Enqueue(self.start, 0)

	for {
		curr_id, ok := self.heap.Dequeue()
		if !ok {
			return false
		}
		curr_flag := self.flags.Get(curr_id)
		if curr_flag.visited {
			continue
		}
		curr_flag.visited = true
		if curr_id == self.end {
			return true
		}
		self.explorer.ForAdjacentEdges(curr_id, graph.FORWARD, graph.ADJACENT_EDGES, func(ref graph.EdgeRef) {
			other_id := ref.OtherID
			other_flag := self.flags.Get(other_id)
			if other_flag.visited {
				return
			}
			new_length := structs.AddWeight(curr_flag.path_length, self.explorer.GetEdgeWeight(ref))
			if new_length < other_flag.path_length {
				other_flag.path_length = new_length
				other_flag.prev_edge = ref.EdgeID
				self.heap.Enqueue(other_id, new_length)
			}
		})
	}
}

func (self *Dijkstra) GetShortestPath() Path {
	edges := NewList[int32](10)
	end_flag := self.flags.Get(self.end)
	if !end_flag.visited {
		return NewPath(self.start, self.end, edges, structs.INVALID_WEIGHT)
	}
	curr_id := self.end
	for curr_id != self.start {
		edge_id := self.flags.Get(curr_id).prev_edge
		edges.Add(edge_id)
		curr_id = self.g.GetEdge(edge_id).NodeA
	}
	for i, j := 0, edges.Length()-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}
	return NewPath(self.start, self.end, edges, end_flag.path_length)
}
