package routing

import (
	"github.com/ttpr0/go-trip/graph"
	"github.com/ttpr0/go-trip/structs"
	. "github.com/ttpr0/go-trip/util"
)

//*******************************************
// bidirectional ch query
//*******************************************

type _FlagCH struct {
	fwd_dist     int32
	bwd_dist     int32
	fwd_prev     graph.EdgeRef
	bwd_prev     graph.EdgeRef
	fwd_prev_set bool
	bwd_prev_set bool
	fwd_visited  bool
	bwd_visited  bool
}

// Point-to-point query on a contraction hierarchy, both searches only
// follow edges to higher levels.
type CH struct {
	g         graph.ICHGraph
	explorer  graph.IGraphExplorer
	flags     Flags[_FlagCH]
	fwd_heap  PriorityQueue[int32, int32]
	bwd_heap  PriorityQueue[int32, int32]
	start     int32
	end       int32
	mid_id    int32
	best_dist int32
}

func NewCH(g graph.ICHGraph, start, end int32) *CH {
	return &CH{
		g:        g,
		explorer: g.GetGraphExplorer(),
		flags:    NewFlags[_FlagCH](int32(g.NodeCount()), _FlagCH{fwd_dist: structs.INVALID_WEIGHT, bwd_dist: structs.INVALID_WEIGHT}),
		fwd_heap: NewPriorityQueue[int32, int32](100),
		bwd_heap: NewPriorityQueue[int32, int32](100),
		start:    start,
		end:      end,
		mid_id:   -1,
	}
}

func (self *CH) CalcShortestPath() bool {
	self.flags.Reset()
	self.fwd_heap.Clear()
	self.bwd_heap.Clear()
	self.mid_id = -1
	self.best_dist = structs.INVALID_WEIGHT

	self.flags.Get(self.start).fwd_dist = 0
	self.flags.Get(self.end).bwd_dist = 0
	self.fwd_heap.Enqueue(self.start, 0)
	self.bwd_heap.Enqueue(self.end, 0)

	for {
		_, fwd_min, fwd_ok := self.fwd_heap.Peek()
		_, bwd_min, bwd_ok := self.bwd_heap.Peek()
		fwd_ok = fwd_ok && fwd_min < self.best_dist
		bwd_ok = bwd_ok && bwd_min < self.best_dist
		if !fwd_ok && !bwd_ok {
			break
		}
		if fwd_ok && (!bwd_ok || fwd_min <= bwd_min) {
			self._Step(graph.FORWARD)
		} else {
			self._Step(graph.BACKWARD)
		}
	}

	return self.mid_id != -1
}

func (self *CH) _Step(dir graph.Direction) {
	var heap *PriorityQueue[int32, int32]
	if dir == graph.FORWARD {
		heap = &self.fwd_heap
	} else {
		heap = &self.bwd_heap
	}
	curr_id, _ := heap.Dequeue()
	curr_flag := self.flags.Get(curr_id)
	if dir == graph.FORWARD {
		if curr_flag.fwd_visited {
			return
		}
		curr_flag.fwd_visited = true
	} else {
		if curr_flag.bwd_visited {
			return
		}
		curr_flag.bwd_visited = true
	}

	total := structs.AddWeight(curr_flag.fwd_dist, curr_flag.bwd_dist)
	if total < self.best_dist {
		self.best_dist = total
		self.mid_id = curr_id
	}

	var curr_dist int32
	if dir == graph.FORWARD {
		curr_dist = curr_flag.fwd_dist
	} else {
		curr_dist = curr_flag.bwd_dist
	}
	self.explorer.ForAdjacentEdges(curr_id, dir, graph.ADJACENT_UPWARDS, func(ref graph.EdgeRef) {
		other_id := ref.OtherID
		other_flag := self.flags.Get(other_id)
		new_length := structs.AddWeight(curr_dist, self.explorer.GetEdgeWeight(ref))
		if dir == graph.FORWARD {
			if other_flag.fwd_visited || new_length >= other_flag.fwd_dist {
				return
			}
			other_flag.fwd_dist = new_length
			other_flag.fwd_prev = ref
			other_flag.fwd_prev_set = true
		} else {
			if other_flag.bwd_visited || new_length >= other_flag.bwd_dist {
				return
			}
			other_flag.bwd_dist = new_length
			other_flag.bwd_prev = ref
			other_flag.bwd_prev_set = true
		}
		heap.Enqueue(other_id, new_length)
	})
}

func (self *CH) GetShortestPath() Path {
	edges := NewList[int32](10)
	if self.mid_id == -1 {
		return NewPath(self.start, self.end, edges, structs.INVALID_WEIGHT)
	}

	// forward part, collected from mid to start
	fwd_refs := NewList[graph.EdgeRef](10)
	curr_id := self.mid_id
	for curr_id != self.start {
		flag := self.flags.Get(curr_id)
		if !flag.fwd_prev_set {
			break
		}
		ref := flag.fwd_prev
		fwd_refs.Add(ref)
		curr_id = self.explorer.GetOtherNode(ref, curr_id)
	}
	for i := fwd_refs.Length() - 1; i >= 0; i-- {
		self._UnpackRef(fwd_refs[i], &edges)
	}

	// backward part from mid to end
	curr_id = self.mid_id
	for curr_id != self.end {
		flag := self.flags.Get(curr_id)
		if !flag.bwd_prev_set {
			break
		}
		ref := flag.bwd_prev
		self._UnpackRef(ref, &edges)
		curr_id = self.explorer.GetOtherNode(ref, curr_id)
	}

	return NewPath(self.start, self.end, edges, self.best_dist)
}

func (self *CH) _UnpackRef(ref graph.EdgeRef, edges *List[int32]) {
	if ref.IsCHShortcut() {
		self.g.GetEdgesFromShortcut(ref.EdgeID, false, func(edge int32) {
			edges.Add(edge)
		})
	} else {
		edges.Add(ref.EdgeID)
	}
}
