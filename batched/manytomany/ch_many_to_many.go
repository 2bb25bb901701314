package manytomany

import (
	"github.com/ttpr0/go-trip/graph"
	"github.com/ttpr0/go-trip/structs"
	. "github.com/ttpr0/go-trip/util"
)

//*******************************************
// ch many-to-many
//*******************************************

// Bucket based many-to-many search on a contraction hierarchy.
//
// One backward upward search per target stores (target, weight) buckets on
// every settled node, one forward upward search per source combines its
// weights with the buckets found on settled nodes.
type CHManyToMany struct {
	g     graph.ICHGraph
	heaps *_HeapPool

	// Skip relaxing nodes that are reached cheaper from a higher node.
	StallOnDemand bool
}

func NewCHManyToMany(g graph.ICHGraph) *CHManyToMany {
	return &CHManyToMany{
		g:             g,
		heaps:         _NewHeapPool(g.NodeCount()),
		StallOnDemand: true,
	}
}

func (self *CHManyToMany) CreateSolver() ISolver {
	return &CHManyToManySolver{
		g:        self.g,
		explorer: self.g.GetGraphExplorer(),
		heaps:    self.heaps,
		stall:    self.StallOnDemand,
	}
}

type NodeBucket struct {
	target int32
	weight int32
}

type CHManyToManySolver struct {
	g        graph.ICHGraph
	explorer graph.IGraphExplorer
	heaps    *_HeapPool
	stall    bool
}

func (self *CHManyToManySolver) CalcTable(phantoms Array[structs.PhantomNode], sources Array[int], targets Array[int]) Array[int32] {
	rows := sources.Length()
	cols := targets.Length()
	table := _NewTable(rows, cols)
	if rows == 0 || cols == 0 {
		return table
	}

	heap := self.heaps.Get()
	defer self.heaps.Put(heap)

	// backward searches
	buckets := NewDict[int32, List[NodeBucket]](100)
	for col, t := range targets {
		phantom := phantoms[t]
		if phantom.Node < 0 {
			continue
		}
		heap.Clear()
		heap.Insert(phantom.Node, phantom.Offset)
		for {
			node, key, ok := heap.DeleteMin()
			if !ok {
				break
			}
			list := buckets[node]
			list.Add(NodeBucket{target: int32(col), weight: key})
			buckets[node] = list
			self._RoutingStep(heap, node, key, graph.BACKWARD)
		}
	}

	// forward searches
	for row, s := range sources {
		phantom := phantoms[s]
		if phantom.Node < 0 {
			continue
		}
		heap.Clear()
		heap.Insert(phantom.Node, phantom.Offset)
		for {
			node, key, ok := heap.DeleteMin()
			if !ok {
				break
			}
			if list, ok := buckets[node]; ok {
				for _, bucket := range list {
					index := row*cols + int(bucket.target)
					weight := structs.AddWeight(key, bucket.weight)
					if weight < table[index] {
						table[index] = weight
					}
				}
			}
			self._RoutingStep(heap, node, key, graph.FORWARD)
		}
	}

	return table
}

// Relaxes all upward edges of node in direction dir.
func (self *CHManyToManySolver) _RoutingStep(heap *QueryHeap, node int32, key int32, dir graph.Direction) {
	if self.stall && self._StallAtNode(heap, node, key, dir) {
		return
	}
	self.explorer.ForAdjacentEdges(node, dir, graph.ADJACENT_UPWARDS, func(ref graph.EdgeRef) {
		weight := structs.AddWeight(key, self.explorer.GetEdgeWeight(ref))
		heap.Insert(ref.OtherID, weight)
	})
}

// Returns true if a higher node already reached by this search offers a cheaper
// path to node through an edge in the opposite direction.
func (self *CHManyToManySolver) _StallAtNode(heap *QueryHeap, node int32, key int32, dir graph.Direction) bool {
	stalled := false
	self.explorer.ForAdjacentEdges(node, dir.Reverse(), graph.ADJACENT_UPWARDS, func(ref graph.EdgeRef) {
		if stalled {
			return
		}
		other := ref.OtherID
		if !heap.WasInserted(other) {
			return
		}
		if structs.AddWeight(heap.GetKey(other), self.explorer.GetEdgeWeight(ref)) < key {
			stalled = true
		}
	})
	return stalled
}
