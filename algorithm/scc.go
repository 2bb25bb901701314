package algorithm

import (
	"github.com/ttpr0/go-trip/graph"
	. "github.com/ttpr0/go-trip/util"
)

//*******************************************
// directed graph interface
//*******************************************

// Minimal adjacency view used by graph analysis algorithms.
type IDirectedGraph interface {
	NodeCount() int
	ForSuccessors(node int32, callback func(int32))
}

//*******************************************
// strongly connected components
//*******************************************

type _TarjanFrame struct {
	node  int32
	succs List[int32]
	pos   int
}

// Computes strongly connected components with tarjans algorithm.
//
// Returns all nodes grouped by component and the component boundaries,
// component i consists of nodes[ranges[i]:ranges[i+1]]. Components are emitted
// in the order they are completed. Uses an explicit stack so deep graphs do not
// grow the goroutine stack.
func TarjanSCC(g IDirectedGraph) (Array[int32], Array[int]) {
	n := g.NodeCount()
	indices := NewArray[int32](n)
	lowlinks := NewArray[int32](n)
	on_stack := NewArray[bool](n)
	for i := 0; i < n; i++ {
		indices[i] = -1
	}

	nodes := NewList[int32](n)
	ranges := NewList[int](8)
	ranges.Add(0)

	stack := NewList[int32](n)
	frames := NewList[_TarjanFrame](16)
	index := int32(0)

	visit := func(node int32) {
		indices[node] = index
		lowlinks[node] = index
		index += 1
		stack.Add(node)
		on_stack[node] = true
		succs := NewList[int32](4)
		g.ForSuccessors(node, func(other int32) {
			succs.Add(other)
		})
		frames.Add(_TarjanFrame{node: node, succs: succs})
	}

	for root := int32(0); root < int32(n); root++ {
		if indices[root] != -1 {
			continue
		}
		visit(root)
		for frames.Length() > 0 {
			frame := &frames[frames.Length()-1]
			curr := frame.node
			if frame.pos < frame.succs.Length() {
				other := frame.succs[frame.pos]
				frame.pos += 1
				if indices[other] == -1 {
					visit(other)
				} else if on_stack[other] {
					lowlinks[curr] = Min(lowlinks[curr], indices[other])
				}
				continue
			}

			frames.Remove(frames.Length() - 1)
			if lowlinks[curr] == indices[curr] {
				for {
					top := stack[stack.Length()-1]
					stack.Remove(stack.Length() - 1)
					on_stack[top] = false
					nodes.Add(top)
					if top == curr {
						break
					}
				}
				ranges.Add(nodes.Length())
			}
			if frames.Length() > 0 {
				parent := frames[frames.Length()-1].node
				lowlinks[parent] = Min(lowlinks[parent], lowlinks[curr])
			}
		}
	}

	return Array[int32](nodes), Array[int](ranges)
}

//*******************************************
// graph adapter
//*******************************************

type _GraphView struct {
	g        graph.IGraph
	explorer graph.IGraphExplorer
}

// Wraps a routing graph as IDirectedGraph.
//
// Not thread safe.
func NewGraphView(g graph.IGraph) IDirectedGraph {
	return &_GraphView{
		g:        g,
		explorer: g.GetGraphExplorer(),
	}
}

func (self *_GraphView) NodeCount() int {
	return self.g.NodeCount()
}
func (self *_GraphView) ForSuccessors(node int32, callback func(int32)) {
	self.explorer.ForAdjacentEdges(node, graph.FORWARD, graph.ADJACENT_EDGES, func(ref graph.EdgeRef) {
		callback(ref.OtherID)
	})
}

// Returns all nodes that are not part of the largest strongly connected component.
func FindDisconnectedNodes(g graph.IGraph) List[int32] {
	nodes, ranges := TarjanSCC(NewGraphView(g))
	largest := -1
	largest_size := 0
	for i := 0; i+1 < ranges.Length(); i++ {
		size := ranges[i+1] - ranges[i]
		if size > largest_size {
			largest = i
			largest_size = size
		}
	}
	remove := NewList[int32](10)
	for i := 0; i+1 < ranges.Length(); i++ {
		if i == largest {
			continue
		}
		for _, node := range nodes[ranges[i]:ranges[i+1]] {
			remove.Add(node)
		}
	}
	return remove
}
