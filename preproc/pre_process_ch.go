package preproc

import (
	"github.com/ttpr0/go-trip/comps"
	"github.com/ttpr0/go-trip/graph"
	"github.com/ttpr0/go-trip/structs"
	. "github.com/ttpr0/go-trip/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// preprocessing graph
//*******************************************

type CHPreprocGraph struct {
	// added attributes to build ch
	ch_topology structs.AdjacencyList
	node_levels Array[int16]
	shortcuts   structs.ShortcutStore

	// underlying base graph
	base   comps.IGraphBase
	weight comps.IWeighting
}

func TransformToCHPreprocGraph(base comps.IGraphBase, weight comps.IWeighting) *CHPreprocGraph {
	return &CHPreprocGraph{
		base:   base,
		weight: weight,

		shortcuts:   structs.NewShortcutStore(100),
		ch_topology: structs.NewAdjacencyList(base.NodeCount()),
		node_levels: NewArray[int16](base.NodeCount()),
	}
}

func TransformToCHData(dg *CHPreprocGraph) *comps.CH {
	return comps.NewCH(dg.shortcuts, *structs.AdjacencyListToArray(&dg.ch_topology), dg.node_levels)
}

func (self *CHPreprocGraph) GetExplorer() *CHPreprocGraphExplorer {
	sh_accessor := self.ch_topology.GetAccessor()
	return &CHPreprocGraphExplorer{
		graph:       self,
		accessor:    self.base.GetAccessor(),
		sh_accessor: &sh_accessor,
	}
}
func (self *CHPreprocGraph) NodeCount() int {
	return self.base.NodeCount()
}
func (self *CHPreprocGraph) GetWeight(id int32, is_shortcut bool) int32 {
	if is_shortcut {
		shc := self.shortcuts.GetShortcut(id)
		return shc.Weight
	} else {
		return self.weight.GetEdgeWeight(id)
	}
}

// Adds a shortcut from node_a to node_b replacing the edges (node_a -> via, via -> node_b).
func (self *CHPreprocGraph) AddShortcut(node_a, node_b int32, edges [2]Tuple[int32, byte]) {
	if node_a == node_b {
		return
	}

	weight := structs.AddWeight(
		self.GetWeight(edges[0].A, edges[0].B == structs.CHILD_SHORTCUT),
		self.GetWeight(edges[1].A, edges[1].B == structs.CHILD_SHORTCUT),
	)
	shc := structs.NewShortcut(node_a, node_b, weight)
	shc_id := self.shortcuts.AddCHShortcut(shc, edges)

	self.ch_topology.AddEdgeEntries(node_a, node_b, shc_id, structs.CHILD_SHORTCUT)
}

type CHPreprocGraphExplorer struct {
	graph       *CHPreprocGraph
	accessor    structs.IAdjAccessor
	sh_accessor structs.IAdjAccessor
}

func (self *CHPreprocGraphExplorer) ForAdjacentEdges(node int32, direction graph.Direction, callback func(graph.EdgeRef)) {
	self.accessor.SetBaseNode(node, direction == graph.FORWARD)
	for self.accessor.Next() {
		callback(graph.EdgeRef{
			EdgeID:  self.accessor.GetEdgeID(),
			OtherID: self.accessor.GetOtherID(),
			Type:    graph.EDGE_TYPE,
		})
	}
	self.sh_accessor.SetBaseNode(node, direction == graph.FORWARD)
	for self.sh_accessor.Next() {
		callback(graph.EdgeRef{
			EdgeID:  self.sh_accessor.GetEdgeID(),
			OtherID: self.sh_accessor.GetOtherID(),
			Type:    graph.CH_SHORTCUT_TYPE,
		})
	}
}
func (self *CHPreprocGraphExplorer) GetEdgeWeight(edge graph.EdgeRef) int32 {
	return self.graph.GetWeight(edge.EdgeID, edge.IsCHShortcut())
}

// Returns the cheapest edge or shortcut from -> to.
func (self *CHPreprocGraphExplorer) GetEdgeBetween(from, to int32) (graph.EdgeRef, bool) {
	best := graph.EdgeRef{}
	best_weight := structs.INVALID_WEIGHT
	found := false
	self.ForAdjacentEdges(from, graph.FORWARD, func(ref graph.EdgeRef) {
		if ref.OtherID != to {
			return
		}
		weight := self.GetEdgeWeight(ref)
		if !found || weight < best_weight {
			best = ref
			best_weight = weight
			found = true
		}
	})
	return best, found
}

//*******************************************
// ch utility
//*******************************************

func _ChildEdge(ref graph.EdgeRef) Tuple[int32, byte] {
	if ref.IsCHShortcut() {
		return MakeTuple(ref.EdgeID, structs.CHILD_SHORTCUT)
	}
	return MakeTuple(ref.EdgeID, structs.CHILD_EDGE)
}

// * searches for neighbours using edges and shortcuts for a node
//
// * is-contracted is used to limit search to nodes that have not been contracted yet
//
// * returns in-neighbours and out-neighbours
func _FindNeighbours(explorer *CHPreprocGraphExplorer, id int32, is_contracted Array[bool]) (List[int32], List[int32]) {
	out_neigbours := NewList[int32](4)
	explorer.ForAdjacentEdges(id, graph.FORWARD, func(ref graph.EdgeRef) {
		other_id := ref.OtherID
		if other_id == id || is_contracted[other_id] || Contains(out_neigbours, other_id) {
			return
		}
		out_neigbours.Add(other_id)
	})

	in_neigbours := NewList[int32](4)
	explorer.ForAdjacentEdges(id, graph.BACKWARD, func(ref graph.EdgeRef) {
		other_id := ref.OtherID
		if other_id == id || is_contracted[other_id] || Contains(in_neigbours, other_id) {
			return
		}
		in_neigbours.Add(other_id)
	})

	return in_neigbours, out_neigbours
}

type _FlagSH struct {
	curr_length int32
	prev_edge   graph.EdgeRef
	prev_node   int32
	visited     bool
	is_target   bool
}

// Performs a local dijkstra search from start until all targets are settled.
//
// Contracted nodes are not used while finding shortest paths.
func _RunLocalSearch(start int32, targets List[int32], explorer *CHPreprocGraphExplorer, heap *PriorityQueue[int32, int32], flags Flags[_FlagSH], is_contracted Array[bool]) {
	heap.Clear()
	flags.Reset()

	target_count := 0
	for _, target := range targets {
		target_flag := flags.Get(target)
		if !target_flag.is_target {
			target_flag.is_target = true
			target_count += 1
		}
	}
	start_flag := flags.Get(start)
	start_flag.curr_length = 0
	start_flag.prev_node = -1
	heap.Enqueue(start, 0)

	found_count := 0
	for found_count < target_count {
		curr_id, ok := heap.Dequeue()
		if !ok {
			break
		}
		curr_flag := flags.Get(curr_id)
		if curr_flag.visited {
			continue
		}
		curr_flag.visited = true
		if curr_flag.is_target {
			found_count += 1
		}
		explorer.ForAdjacentEdges(curr_id, graph.FORWARD, func(ref graph.EdgeRef) {
			other_id := ref.OtherID
			if is_contracted[other_id] {
				return
			}
			other_flag := flags.Get(other_id)
			if other_flag.visited {
				return
			}
			newlength := structs.AddWeight(curr_flag.curr_length, explorer.GetEdgeWeight(ref))
			if newlength < other_flag.curr_length {
				other_flag.curr_length = newlength
				other_flag.prev_edge = ref
				other_flag.prev_node = curr_id
				heap.Enqueue(other_id, newlength)
			}
		})
	}
}

// Returns the edges forming the shortcut from -> via -> to.
// If a witness path exists false will be returned.
func _GetShortcut(from, to, via int32, explorer *CHPreprocGraphExplorer, flags Flags[_FlagSH]) ([2]Tuple[int32, byte], bool) {
	edges := [2]Tuple[int32, byte]{}

	to_flag := flags.Get(to)
	if !to_flag.visited {
		f_edge, ok_f := explorer.GetEdgeBetween(from, via)
		t_edge, ok_t := explorer.GetEdgeBetween(via, to)
		if !ok_f || !ok_t {
			return edges, false
		}
		edges[0] = _ChildEdge(f_edge)
		edges[1] = _ChildEdge(t_edge)
		return edges, true
	}

	// check if shortest path goes through node
	if to_flag.prev_node != via {
		return edges, false
	}
	node_flag := flags.Get(via)
	if node_flag.prev_node != from {
		return edges, false
	}
	edges[0] = _ChildEdge(node_flag.prev_edge)
	edges[1] = _ChildEdge(to_flag.prev_edge)
	return edges, true
}

//*******************************************
// preprocess ch
//*******************************************

// Contracts all nodes of the graph.
//
// Nodes are ordered by 2*ED + CN + 5*L (edge difference, contracted neighbours, level)
// with lazy priority updates. Both endpoints of every edge and shortcut end up on
// different levels.
func CalcContraction(base comps.IGraphBase, weight comps.IWeighting) *comps.CH {
	g := TransformToCHPreprocGraph(base, weight)
	slog.Info("started contracting graph", "nodes", g.NodeCount())

	is_contracted := NewArray[bool](g.NodeCount())
	node_levels := NewArray[int16](g.NodeCount())
	contracted_neighbours := NewArray[int](g.NodeCount())

	heap := NewPriorityQueue[int32, int32](10)
	flags := NewFlags[_FlagSH](int32(g.NodeCount()), _FlagSH{curr_length: structs.INVALID_WEIGHT, prev_node: -1})
	explorer := g.GetExplorer()

	compute_priority := func(node int32) int {
		in_neigbours, out_neigbours := _FindNeighbours(explorer, node, is_contracted)
		edge_diff := -(in_neigbours.Length() + out_neigbours.Length())
		for _, from := range in_neigbours {
			_RunLocalSearch(from, out_neigbours, explorer, &heap, flags, is_contracted)
			for _, to := range out_neigbours {
				if from == to {
					continue
				}
				if _, needed := _GetShortcut(from, to, node, explorer, flags); needed {
					edge_diff += 1
				}
			}
		}
		return 2*edge_diff + contracted_neighbours[node] + 5*int(node_levels[node])
	}

	node_priorities := NewArray[int](g.NodeCount())
	contraction_order := NewPriorityQueue[Tuple[int32, int], int](g.NodeCount())
	for i := 0; i < g.NodeCount(); i++ {
		prio := compute_priority(int32(i))
		node_priorities[i] = prio
		contraction_order.Enqueue(MakeTuple(int32(i), prio), prio)
	}

	count := 0
	for {
		temp, ok := contraction_order.Dequeue()
		if !ok {
			break
		}
		node_id := temp.A
		if is_contracted[node_id] || temp.B != node_priorities[node_id] {
			continue
		}
		count += 1
		if count%10000 == 0 {
			slog.Debug("contracting", "node", count, "of", g.NodeCount())
		}

		// contract node
		in_neigbours, out_neigbours := _FindNeighbours(explorer, node_id, is_contracted)
		for _, from := range in_neigbours {
			_RunLocalSearch(from, out_neigbours, explorer, &heap, flags, is_contracted)
			for _, to := range out_neigbours {
				if from == to {
					continue
				}
				edges, needed := _GetShortcut(from, to, node_id, explorer, flags)
				if !needed {
					continue
				}
				g.AddShortcut(from, to, edges)
			}
		}
		is_contracted[node_id] = true

		// update neighbours
		level := node_levels[node_id]
		update := func(nb int32) {
			node_levels[nb] = Max(level+1, node_levels[nb])
			contracted_neighbours[nb] += 1
		}
		for _, nb := range in_neigbours {
			update(nb)
		}
		for _, nb := range out_neigbours {
			update(nb)
		}
		for _, nb := range append(in_neigbours, out_neigbours...) {
			if is_contracted[nb] {
				continue
			}
			prio := compute_priority(nb)
			if prio == node_priorities[nb] {
				continue
			}
			node_priorities[nb] = prio
			contraction_order.Enqueue(MakeTuple(nb, prio), prio)
		}
	}
	for i := 0; i < g.NodeCount(); i++ {
		g.node_levels[i] = node_levels[i]
	}
	slog.Info("finished contracting graph", "shortcuts", g.shortcuts.ShortcutCount())

	return TransformToCHData(g)
}
