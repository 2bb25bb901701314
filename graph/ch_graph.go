package graph

import (
	"github.com/ttpr0/go-trip/comps"
	"github.com/ttpr0/go-trip/geo"
	"github.com/ttpr0/go-trip/structs"
)

//*******************************************
// ch-graph interface
//******************************************

type ICHGraph interface {
	// Base IGraph
	GetGraphExplorer() IGraphExplorer
	NodeCount() int
	EdgeCount() int
	IsNode(node int32) bool
	GetNode(node int32) structs.Node
	GetEdge(edge int32) structs.Edge
	GetNodeGeom(node int32) geo.Coord
	GetClosestNode(point geo.Coord) (int32, bool)

	// CH Specific
	GetNodeLevel(node int32) int16
	ShortcutCount() int
	GetShortcut(shortcut int32) structs.Shortcut
	GetEdgesFromShortcut(shortcut_id int32, reversed bool, handler func(int32))
}

//*******************************************
// ch-graph
//******************************************

type CHGraph struct {
	// Base Graph
	base   comps.IGraphBase
	weight comps.IWeighting
	index  *_LazyIndex

	// Additional Storage
	ch *comps.CH
}

func (self *CHGraph) GetGraphExplorer() IGraphExplorer {
	return &CHGraphExplorer{
		graph:       self,
		accessor:    self.base.GetAccessor(),
		sh_accessor: self.ch.GetShortcutAccessor(),
		weight:      self.weight,
	}
}
func (self *CHGraph) GetNodeLevel(node int32) int16 {
	return self.ch.GetNodeLevel(node)
}
func (self *CHGraph) NodeCount() int {
	return self.base.NodeCount()
}
func (self *CHGraph) EdgeCount() int {
	return self.base.EdgeCount()
}
func (self *CHGraph) ShortcutCount() int {
	return self.ch.ShortcutCount()
}
func (self *CHGraph) IsNode(node int32) bool {
	return self.base.IsNode(node)
}
func (self *CHGraph) GetNode(node int32) structs.Node {
	return self.base.GetNode(node)
}
func (self *CHGraph) GetEdge(edge int32) structs.Edge {
	return self.base.GetEdge(edge)
}
func (self *CHGraph) GetNodeGeom(node int32) geo.Coord {
	return self.base.GetNode(node).Loc
}
func (self *CHGraph) GetClosestNode(point geo.Coord) (int32, bool) {
	return self.index.GetClosestNode(point)
}
func (self *CHGraph) GetShortcut(shortcut int32) structs.Shortcut {
	return self.ch.GetShortcut(shortcut)
}
func (self *CHGraph) GetEdgesFromShortcut(shc_id int32, reversed bool, handler func(int32)) {
	self.ch.GetEdgesFromShortcut(shc_id, reversed, handler)
}

//*******************************************
// ch-graph explorer
//******************************************

type CHGraphExplorer struct {
	graph       *CHGraph
	accessor    structs.IAdjAccessor
	sh_accessor structs.IAdjAccessor
	weight      comps.IWeighting
}

func (self *CHGraphExplorer) ForAdjacentEdges(node int32, direction Direction, typ Adjacency, callback func(EdgeRef)) {
	forward := direction == FORWARD
	switch typ {
	case ADJACENT_ALL:
		self._Iterate(self.accessor, node, forward, EDGE_TYPE, callback)
		self._Iterate(self.sh_accessor, node, forward, CH_SHORTCUT_TYPE, callback)
	case ADJACENT_EDGES:
		self._Iterate(self.accessor, node, forward, EDGE_TYPE, callback)
	case ADJACENT_SHORTCUTS:
		self._Iterate(self.sh_accessor, node, forward, CH_SHORTCUT_TYPE, callback)
	case ADJACENT_UPWARDS:
		this_level := self.graph.GetNodeLevel(node)
		filter := func(ref EdgeRef) {
			if this_level >= self.graph.GetNodeLevel(ref.OtherID) {
				return
			}
			callback(ref)
		}
		self._Iterate(self.accessor, node, forward, EDGE_TYPE, filter)
		self._Iterate(self.sh_accessor, node, forward, CH_SHORTCUT_TYPE, filter)
	case ADJACENT_DOWNWARDS:
		this_level := self.graph.GetNodeLevel(node)
		filter := func(ref EdgeRef) {
			if this_level <= self.graph.GetNodeLevel(ref.OtherID) {
				return
			}
			callback(ref)
		}
		self._Iterate(self.accessor, node, forward, EDGE_TYPE, filter)
		self._Iterate(self.sh_accessor, node, forward, CH_SHORTCUT_TYPE, filter)
	default:
		panic("Adjacency-type not implemented for this graph.")
	}
}
func (self *CHGraphExplorer) _Iterate(accessor structs.IAdjAccessor, node int32, forward bool, typ byte, callback func(EdgeRef)) {
	accessor.SetBaseNode(node, forward)
	for accessor.Next() {
		callback(EdgeRef{
			EdgeID:  accessor.GetEdgeID(),
			OtherID: accessor.GetOtherID(),
			Type:    typ,
		})
	}
}
func (self *CHGraphExplorer) GetEdgeWeight(edge EdgeRef) int32 {
	if edge.IsCHShortcut() {
		shc := self.graph.GetShortcut(edge.EdgeID)
		return shc.Weight
	} else {
		return self.weight.GetEdgeWeight(edge.EdgeID)
	}
}
func (self *CHGraphExplorer) GetOtherNode(edge EdgeRef, node int32) int32 {
	if edge.IsShortcut() {
		e := self.graph.GetShortcut(edge.EdgeID)
		if node == e.From {
			return e.To
		}
		if node == e.To {
			return e.From
		}
		return -1
	} else {
		e := self.graph.GetEdge(edge.EdgeID)
		if node == e.NodeA {
			return e.NodeB
		}
		if node == e.NodeB {
			return e.NodeA
		}
		return -1
	}
}
