package comps

import (
	"github.com/ttpr0/go-trip/structs"
	. "github.com/ttpr0/go-trip/util"
)

//*******************************************
// graph base interface
//*******************************************

type IGraphBase interface {
	NodeCount() int
	EdgeCount() int
	GetNode(node int32) structs.Node
	IsNode(node int32) bool
	GetEdge(edge int32) structs.Edge
	IsEdge(edge int32) bool
	GetAccessor() structs.IAdjAccessor
	GetNodeDegree(node int32, forward bool) int16
}

//*******************************************
// graph base
//*******************************************

var _ IGraphBase = &GraphBase{}

// Directed graph topology, every edge is traversable from NodeA to NodeB.
type GraphBase struct {
	nodes    Array[structs.Node]
	edges    Array[structs.Edge]
	topology structs.AdjacencyArray
}

func NewGraphBase(nodes Array[structs.Node], edges Array[structs.Edge]) *GraphBase {
	topology := _BuildTopology(nodes, edges)
	return &GraphBase{
		nodes:    nodes,
		edges:    edges,
		topology: topology,
	}
}

func (self *GraphBase) NodeCount() int {
	return len(self.nodes)
}
func (self *GraphBase) EdgeCount() int {
	return len(self.edges)
}
func (self *GraphBase) IsNode(node int32) bool {
	return node >= 0 && node < int32(len(self.nodes))
}
func (self *GraphBase) GetNode(node int32) structs.Node {
	return self.nodes[node]
}
func (self *GraphBase) IsEdge(edge int32) bool {
	return edge >= 0 && edge < int32(len(self.edges))
}
func (self *GraphBase) GetEdge(edge int32) structs.Edge {
	return self.edges[edge]
}
func (self *GraphBase) GetAccessor() structs.IAdjAccessor {
	accessor := self.topology.GetAccessor()
	return &accessor
}
func (self *GraphBase) GetNodeDegree(node int32, forward bool) int16 {
	return self.topology.GetDegree(node, forward)
}

//*******************************************
// load and store methods
//*******************************************

func (self *GraphBase) _Store(path string) error {
	if err := WriteArrayToFile(self.nodes, path+"-nodes"); err != nil {
		return err
	}
	if err := WriteArrayToFile(self.edges, path+"-edges"); err != nil {
		return err
	}
	return structs.StoreAdjacency(&self.topology, path+"-graph")
}

func (self *GraphBase) _New() *GraphBase {
	return &GraphBase{}
}

func (self *GraphBase) _Load(path string) error {
	nodes, err := ReadArrayFromFile[structs.Node](path + "-nodes")
	if err != nil {
		return err
	}
	edges, err := ReadArrayFromFile[structs.Edge](path + "-edges")
	if err != nil {
		return err
	}
	topology, err := structs.LoadAdjacency(path + "-graph")
	if err != nil {
		return err
	}

	*self = GraphBase{
		nodes:    nodes,
		edges:    edges,
		topology: *topology,
	}
	return nil
}
