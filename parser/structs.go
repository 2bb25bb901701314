package parser

import (
	"github.com/ttpr0/go-trip/attr"
	"github.com/ttpr0/go-trip/geo"
	. "github.com/ttpr0/go-trip/util"
)

//*******************************************
// parser structs
//*******************************************

// Way node seen during the first pass, Count > 1 marks a graph node.
type TempNode struct {
	Point geo.Coord
	Count int32
}
type OSMNode struct {
	Point geo.Coord
}
type OSMEdge struct {
	NodeA int
	NodeB int
	Attr  attr.EdgeAttribs
	// reversed oneway (oneway=-1), only traversable from NodeB to NodeA
	Reversed bool
	Nodes    List[geo.Coord]
}
