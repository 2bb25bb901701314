package parser

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"golang.org/x/exp/slog"

	"github.com/ttpr0/go-trip/attr"
	"github.com/ttpr0/go-trip/comps"
	"github.com/ttpr0/go-trip/geo"
	"github.com/ttpr0/go-trip/structs"
	. "github.com/ttpr0/go-trip/util"
)

// Parses all routable ways of an osm pbf file into a graph.
//
// Graph nodes are way endpoints and nodes shared by several ways, every
// way is split at graph nodes into edges.
func ParseGraph(pbf_file string, decoder IOSMDecoder) (*comps.GraphBase, *attr.GraphAttributes, error) {
	file, err := os.Open(pbf_file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open osm file: %w", err)
	}
	defer file.Close()

	nodes := NewList[OSMNode](10000)
	edges := NewList[OSMEdge](10000)
	if err := _ParseOsm(file, decoder, &nodes, &edges); err != nil {
		return nil, nil, err
	}
	slog.Info(fmt.Sprintf("parsed osm file: %v nodes, %v edges", nodes.Length(), edges.Length()))
	base, attributes := _CreateGraphBase(nodes, edges)
	return base, attributes, nil
}

func _ParseOsm(file io.ReadSeeker, decoder IOSMDecoder, nodes *List[OSMNode], edges *List[OSMEdge]) error {
	osm_nodes := NewDict[int64, TempNode](1000)
	index_mapping := NewDict[int64, int](10000)

	passes := []func(scanner *osmpbf.Scanner){
		func(scanner *osmpbf.Scanner) {
			_InitWayHandler(scanner, decoder, osm_nodes)
		},
		func(scanner *osmpbf.Scanner) {
			_NodeHandler(scanner, osm_nodes, nodes, index_mapping)
		},
		func(scanner *osmpbf.Scanner) {
			_WayHandler(scanner, decoder, edges, osm_nodes, index_mapping)
		},
	}
	for i, pass := range passes {
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("failed to rewind osm file: %w", err)
		}
		scanner := osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
		pass(scanner)
		err := scanner.Err()
		scanner.Close()
		if err != nil {
			return fmt.Errorf("failed to scan osm file in pass %v: %w", i+1, err)
		}
	}
	return nil
}

func _CreateGraphBase(osmnodes List[OSMNode], osmedges List[OSMEdge]) (*comps.GraphBase, *attr.GraphAttributes) {
	nodes := NewList[structs.Node](osmnodes.Length())
	edges := NewList[structs.Edge](osmedges.Length() * 2)
	edge_attrs := NewList[attr.EdgeAttribs](osmedges.Length() * 2)
	edge_geoms := NewList[geo.CoordArray](osmedges.Length() * 2)

	for _, osmedge := range osmedges {
		geom := geo.CoordArray(osmedge.Nodes)
		edge_attr := osmedge.Attr
		edge_attr.Length = float32(geo.LineLength(geom))

		if !edge_attr.Oneway || !osmedge.Reversed {
			edges.Add(structs.Edge{
				NodeA: int32(osmedge.NodeA),
				NodeB: int32(osmedge.NodeB),
			})
			edge_attrs.Add(edge_attr)
			edge_geoms.Add(geom)
		}
		if !edge_attr.Oneway || osmedge.Reversed {
			edges.Add(structs.Edge{
				NodeA: int32(osmedge.NodeB),
				NodeB: int32(osmedge.NodeA),
			})
			edge_attrs.Add(edge_attr)
			edge_geoms.Add(_ReverseGeom(geom))
		}
	}

	for _, osmnode := range osmnodes {
		nodes.Add(structs.Node{
			Loc: osmnode.Point,
		})
	}

	base := comps.NewGraphBase(Array[structs.Node](nodes), Array[structs.Edge](edges))
	attributes := attr.New(Array[attr.EdgeAttribs](edge_attrs), Array[geo.CoordArray](edge_geoms))
	return base, attributes
}

func _ReverseGeom(geom geo.CoordArray) geo.CoordArray {
	reversed := make(geo.CoordArray, len(geom))
	for i, c := range geom {
		reversed[len(geom)-1-i] = c
	}
	return reversed
}

//*******************************************
// osm handler methods
//*******************************************

func _InitWayHandler(scanner *osmpbf.Scanner, decoder IOSMDecoder, osm_nodes Dict[int64, TempNode]) {
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Way:
			tags := Dict[string, string](object.TagMap())
			if !decoder.IsValidHighway(tags) {
				continue
			}
			_CountWayNodes(object, osm_nodes)
		default:
			continue
		}
	}
}

// Counts the references of all way nodes, endpoints are counted twice so
// they always become graph nodes.
func _CountWayNodes(way *osm.Way, osm_nodes Dict[int64, TempNode]) {
	nodes := way.Nodes.NodeIDs()
	l := len(nodes)
	if l < 2 {
		return
	}
	for i := 0; i < l; i++ {
		ndref := nodes[i].FeatureID().Ref()
		node := osm_nodes[ndref]
		node.Count += 1
		osm_nodes[ndref] = node
	}
	for _, ndref := range [2]int64{nodes[0].FeatureID().Ref(), nodes[l-1].FeatureID().Ref()} {
		node := osm_nodes[ndref]
		node.Count += 1
		osm_nodes[ndref] = node
	}
}

func _NodeHandler(scanner *osmpbf.Scanner, osm_nodes Dict[int64, TempNode], nodes *List[OSMNode], index_mapping Dict[int64, int]) {
	c := 0
	scanner.SkipWays = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Node:
			c += 1
			if c%100000 == 0 {
				slog.Debug(fmt.Sprintf("scanned %v nodes", c))
			}
			_AddNode(object, osm_nodes, nodes, index_mapping)
		default:
			continue
		}
	}
}

// Stores the location of a way node, nodes referenced more than once are
// added to the graph.
func _AddNode(object *osm.Node, osm_nodes Dict[int64, TempNode], nodes *List[OSMNode], index_mapping Dict[int64, int]) {
	id := object.FeatureID().Ref()
	if !osm_nodes.ContainsKey(id) {
		return
	}
	on := osm_nodes.Get(id)
	on.Point = geo.Coord{float32(object.Lon), float32(object.Lat)}
	osm_nodes.Set(id, on)
	if on.Count > 1 {
		index_mapping.Set(id, nodes.Length())
		nodes.Add(OSMNode{Point: on.Point})
	}
}

func _WayHandler(scanner *osmpbf.Scanner, decoder IOSMDecoder, edges *List[OSMEdge], osm_nodes Dict[int64, TempNode], index_mapping Dict[int64, int]) {
	c := 0
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Way:
			tags := Dict[string, string](object.TagMap())
			if !decoder.IsValidHighway(tags) {
				continue
			}
			c += 1
			if c%10000 == 0 {
				slog.Debug(fmt.Sprintf("scanned %v ways", c))
			}
			_SplitWay(object, tags, decoder, edges, osm_nodes, index_mapping)
		default:
			continue
		}
	}
}

// Splits a way into edges at every graph node.
func _SplitWay(way *osm.Way, tags Dict[string, string], decoder IOSMDecoder, edges *List[OSMEdge], osm_nodes Dict[int64, TempNode], index_mapping Dict[int64, int]) {
	nodes := way.Nodes.NodeIDs()
	l := len(nodes)
	if l < 2 {
		return
	}
	edge_att := decoder.DecodeEdge(tags)
	reversed := decoder.IsReversed(tags)

	start := nodes[0].FeatureID().Ref()
	e := OSMEdge{}
	for i := 0; i < l; i++ {
		curr := nodes[i].FeatureID().Ref()
		on, ok := osm_nodes[curr]
		if !ok || !index_mapping.ContainsKey(start) {
			// way references a node missing in the extract
			return
		}
		e.Nodes.Add(on.Point)
		if on.Count > 1 && i > 0 {
			if !index_mapping.ContainsKey(curr) {
				return
			}
			e.NodeA = index_mapping.Get(start)
			e.NodeB = index_mapping.Get(curr)
			e.Attr = edge_att
			e.Reversed = reversed
			if e.NodeA != e.NodeB {
				edges.Add(e)
			}
			start = curr
			e = OSMEdge{}
			e.Nodes.Add(on.Point)
		}
	}
}

//*******************************************
// osm decoder
//*******************************************

type IOSMDecoder interface {
	IsValidHighway(tags Dict[string, string]) bool
	DecodeEdge(tags Dict[string, string]) attr.EdgeAttribs
	// true if the way is a oneway against its node order
	IsReversed(tags Dict[string, string]) bool
}
