package attr

import (
	"fmt"

	"github.com/ttpr0/go-trip/geo"
	. "github.com/ttpr0/go-trip/util"
)

//*******************************************
// graph attributes
//*******************************************

type EdgeAttribs struct {
	Type     RoadType
	Length   float32
	Maxspeed byte
	Oneway   bool
}

type IAttributes interface {
	EdgeCount() int
	GetEdgeAttribs(edge int32) EdgeAttribs
	GetEdgeGeom(edge int32) geo.CoordArray
}

type GraphAttributes struct {
	edge_attribs Array[EdgeAttribs]
	edge_geoms   Array[geo.CoordArray]
}

func New(edges Array[EdgeAttribs], edge_geoms Array[geo.CoordArray]) *GraphAttributes {
	return &GraphAttributes{
		edge_attribs: edges,
		edge_geoms:   edge_geoms,
	}
}

func (self *GraphAttributes) EdgeCount() int {
	return self.edge_attribs.Length()
}
func (self *GraphAttributes) GetEdgeAttribs(edge int32) EdgeAttribs {
	return self.edge_attribs[edge]
}
func (self *GraphAttributes) GetEdgeGeom(edge int32) geo.CoordArray {
	return self.edge_geoms[edge]
}

//*******************************************
// load and store methods
//*******************************************

func Store(attr *GraphAttributes, path string) error {
	attrib_writer := NewBufferWriter()
	if err := WriteArray(attrib_writer, attr.edge_attribs); err != nil {
		return err
	}
	if err := WriteBytesToFile(attrib_writer.Bytes(), path+"-attrib"); err != nil {
		return err
	}

	geom_writer := NewBufferWriter()
	if err := Write(geom_writer, int32(attr.edge_geoms.Length())); err != nil {
		return err
	}
	for _, geom := range attr.edge_geoms {
		if err := WriteArray(geom_writer, Array[geo.Coord](geom)); err != nil {
			return err
		}
	}
	return WriteBytesToFile(geom_writer.Bytes(), path+"-geom")
}

func Load(path string) (*GraphAttributes, error) {
	edges, err := ReadArrayFromFile[EdgeAttribs](path + "-attrib")
	if err != nil {
		return nil, err
	}

	geom_reader, err := NewFileReader(path + "-geom")
	if err != nil {
		return nil, err
	}
	count, err := Read[int32](geom_reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", path+"-geom", err)
	}
	if int(count) != edges.Length() {
		return nil, fmt.Errorf("geometry count %v does not match edge count %v", count, edges.Length())
	}
	edge_geoms := NewArray[geo.CoordArray](int(count))
	for i := 0; i < int(count); i++ {
		coords, err := ReadArray[geo.Coord](geom_reader)
		if err != nil {
			return nil, fmt.Errorf("failed to read %v: %w", path+"-geom", err)
		}
		edge_geoms[i] = geo.CoordArray(coords)
	}

	return &GraphAttributes{
		edge_attribs: edges,
		edge_geoms:   edge_geoms,
	}, nil
}
