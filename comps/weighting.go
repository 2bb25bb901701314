package comps

import (
	"math"

	"github.com/ttpr0/go-trip/attr"
	. "github.com/ttpr0/go-trip/util"
)

//*******************************************
// weighting interface
//*******************************************

type IWeighting interface {
	GetEdgeWeight(edge int32) int32
}

//*******************************************
// default weighting without turn costs
//*******************************************

type DefaultWeighting struct {
	edge_weights Array[int32]
}

func NewDefaultWeighting(base IGraphBase) *DefaultWeighting {
	return &DefaultWeighting{
		edge_weights: NewArray[int32](base.EdgeCount()),
	}
}

func (self *DefaultWeighting) GetEdgeWeight(edge int32) int32 {
	return self.edge_weights[edge]
}
func (self *DefaultWeighting) SetEdgeWeight(edge int32, weight int32) {
	self.edge_weights[edge] = weight
}

func (self *DefaultWeighting) _New() *DefaultWeighting {
	return &DefaultWeighting{}
}
func (self *DefaultWeighting) _Load(path string) error {
	weights, err := ReadArrayFromFile[int32](path + "-weight")
	if err != nil {
		return err
	}
	*self = DefaultWeighting{
		edge_weights: weights,
	}
	return nil
}
func (self *DefaultWeighting) _Store(path string) error {
	return WriteArrayToFile(self.edge_weights, path+"-weight")
}

//*******************************************
// equal weighting
//*******************************************

type EqualWeighting struct{}

func NewEqualWeighting() *EqualWeighting {
	return &EqualWeighting{}
}

func (self *EqualWeighting) GetEdgeWeight(edge int32) int32 {
	return 1
}

//*******************************************
// build weightings from attributes
//*******************************************

// Travel time in seconds from edge length and maxspeed.
func BuildFastestWeighting(base IGraphBase, attributes attr.IAttributes) *DefaultWeighting {
	weight := NewDefaultWeighting(base)
	for i := 0; i < base.EdgeCount(); i++ {
		att := attributes.GetEdgeAttribs(int32(i))
		speed := float64(att.Maxspeed)
		if speed <= 0 {
			speed = 10
		}
		w := float64(att.Length) * 3.6 / speed
		weight.SetEdgeWeight(int32(i), _RoundWeight(w))
	}
	return weight
}

// Edge length in meters.
func BuildShortestWeighting(base IGraphBase, attributes attr.IAttributes) *DefaultWeighting {
	weight := NewDefaultWeighting(base)
	for i := 0; i < base.EdgeCount(); i++ {
		att := attributes.GetEdgeAttribs(int32(i))
		weight.SetEdgeWeight(int32(i), _RoundWeight(float64(att.Length)))
	}
	return weight
}

// Every edge costs at least 1.
func _RoundWeight(w float64) int32 {
	r := int32(math.Ceil(w))
	if r < 1 {
		return 1
	}
	return r
}
