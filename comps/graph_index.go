package comps

import (
	"github.com/ttpr0/go-trip/geo"
	. "github.com/ttpr0/go-trip/util"
)

// *******************************************
// graph index interface
// *******************************************

type IGraphIndex interface {
	GetClosestNode(point geo.Coord) (int32, bool)
}

//*******************************************
// graph index
//*******************************************

// Search radius in degrees.
const SNAP_RADIUS float32 = 0.005

type BaseGraphIndex struct {
	index KDTree[int32]
}

func NewGraphIndex(base IGraphBase) IGraphIndex {
	index := _BuildKDTreeIndex(base)
	return &BaseGraphIndex{
		index: index,
	}
}

func (self *BaseGraphIndex) GetClosestNode(point geo.Coord) (int32, bool) {
	return self.index.GetClosest(point[:], SNAP_RADIUS)
}
