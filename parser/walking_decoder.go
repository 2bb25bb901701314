package parser

import (
	"github.com/ttpr0/go-trip/attr"
	. "github.com/ttpr0/go-trip/util"
)

const WALKING_SPEED = 5

// Decodes ways for pedestrians, every way is traversable in both directions.
type WalkingDecoder struct {
}

var walking_excluded = Dict[string, bool]{"motorway": true, "motorway_link": true, "trunk": true, "trunk_link": true,
	"proposed": true, "construction": true, "raceway": true, "bus_guideway": true}

func (self *WalkingDecoder) IsValidHighway(tags Dict[string, string]) bool {
	if !tags.ContainsKey("highway") {
		return false
	}
	if walking_excluded.ContainsKey(tags.Get("highway")) {
		return false
	}
	if tags.Get("foot") == "no" || tags.Get("access") == "no" {
		return false
	}
	return true
}
func (self *WalkingDecoder) DecodeEdge(tags Dict[string, string]) attr.EdgeAttribs {
	return attr.EdgeAttribs{
		Type:     attr.RoadTypeFromString(tags.Get("highway")),
		Maxspeed: WALKING_SPEED,
		Oneway:   false,
	}
}
func (self *WalkingDecoder) IsReversed(tags Dict[string, string]) bool {
	return false
}
