package parser

import (
	"github.com/ttpr0/go-trip/attr"
	. "github.com/ttpr0/go-trip/util"
)

type DrivingDecoder struct {
}

var driving_types = Dict[string, bool]{"motorway": true, "motorway_link": true, "trunk": true, "trunk_link": true,
	"primary": true, "primary_link": true, "secondary": true, "secondary_link": true, "tertiary": true, "tertiary_link": true,
	"residential": true, "living_street": true, "service": true, "track": true, "unclassified": true, "road": true}

func (self *DrivingDecoder) IsValidHighway(tags Dict[string, string]) bool {
	if !tags.ContainsKey("highway") {
		return false
	}
	if !driving_types.ContainsKey(tags.Get("highway")) {
		return false
	}
	if tags.Get("access") == "no" || tags.Get("motor_vehicle") == "no" {
		return false
	}
	return true
}
func (self *DrivingDecoder) DecodeEdge(tags Dict[string, string]) attr.EdgeAttribs {
	templimit := tags.Get("maxspeed")
	str_type := tags.Get("highway")
	oneway := tags.Get("oneway")
	track_type := tags.Get("tracktype")
	surface := tags.Get("surface")
	e := attr.EdgeAttribs{}
	e.Type = attr.RoadTypeFromString(str_type)
	e.Maxspeed = byte(_GetORSTravelSpeed(e.Type, templimit, track_type, surface))
	e.Oneway = _IsOneway(oneway, e.Type)
	return e
}
func (self *DrivingDecoder) IsReversed(tags Dict[string, string]) bool {
	return _IsReversedOneway(tags.Get("oneway"))
}
