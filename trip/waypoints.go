package trip

import (
	. "github.com/ttpr0/go-trip/util"
)

// Position of an input location within the computed trips.
type Waypoint struct {
	TripsIndex    int
	WaypointIndex int
}

// Returns for every location 0..n-1 the trip containing it and its position
// in that trip. Locations not part of any trip get -1 for both.
func WaypointIndices(trips List[Array[int32]], n int) Array[Waypoint] {
	waypoints := NewArray[Waypoint](n)
	for i := 0; i < n; i++ {
		waypoints[i] = Waypoint{TripsIndex: -1, WaypointIndex: -1}
	}
	for t, tour := range trips {
		for w, loc := range tour {
			waypoints[loc] = Waypoint{TripsIndex: t, WaypointIndex: w}
		}
	}
	return waypoints
}
