package trip

import "errors"

var (
	// more locations than the configured maximum
	ErrTooBig = errors.New("too many trip coordinates")
	// coordinate outside of the valid lon/lat range
	ErrInvalidValue = errors.New("invalid coordinate value")
	// coordinate could not be snapped to the graph
	ErrNoSegment = errors.New("could not find a matching segment for coordinate")
	ErrNoTrips   = errors.New("cannot find trips")
	// a computed tour could not be routed on the graph
	ErrUnroutable = errors.New("no route found for trip")
)
