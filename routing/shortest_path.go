package routing

type IShortestPath interface {
	// Runs the search, returns false if end is not reachable from start.
	CalcShortestPath() bool
	// Returns the path found by the last successful search.
	GetShortestPath() Path
}
