package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttpr0/go-trip/attr"
	"github.com/ttpr0/go-trip/comps"
	"github.com/ttpr0/go-trip/geo"
	"github.com/ttpr0/go-trip/internal/testgraph"
	"github.com/ttpr0/go-trip/preproc"
	. "github.com/ttpr0/go-trip/util"
)

func _GridAttributes(base *comps.GraphBase) *attr.GraphAttributes {
	attribs := NewArray[attr.EdgeAttribs](base.EdgeCount())
	geoms := NewArray[geo.CoordArray](base.EdgeCount())
	for i := 0; i < base.EdgeCount(); i++ {
		edge := base.GetEdge(int32(i))
		a := base.GetNode(edge.NodeA).Loc
		b := base.GetNode(edge.NodeB).Loc
		attribs[i] = attr.EdgeAttribs{Type: attr.RESIDENTIAL, Length: float32(geo.HaversineDistance(a, b)), Maxspeed: 30}
		geoms[i] = geo.CoordArray{a, b}
	}
	return attr.New(attribs, geoms)
}

func _TestManager(config Config, base *comps.GraphBase, weight *comps.DefaultWeighting, with_attributes bool) *RoutingManager {
	manager := &RoutingManager{
		config:     config,
		profiles:   NewDict[string, IRoutingProfile](2),
		attributes: NewDict[ProfileType, attr.IAttributes](2),
	}
	if with_attributes {
		manager.SetAttributes(DRIVING, _GridAttributes(base))
	}
	ch := preproc.CalcContraction(base, weight)
	manager.AddProfile("driving-car", &DrivingProfile{
		_NewProfileData(DRIVING, FASTEST, CAR, base, weight, Some(ch)),
	})
	manager.AddProfile("walking-foot", &WalkingProfile{
		_NewProfileData(WALKING, FASTEST, FOOT, base, weight, None[*comps.CH]()),
	})
	return manager
}

func _TestServer(t *testing.T, manager *RoutingManager) *httptest.Server {
	t.Helper()
	app := http.NewServeMux()
	MapRoutes(app, manager)
	server := httptest.NewServer(app)
	t.Cleanup(server.Close)
	return server
}

func _Post[T any](t *testing.T, server *httptest.Server, path string, body any) (int, T) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(server.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()
	var value T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&value))
	return resp.StatusCode, value
}

type _ErrorResponse struct {
	Request string    `json:"request"`
	Error   ErrorBody `json:"error"`
}

func _GridLocations(cells [][2]int) []geo.Coord {
	locations := make([]geo.Coord, len(cells))
	for i, cell := range cells {
		locations[i] = testgraph.GridCoord(cell[0], cell[1])
	}
	return locations
}

var _TRIP_CELLS = [][2]int{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {2, 2}, {1, 3}}

func TestTripRoundTrip(t *testing.T) {
	base, weight := testgraph.BuildGrid(5, 5, 7, 0)
	server := _TestServer(t, _TestManager(DefaultConfig(), base, weight, false))

	for _, profile := range []string{"driving-car", "walking-foot"} {
		status, resp := _Post[TripResponse](t, server, "/v1/trip", TripRequest{
			Locations: _GridLocations(_TRIP_CELLS),
			Profile:   profile,
			Metric:    "time",
			Geometry:  true,
		})
		require.Equal(t, http.StatusOK, status, profile)
		require.Len(t, resp.Trips, 1)

		item := resp.Trips[0]
		assert.ElementsMatch(t, []int32{0, 1, 2, 3, 4, 5}, item.Tour)
		require.Len(t, item.Legs, len(_TRIP_CELLS))
		sum := int32(0)
		for i, leg := range item.Legs {
			assert.Equal(t, item.Tour[i], leg.From)
			assert.Equal(t, item.Tour[(i+1)%len(item.Tour)], leg.To)
			sum += leg.Weight
		}
		assert.Equal(t, item.Weight, sum)
		require.NotNil(t, item.Geometry)

		require.Len(t, resp.Waypoints, len(_TRIP_CELLS))
		for i, wp := range resp.Waypoints {
			assert.Equal(t, 0, wp.TripsIndex)
			assert.Equal(t, int32(i), item.Tour[wp.WaypointIndex])
			assert.Equal(t, testgraph.GridCoord(_TRIP_CELLS[i][0], _TRIP_CELLS[i][1]), wp.Location)
		}
	}
}

func TestTripFixedEndpoints(t *testing.T) {
	base, weight := testgraph.BuildGrid(5, 5, 11, 0)
	server := _TestServer(t, _TestManager(DefaultConfig(), base, weight, false))

	source := 1
	destination := 3
	status, resp := _Post[TripResponse](t, server, "/v1/trip", TripRequest{
		Locations:   _GridLocations(_TRIP_CELLS),
		Profile:     "driving-car",
		Source:      &source,
		Destination: &destination,
	})
	require.Equal(t, http.StatusOK, status)
	require.Len(t, resp.Trips, 1)
	tour := resp.Trips[0].Tour
	require.Len(t, tour, len(_TRIP_CELLS))
	assert.Equal(t, int32(source), tour[0])
	assert.Equal(t, int32(destination), tour[len(tour)-1])
	assert.Len(t, resp.Trips[0].Legs, len(_TRIP_CELLS)-1)
	assert.Nil(t, resp.Trips[0].Geometry)
}

func TestTripDisconnected(t *testing.T) {
	base, weight := testgraph.BuildSplitGrid(3, 3, 5)
	server := _TestServer(t, _TestManager(DefaultConfig(), base, weight, false))

	second := func(x, y int) geo.Coord {
		c := testgraph.GridCoord(x, y)
		c[0] += 1.0
		return c
	}
	locations := []geo.Coord{
		testgraph.GridCoord(0, 0), second(0, 0), testgraph.GridCoord(2, 2), second(2, 1), testgraph.GridCoord(1, 0),
	}
	status, resp := _Post[TripResponse](t, server, "/v1/trip", TripRequest{
		Locations: locations,
		Profile:   "driving-car",
	})
	require.Equal(t, http.StatusOK, status)
	require.Len(t, resp.Trips, 2)

	for i, wp := range resp.Waypoints {
		require.GreaterOrEqual(t, wp.TripsIndex, 0)
		assert.Equal(t, int32(i), resp.Trips[wp.TripsIndex].Tour[wp.WaypointIndex])
	}
	assert.Equal(t, resp.Waypoints[0].TripsIndex, resp.Waypoints[2].TripsIndex)
	assert.Equal(t, resp.Waypoints[0].TripsIndex, resp.Waypoints[4].TripsIndex)
	assert.Equal(t, resp.Waypoints[1].TripsIndex, resp.Waypoints[3].TripsIndex)
	assert.NotEqual(t, resp.Waypoints[0].TripsIndex, resp.Waypoints[1].TripsIndex)
}

func TestTripErrors(t *testing.T) {
	base, weight := testgraph.BuildGrid(4, 4, 3, 0)
	config := DefaultConfig()
	config.Services.Trip.MaxLocations = 4
	server := _TestServer(t, _TestManager(config, base, weight, false))

	one := 1
	cases := []struct {
		name string
		req  any
		code string
	}{
		{"too many", TripRequest{Locations: _GridLocations([][2]int{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {3, 1}}), Profile: "driving-car"}, "TooBig"},
		{"invalid coordinate", TripRequest{Locations: []geo.Coord{{200, 50}, testgraph.GridCoord(0, 0)}, Profile: "driving-car"}, "InvalidValue"},
		{"no segment", TripRequest{Locations: []geo.Coord{{0, 0}, testgraph.GridCoord(0, 0)}, Profile: "driving-car"}, "NoSegment"},
		{"no locations", TripRequest{Locations: []geo.Coord{}, Profile: "driving-car"}, "InvalidValue"},
		{"missing profile", TripRequest{Locations: _GridLocations([][2]int{{0, 0}})}, "InvalidValue"},
		{"unknown profile", TripRequest{Locations: _GridLocations([][2]int{{0, 0}}), Profile: "cycling-bike"}, "InvalidOptions"},
		{"unknown metric", TripRequest{Locations: _GridLocations([][2]int{{0, 0}}), Profile: "driving-car", Metric: "distance"}, "InvalidOptions"},
		{"source only", TripRequest{Locations: _GridLocations([][2]int{{0, 0}, {1, 1}}), Profile: "driving-car", Source: &one}, "InvalidOptions"},
		{"endpoint out of range", map[string]any{"locations": _GridLocations([][2]int{{0, 0}, {1, 1}}), "profile": "driving-car", "source": 0, "destination": 3}, "InvalidValue"},
	}
	for _, c := range cases {
		status, resp := _Post[_ErrorResponse](t, server, "/v1/trip", c.req)
		assert.Equal(t, http.StatusBadRequest, status, c.name)
		assert.Equal(t, c.code, resp.Error.Code, c.name)
		assert.Equal(t, "/v1/trip", resp.Request, c.name)
	}
}

func TestTripMalformedBody(t *testing.T) {
	base, weight := testgraph.BuildGrid(3, 3, 3, 0)
	server := _TestServer(t, _TestManager(DefaultConfig(), base, weight, false))

	resp, err := http.Post(server.URL+"/v1/trip", "application/json", bytes.NewReader([]byte("{")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	get, err := http.Get(server.URL + "/v1/trip")
	require.NoError(t, err)
	defer get.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, get.StatusCode)
}

func TestTripOnWorkerPool(t *testing.T) {
	pool, err := ants.NewPool(2)
	require.NoError(t, err)
	WORKER_POOL = pool
	defer func() {
		WORKER_POOL = nil
		pool.Release()
	}()

	base, weight := testgraph.BuildGrid(5, 5, 13, 0)
	server := _TestServer(t, _TestManager(DefaultConfig(), base, weight, false))

	done := make(chan int, 8)
	for i := 0; i < 8; i++ {
		go func() {
			data, _ := json.Marshal(TripRequest{Locations: _GridLocations(_TRIP_CELLS), Profile: "driving-car"})
			resp, err := http.Post(server.URL+"/v1/trip", "application/json", bytes.NewReader(data))
			if err != nil {
				done <- 0
				return
			}
			resp.Body.Close()
			done <- resp.StatusCode
		}()
	}
	for i := 0; i < 8; i++ {
		assert.Equal(t, http.StatusOK, <-done)
	}
}

func TestTableMatchesRouter(t *testing.T) {
	base, weight := testgraph.BuildGrid(6, 6, 17, 3)
	manager := _TestManager(DefaultConfig(), base, weight, false)
	server := _TestServer(t, manager)

	sources := _GridLocations([][2]int{{0, 0}, {5, 5}, {2, 3}})
	destinations := _GridLocations([][2]int{{5, 0}, {0, 5}, {2, 3}, {4, 1}})
	for _, profile := range []string{"driving-car", "walking-foot"} {
		status, resp := _Post[TableResponse](t, server, "/v1/table", TableRequest{
			Sources:      sources,
			Destinations: destinations,
			Profile:      profile,
		})
		require.Equal(t, http.StatusOK, status)
		require.Len(t, resp.Weights, len(sources))

		prof := manager.GetProfile(profile).Value
		phantoms, err := SnapCoordinates(prof.GetGraph(), append(append([]geo.Coord{}, sources...), destinations...))
		require.NoError(t, err)
		router := prof.GetRouter()
		for i := range sources {
			require.Len(t, resp.Weights[i], len(destinations))
			for j := range destinations {
				path, err := router.CalcPath(phantoms[i], phantoms[len(sources)+j])
				if err != nil {
					assert.Equal(t, int32(-1), resp.Weights[i][j])
					continue
				}
				assert.Equal(t, path.GetWeight(), resp.Weights[i][j], "%v: %v -> %v", profile, i, j)
			}
		}
		assert.Equal(t, int32(0), resp.Weights[2][2])
	}
}

func TestTableUnreachable(t *testing.T) {
	base, weight := testgraph.BuildSplitGrid(3, 3, 2)
	server := _TestServer(t, _TestManager(DefaultConfig(), base, weight, false))

	far := testgraph.GridCoord(1, 1)
	far[0] += 1.0
	status, resp := _Post[TableResponse](t, server, "/v1/table", TableRequest{
		Sources:      _GridLocations([][2]int{{0, 0}}),
		Destinations: []geo.Coord{testgraph.GridCoord(2, 2), far},
		Profile:      "driving-car",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Greater(t, resp.Weights[0][0], int32(0))
	assert.Equal(t, int32(-1), resp.Weights[0][1])
}

type _FeatureCollection struct {
	Type     string `json:"type"`
	Weight   int32  `json:"weight"`
	Features []struct {
		Geometry struct {
			Type        string         `json:"type"`
			Coordinates geo.CoordArray `json:"coordinates"`
		} `json:"geometry"`
		Properties map[string]any `json:"properties"`
	} `json:"features"`
}

func TestRouteGeometry(t *testing.T) {
	base, weight := testgraph.BuildGrid(5, 5, 19, 0)
	manager := _TestManager(DefaultConfig(), base, weight, true)
	server := _TestServer(t, manager)

	start := testgraph.GridCoord(0, 0)
	end := testgraph.GridCoord(4, 3)
	status, resp := _Post[_FeatureCollection](t, server, "/v1/route", RouteRequest{
		Start:   start,
		End:     end,
		Profile: "driving-car",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "FeatureCollection", resp.Type)
	require.NotEmpty(t, resp.Features)
	assert.Equal(t, start, resp.Features[0].Geometry.Coordinates[0])
	last := resp.Features[len(resp.Features)-1].Geometry.Coordinates
	assert.Equal(t, end, last[len(last)-1])
	for i := 1; i < len(resp.Features); i++ {
		prev := resp.Features[i-1].Geometry.Coordinates
		assert.Equal(t, prev[len(prev)-1], resp.Features[i].Geometry.Coordinates[0])
	}

	sum := int32(0)
	for _, f := range resp.Features {
		sum += weight.GetEdgeWeight(int32(f.Properties["edge"].(float64)))
	}
	assert.Equal(t, resp.Weight, sum)
}

func TestRouteUnreachable(t *testing.T) {
	base, weight := testgraph.BuildSplitGrid(3, 3, 4)
	server := _TestServer(t, _TestManager(DefaultConfig(), base, weight, false))

	far := testgraph.GridCoord(0, 0)
	far[0] += 1.0
	status, resp := _Post[_ErrorResponse](t, server, "/v1/route", RouteRequest{
		Start:   testgraph.GridCoord(0, 0),
		End:     far,
		Profile: "walking-foot",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "NoRoute", resp.Error.Code)
}

func TestNearest(t *testing.T) {
	base, weight := testgraph.BuildGrid(4, 4, 1, 0)
	server := _TestServer(t, _TestManager(DefaultConfig(), base, weight, false))

	target := testgraph.GridCoord(2, 3)
	resp, err := http.Get(server.URL + "/v1/nearest?profile=driving-car&lon=7.0021&lat=50.0029")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body NearestResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testgraph.GridNode(4, 2, 3), body.Node)
	assert.Equal(t, target, body.Location)

	bad, err := http.Get(server.URL + "/v1/nearest?profile=driving-car&lon=abc&lat=50")
	require.NoError(t, err)
	defer bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func TestLoadRoutingManager(t *testing.T) {
	base, weight := testgraph.BuildGrid(5, 5, 23, 4)
	dir := t.TempDir()

	ch := preproc.CalcContraction(base, weight)
	profile := &DrivingProfile{_NewProfileData(DRIVING, FASTEST, CAR, base, weight, Some(ch))}
	require.NoError(t, comps.Store(base, dir+"/car"))
	require.NoError(t, comps.Store(weight, dir+"/car"))
	require.NoError(t, comps.Store(ch, dir+"/car"))
	require.NoError(t, attr.Store(_GridAttributes(base), dir+"/attr-driving"))
	meta := RoutingManagerMeta{
		Profiles:   Dict[string, ProfileMeta]{"car": profile._GetMetadata()},
		Attributes: List[ProfileType]{DRIVING},
	}
	require.NoError(t, WriteJSONToFile(meta, dir+"/meta"))

	config := DefaultConfig()
	config.GraphPath = dir
	manager, err := NewRoutingManager(config)
	require.NoError(t, err)

	loaded := manager.GetProfile("car")
	require.True(t, loaded.HasValue())
	assert.Equal(t, DRIVING, loaded.Value.Profile())
	assert.True(t, loaded.Value.GetCHGraph().HasValue())
	assert.True(t, loaded.Value.GetAttributes().HasValue())
	assert.False(t, manager.GetProfile("bike").HasValue())
	assert.True(t, manager.GetMatchingProfile(DRIVING, CAR, FASTEST).HasValue())
	assert.False(t, manager.GetMatchingProfile(DRIVING, CAR, SHORTEST).HasValue())

	phantoms, err := SnapCoordinates(loaded.Value.GetGraph(), _GridLocations([][2]int{{0, 0}, {4, 4}}))
	require.NoError(t, err)
	expected, err := profile.GetRouter().CalcPath(phantoms[0], phantoms[1])
	require.NoError(t, err)
	actual, err := loaded.Value.GetRouter().CalcPath(phantoms[0], phantoms[1])
	require.NoError(t, err)
	assert.Equal(t, expected.GetWeight(), actual.GetWeight())
}

func TestLoadRoutingManagerMissingComponent(t *testing.T) {
	base, weight := testgraph.BuildGrid(3, 3, 23, 0)
	dir := t.TempDir()

	profile := &DrivingProfile{_NewProfileData(DRIVING, FASTEST, CAR, base, weight, Some(preproc.CalcContraction(base, weight)))}
	require.NoError(t, comps.Store(base, dir+"/car"))
	require.NoError(t, comps.Store(weight, dir+"/car"))
	meta := RoutingManagerMeta{
		Profiles:   Dict[string, ProfileMeta]{"car": profile._GetMetadata()},
		Attributes: List[ProfileType]{},
	}
	require.NoError(t, WriteJSONToFile(meta, dir+"/meta"))

	config := DefaultConfig()
	config.GraphPath = dir
	_, err := NewRoutingManager(config)
	assert.Error(t, err)
}

func TestRemoveNodes(t *testing.T) {
	base, _ := testgraph.BuildGrid(3, 3, 1, 0)
	attributes := _GridAttributes(base)

	new_base, new_attributes := RemoveNodes(base, attributes, List[int32]{testgraph.GridNode(3, 1, 1)})
	assert.Equal(t, 8, new_base.NodeCount())
	// the center node has degree 4, both directions
	assert.Equal(t, base.EdgeCount()-8, new_base.EdgeCount())
	assert.Equal(t, new_base.EdgeCount(), new_attributes.EdgeCount())
	for i := 0; i < new_base.EdgeCount(); i++ {
		edge := new_base.GetEdge(int32(i))
		geom := new_attributes.GetEdgeGeom(int32(i))
		assert.Equal(t, new_base.GetNode(edge.NodeA).Loc, geom[0])
		assert.Equal(t, new_base.GetNode(edge.NodeB).Loc, geom[len(geom)-1])
	}
}

func TestRemoveConnectedComponents(t *testing.T) {
	base, _ := testgraph.BuildSplitGrid(3, 2, 1)
	remove := RemoveConnectedComponents(base)
	assert.Equal(t, 6, remove.Length())
	for _, node := range remove {
		assert.GreaterOrEqual(t, node, int32(6))
	}

	connected, _ := testgraph.BuildGrid(3, 3, 1, 0)
	assert.Equal(t, 0, RemoveConnectedComponents(connected).Length())
}

func TestPanickingHandler(t *testing.T) {
	app := http.NewServeMux()
	MapPost(app, "/v1/panic", func(req TripRequest) Result {
		panic("invalid partition")
	})
	server := httptest.NewServer(app)
	t.Cleanup(server.Close)
	body := TripRequest{Locations: _GridLocations([][2]int{{0, 0}}), Profile: "driving-car"}

	status, resp := _Post[_ErrorResponse](t, server, "/v1/panic", body)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "InternalError", resp.Error.Code)

	pool, err := ants.NewPool(1)
	require.NoError(t, err)
	WORKER_POOL = pool
	defer func() {
		WORKER_POOL = nil
		pool.Release()
	}()

	// the single worker has to be released after every panic
	for i := 0; i < 3; i++ {
		status, resp := _Post[_ErrorResponse](t, server, "/v1/panic", body)
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "InternalError", resp.Error.Code)
		assert.Equal(t, "invalid partition", resp.Error.Message)
	}
}
