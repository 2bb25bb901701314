package geo

import (
	"encoding/json"
	"math"
)

//*******************************************
// coordinates
//*******************************************

// Coord is a (lon, lat) pair in degrees.
type Coord [2]float32

type CoordArray []Coord

func (self Coord) Lon() float32 {
	return self[0]
}
func (self Coord) Lat() float32 {
	return self[1]
}

// Returns true if the coordinate lies within the valid lon/lat ranges.
func (self Coord) IsValid() bool {
	lon := float64(self[0])
	lat := float64(self[1])
	if math.IsNaN(lon) || math.IsNaN(lat) {
		return false
	}
	return lon >= -180 && lon <= 180 && lat >= -90 && lat <= 90
}

const EARTH_RADIUS = 6371000.0

// Great-circle distance in meters.
func HaversineDistance(a, b Coord) float64 {
	lat1 := float64(a[1]) * math.Pi / 180
	lat2 := float64(b[1]) * math.Pi / 180
	dlat := lat2 - lat1
	dlon := float64(b[0]-a[0]) * math.Pi / 180
	h := math.Sin(dlat/2)*math.Sin(dlat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	return 2 * EARTH_RADIUS * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Length of a polyline in meters.
func LineLength(line CoordArray) float64 {
	length := 0.0
	for i := 1; i < len(line); i++ {
		length += HaversineDistance(line[i-1], line[i])
	}
	return length
}

//*******************************************
// geojson
//*******************************************

type Geometry interface {
	Type() string
}

type LineString struct {
	coords CoordArray
}

func NewLineString(coords CoordArray) LineString {
	return LineString{coords: coords}
}

func (self *LineString) Type() string {
	return "LineString"
}
func (self *LineString) Coordinates() CoordArray {
	return self.coords
}
func (self *LineString) MarshalJSON() ([]byte, error) {
	coords := self.coords
	if coords == nil {
		coords = CoordArray{}
	}
	return json.Marshal(struct {
		Type        string     `json:"type"`
		Coordinates CoordArray `json:"coordinates"`
	}{self.Type(), coords})
}

type Point struct {
	coord Coord
}

func NewPoint(coord Coord) Point {
	return Point{coord: coord}
}

func (self *Point) Type() string {
	return "Point"
}
func (self *Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        string `json:"type"`
		Coordinates Coord  `json:"coordinates"`
	}{self.Type(), self.coord})
}

type Feature struct {
	geom  Geometry
	props map[string]any
}

func NewFeature(geom Geometry, props map[string]any) Feature {
	return Feature{geom: geom, props: props}
}

func (self Feature) Geometry() Geometry {
	return self.geom
}
func (self Feature) Properties() map[string]any {
	return self.props
}
func (self Feature) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       string         `json:"type"`
		Geometry   Geometry       `json:"geometry"`
		Properties map[string]any `json:"properties"`
	}{"Feature", self.geom, self.props})
}
