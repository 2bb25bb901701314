package attr

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttpr0/go-trip/geo"
	. "github.com/ttpr0/go-trip/util"
)

func TestRoadTypeNames(t *testing.T) {
	assert.Equal(t, "residential", RESIDENTIAL.String())
	assert.Equal(t, TRACK, RoadTypeFromString("track"))
	assert.Equal(t, RoadType(0), RoadTypeFromString("footway"))
	assert.Equal(t, "", RoadType(0).String())

	data, err := json.Marshal(PRIMARY_LINK)
	require.NoError(t, err)
	assert.Equal(t, `"primary_link"`, string(data))

	var typ RoadType
	require.NoError(t, json.Unmarshal([]byte(`"motorway"`), &typ))
	assert.Equal(t, MOTORWAY, typ)
	assert.Error(t, json.Unmarshal([]byte(`"path"`), &typ))
}

func TestAttributesStoreLoad(t *testing.T) {
	attr := New(
		Array[EdgeAttribs]{
			{Type: PRIMARY, Length: 120.5, Maxspeed: 50, Oneway: true},
			{Type: RESIDENTIAL, Length: 30, Maxspeed: 30},
		},
		Array[geo.CoordArray]{
			{{7.1, 50.1}, {7.2, 50.2}},
			{},
		},
	)
	path := filepath.Join(t.TempDir(), "attr")
	require.NoError(t, Store(attr, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.EdgeCount())
	assert.Equal(t, attr.GetEdgeAttribs(0), loaded.GetEdgeAttribs(0))
	assert.Equal(t, attr.GetEdgeGeom(0), loaded.GetEdgeGeom(0))
	assert.Len(t, loaded.GetEdgeGeom(1), 0)
}
