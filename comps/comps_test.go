package comps

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttpr0/go-trip/attr"
	"github.com/ttpr0/go-trip/geo"
	"github.com/ttpr0/go-trip/structs"
	. "github.com/ttpr0/go-trip/util"
)

func _TestBase() *GraphBase {
	nodes := Array[structs.Node]{
		{Loc: geo.Coord{7.0, 50.0}},
		{Loc: geo.Coord{7.001, 50.0}},
		{Loc: geo.Coord{7.002, 50.0}},
	}
	edges := Array[structs.Edge]{
		{NodeA: 0, NodeB: 1},
		{NodeA: 1, NodeB: 0},
		{NodeA: 1, NodeB: 2},
	}
	return NewGraphBase(nodes, edges)
}

func TestGraphBaseStoreLoad(t *testing.T) {
	base := _TestBase()
	path := filepath.Join(t.TempDir(), "base")
	require.NoError(t, Store(base, path))

	loaded, err := Load[*GraphBase](path)
	require.NoError(t, err)
	assert.Equal(t, base.NodeCount(), loaded.NodeCount())
	assert.Equal(t, base.EdgeCount(), loaded.EdgeCount())
	assert.Equal(t, base.GetNode(2), loaded.GetNode(2))
	assert.Equal(t, int16(2), loaded.GetNodeDegree(1, true))
	assert.Equal(t, int16(1), loaded.GetNodeDegree(2, false))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load[*DefaultWeighting](filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestBuildWeightings(t *testing.T) {
	base := _TestBase()
	attributes := attr.New(
		Array[attr.EdgeAttribs]{
			{Length: 100, Maxspeed: 36},
			{Length: 100, Maxspeed: 36},
			{Length: 0.2, Maxspeed: 50},
		},
		NewArray[geo.CoordArray](3),
	)

	fastest := BuildFastestWeighting(base, attributes)
	assert.Equal(t, int32(10), fastest.GetEdgeWeight(0))
	assert.Equal(t, int32(1), fastest.GetEdgeWeight(2))

	shortest := BuildShortestWeighting(base, attributes)
	assert.Equal(t, int32(100), shortest.GetEdgeWeight(1))
	assert.Equal(t, int32(1), shortest.GetEdgeWeight(2))

	path := filepath.Join(t.TempDir(), "weight")
	require.NoError(t, Store(shortest, path))
	loaded, err := Load[*DefaultWeighting](path)
	require.NoError(t, err)
	assert.Equal(t, int32(100), loaded.GetEdgeWeight(0))
}

func TestGraphIndexClosestNode(t *testing.T) {
	index := NewGraphIndex(_TestBase())

	node, ok := index.GetClosestNode(geo.Coord{7.0019, 50.0001})
	require.True(t, ok)
	assert.Equal(t, int32(2), node)

	_, ok = index.GetClosestNode(geo.Coord{8.0, 51.0})
	assert.False(t, ok)
}
