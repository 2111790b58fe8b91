package taxiway

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/surface-nav/geo"
)

// A unit square of taxiways plus a disconnected island.
//
//	D---C
//	|   |
//	A---B   E--F
const squareNetwork = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"name": "A"},
     "geometry": {"type": "LineString", "coordinates": [[0, 0], [0.001, 0], [0.001, 0.001]]}},
    {"type": "Feature", "properties": {"name": "B"},
     "geometry": {"type": "LineString", "coordinates": [[0.001, 0.001], [0, 0.001], [0, 0]]}},
    {"type": "Feature", "properties": {"name": "island"},
     "geometry": {"type": "MultiLineString", "coordinates": [[[0.01, 0], [0.011, 0]]]}},
    {"type": "Feature", "properties": {"name": "stand"},
     "geometry": {"type": "Point", "coordinates": [0.5, 0.5]}}
  ]
}`

func loadSquare(t *testing.T) *Network {
	t.Helper()
	n, err := LoadNetwork([]byte(squareNetwork))
	require.NoError(t, err)
	return n
}

func TestLoadNetwork(t *testing.T) {
	n := loadSquare(t)
	assert.Equal(t, 6, n.Nodes())
	assert.Equal(t, 5, n.Edges())
}

func TestLoadNetwork_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not json", doc: "{"},
		{name: "no lines", doc: `{"type":"FeatureCollection","features":[
			{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[0,0]}}]}`},
		{name: "single vertex line", doc: `{"type":"FeatureCollection","features":[
			{"type":"Feature","properties":{},"geometry":{"type":"LineString","coordinates":[[0,0],[0,0]]}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadNetwork([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestFindPath_Shortest(t *testing.T) {
	n := loadSquare(t)

	r, err := n.FindPath(geo.At(0, 0), geo.At(0.001, 0))
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())

	r, err = n.FindPath(geo.At(0.00001, -0.00001), geo.At(0.00099, 0.00101))
	require.NoError(t, err)
	require.Equal(t, 3, r.Len())
	assert.True(t, r.First().Same2D(geo.At(0, 0)))
	assert.True(t, r.Last().Same2D(geo.At(0.001, 0.001)))
	assert.InDelta(t, n.Distance(0, 2), r.Length(), 1e-6)
}

func TestFindPath_ReverseDirection(t *testing.T) {
	n := loadSquare(t)
	r, err := n.FindPath(geo.At(0, 0.001), geo.At(0.001, 0))
	require.NoError(t, err)
	assert.Equal(t, 3, r.Len())
}

func TestFindPath_Cached(t *testing.T) {
	n := loadSquare(t)
	a, err := n.FindPath(geo.At(0, 0), geo.At(0.001, 0.001))
	require.NoError(t, err)
	b, err := n.FindPath(geo.At(0, 0), geo.At(0.001, 0.001))
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestFindPath_SameNode(t *testing.T) {
	n := loadSquare(t)
	r, err := n.FindPath(geo.At(0, 0), geo.At(0.0000001, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())
	assert.True(t, r.Degenerate())
}

func TestFindPath_Disconnected(t *testing.T) {
	n := loadSquare(t)
	_, err := n.FindPath(geo.At(0, 0), geo.At(0.011, 0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoPath))
}

func TestFindPath_LargeNetwork(t *testing.T) {
	const size = 5000
	ls := make(orb.LineString, size)
	for i := range ls {
		ls[i] = orb.Point{float64(i) * 1e-5, 0}
	}
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(ls))
	data, err := fc.MarshalJSON()
	require.NoError(t, err)

	n, err := LoadNetwork(data)
	require.NoError(t, err)
	require.Equal(t, size, n.Nodes())

	r, err := n.FindPath(geo.At(0, 0), geo.At(float64(size-1)*1e-5, 0))
	require.NoError(t, err)
	assert.Equal(t, size, r.Len())
	assert.InDelta(t, n.Distance(0, size-1), r.Length(), 1e-6)
}
