package geo

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReprojectDoesNotMutateInput(t *testing.T) {
	utm, err := ParseCRS("EPSG:32635")
	require.NoError(t, err)

	ring := orb.Ring{{28.9, 41.0}, {29.0, 41.0}, {29.0, 41.1}, {28.9, 41.0}}
	poly := orb.Polygon{ring.Clone()}

	out, err := Reproject(poly, WGS84, utm)
	require.NoError(t, err)
	assert.Equal(t, orb.Polygon{ring}, poly, "input geometry must stay untouched")
	assert.NotEqual(t, poly, out)
}

func TestReprojectSameCRS(t *testing.T) {
	p := orb.Point{28.9784, 41.0082}
	out, err := Reproject(p, WGS84, WGS84)
	require.NoError(t, err)
	assert.Equal(t, p, out)

	_, err = Reproject(nil, WGS84, WGS84)
	assert.Error(t, err)
}

func TestReprojectPointRoundTrip(t *testing.T) {
	utm, err := ParseCRS("EPSG:32635")
	require.NoError(t, err)

	p := orb.Point{28.9784, 41.0082}
	projected := ReprojectPoint(p, WGS84, utm)
	back := ReprojectPoint(projected, utm, WGS84)
	assert.InDelta(t, p.Lon(), back.Lon(), 1e-6)
	assert.InDelta(t, p.Lat(), back.Lat(), 1e-6)
}

func TestNearestPoint(t *testing.T) {
	tests := []struct {
		name         string
		query        orb.Point
		candidates   []orb.Point
		expectedIdx  int
		expectedDist float64
	}{
		{
			name:        "empty set",
			query:       orb.Point{0, 0},
			expectedIdx: -1,
		},
		{
			name:         "single candidate",
			query:        orb.Point{0, 0},
			candidates:   []orb.Point{{3, 4}},
			expectedIdx:  0,
			expectedDist: 5,
		},
		{
			name:         "closest of several",
			query:        orb.Point{0, 0},
			candidates:   []orb.Point{{10, 0}, {1, 0}, {5, 0}},
			expectedIdx:  1,
			expectedDist: 1,
		},
		{
			name:         "equidistant resolves to first in order",
			query:        orb.Point{0, 0},
			candidates:   []orb.Point{{2, 0}, {-2, 0}, {0, 2}},
			expectedIdx:  0,
			expectedDist: 2,
		},
		{
			name:         "coincident point",
			query:        orb.Point{7, 7},
			candidates:   []orb.Point{{1, 1}, {7, 7}},
			expectedIdx:  1,
			expectedDist: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, dist := NearestPoint(tt.query, tt.candidates)
			assert.Equal(t, tt.expectedIdx, idx)
			assert.InDelta(t, tt.expectedDist, dist, 1e-12)
		})
	}
}

func TestCentroidAndArea(t *testing.T) {
	square := orb.Polygon{{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}}

	c := Centroid(square)
	assert.InDelta(t, 5, c[0], 1e-12)
	assert.InDelta(t, 5, c[1], 1e-12)

	assert.InDelta(t, 100, Area(square), 1e-9)
}
