package distance

import (
	"context"
	"testing"

	"github.com/paulmach/orb"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cityscale/healthatlas/internal/geo"
	"github.com/cityscale/healthatlas/internal/model"
)

func TestNearestFacility(t *testing.T) {
	tests := []struct {
		name         string
		query        orb.Point
		facilities   []orb.Point
		expectedIdx  int
		expectedDist float64
		wantErr      bool
	}{
		{
			name:    "empty set is an error",
			query:   orb.Point{0, 0},
			wantErr: true,
		},
		{
			name:         "single facility",
			query:        orb.Point{0, 0},
			facilities:   []orb.Point{{3000, 4000}},
			expectedIdx:  0,
			expectedDist: 5000,
		},
		{
			name:         "equidistant resolves to first in order",
			query:        orb.Point{0, 0},
			facilities:   []orb.Point{{1000, 0}, {0, 1000}},
			expectedIdx:  0,
			expectedDist: 1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, meters, err := NearestFacility(tt.query, tt.facilities)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, eris.Is(err, ErrNoFacilities))
				assert.Equal(t, -1, idx)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedIdx, idx)
			assert.InDelta(t, tt.expectedDist, meters, 1e-9)
		})
	}
}

func testDistrict(id string, minLon, minLat, maxLon, maxLat float64) model.District {
	return model.District{
		ID:   id,
		Name: id,
		Boundary: orb.MultiPolygon{{{
			{minLon, minLat},
			{maxLon, minLat},
			{maxLon, maxLat},
			{minLon, maxLat},
			{minLon, minLat},
		}}},
	}
}

func TestPerDistrict(t *testing.T) {
	utm, err := geo.ParseCRS("EPSG:32635")
	require.NoError(t, err)

	districts := []model.District{
		testDistrict("a", 28.9, 41.0, 29.0, 41.1),
		testDistrict("b", 29.0, 41.0, 29.1, 41.1),
	}
	facilities := []model.Facility{
		// At district a's centroid, so its distance is zero.
		{OSMID: 1, Longitude: 28.95, Latitude: 41.05},
	}

	km, err := PerDistrict(context.Background(), districts, facilities, utm, 4)
	require.NoError(t, err)
	require.Len(t, km, 2)

	assert.InDelta(t, 0, km["a"], 0.01)

	// District b's centroid sits about 0.1 degrees of longitude away,
	// roughly 8.4 km at this latitude.
	assert.InDelta(t, 8.4, km["b"], 0.5)
}

func TestPerDistrictEmptyFacilities(t *testing.T) {
	utm, err := geo.ParseCRS("EPSG:32635")
	require.NoError(t, err)

	_, err = PerDistrict(context.Background(), []model.District{testDistrict("a", 28.9, 41.0, 29.0, 41.1)}, nil, utm, 1)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNoFacilities))
}

func TestPerDistrictRejectsGeographicCRS(t *testing.T) {
	_, err := PerDistrict(context.Background(), nil,
		[]model.Facility{{OSMID: 1, Longitude: 29, Latitude: 41}}, geo.WGS84, 1)
	require.Error(t, err)
	assert.True(t, eris.Is(err, geo.ErrInvalidCRS))
}

func TestPerDistrictDeterministic(t *testing.T) {
	utm, err := geo.ParseCRS("EPSG:32635")
	require.NoError(t, err)

	districts := make([]model.District, 0, 8)
	for i := 0; i < 8; i++ {
		lon := 28.5 + float64(i)*0.1
		districts = append(districts, testDistrict(string(rune('a'+i)), lon, 41.0, lon+0.1, 41.1))
	}
	facilities := []model.Facility{
		{OSMID: 1, Longitude: 28.7, Latitude: 41.02},
		{OSMID: 2, Longitude: 29.1, Latitude: 41.08},
	}

	first, err := PerDistrict(context.Background(), districts, facilities, utm, 4)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := PerDistrict(context.Background(), districts, facilities, utm, 2)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestPerDistrictHonorsContextCancel(t *testing.T) {
	utm, err := geo.ParseCRS("EPSG:32635")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = PerDistrict(ctx, []model.District{testDistrict("a", 28.9, 41.0, 29.0, 41.1)},
		[]model.Facility{{OSMID: 1, Longitude: 28.95, Latitude: 41.05}}, utm, 1)
	assert.Error(t, err)
}
