package spatial

import (
	"math"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cityscale/healthatlas/internal/geo"
	"github.com/cityscale/healthatlas/internal/model"
)

func istanbulUTM(t *testing.T) geo.CRS {
	t.Helper()
	crs, err := geo.ParseCRS("EPSG:32635")
	require.NoError(t, err)
	return crs
}

func TestBufferValidation(t *testing.T) {
	utm := istanbulUTM(t)

	_, err := Buffer(nil, 0, utm, DefaultCellM)
	assert.Error(t, err)

	_, err = Buffer(nil, -2, utm, DefaultCellM)
	assert.Error(t, err)

	_, err = Buffer(nil, 5, geo.WGS84, DefaultCellM)
	require.Error(t, err)
	assert.True(t, eris.Is(err, geo.ErrInvalidCRS))
}

func TestBufferEmptyFacilitySet(t *testing.T) {
	zone, err := Buffer(nil, 5, istanbulUTM(t), DefaultCellM)
	require.NoError(t, err)
	assert.Equal(t, 5.0, zone.RadiusKM)
	assert.Equal(t, 0, zone.Facilities)
	assert.Zero(t, zone.AreaKM2)
	assert.Empty(t, zone.Zone)
}

func TestBufferSingleDiskArea(t *testing.T) {
	facilities := []model.Facility{
		{OSMID: 1, Longitude: 28.9784, Latitude: 41.0082},
	}

	// Fine grid keeps the stamped-cell estimate within a percent of the
	// analytic disk area.
	zone, err := Buffer(facilities, 2, istanbulUTM(t), 25)
	require.NoError(t, err)

	expected := math.Pi * 2 * 2
	assert.InEpsilon(t, expected, zone.AreaKM2, 0.02)
	assert.Len(t, zone.Zone, 1)

	ring := zone.Zone[0][0]
	assert.Equal(t, ring[0], ring[len(ring)-1], "disk ring must be closed")
}

func TestBufferOverlapCountedOnce(t *testing.T) {
	utm := istanbulUTM(t)

	one := []model.Facility{{OSMID: 1, Longitude: 28.9784, Latitude: 41.0082}}
	// Second facility at the same location: the union area must not
	// double even though the zone carries two disks.
	two := append(one, model.Facility{OSMID: 2, Longitude: 28.9784, Latitude: 41.0082})

	zoneOne, err := Buffer(one, 2, utm, 50)
	require.NoError(t, err)
	zoneTwo, err := Buffer(two, 2, utm, 50)
	require.NoError(t, err)

	assert.Equal(t, zoneOne.AreaKM2, zoneTwo.AreaKM2)
	assert.Equal(t, 2, zoneTwo.Facilities)
	assert.Len(t, zoneTwo.Zone, 2)
}

func TestBufferAreaGrowsWithRadius(t *testing.T) {
	utm := istanbulUTM(t)
	facilities := []model.Facility{{OSMID: 1, Longitude: 29.0, Latitude: 41.0}}

	small, err := Buffer(facilities, 2, utm, 50)
	require.NoError(t, err)
	large, err := Buffer(facilities, 5, utm, 50)
	require.NoError(t, err)

	assert.Greater(t, large.AreaKM2, small.AreaKM2)
}
