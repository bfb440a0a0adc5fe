package spatial

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cityscale/healthatlas/internal/model"
)

func square(minLon, minLat, maxLon, maxLat float64) orb.MultiPolygon {
	return orb.MultiPolygon{{{
		{minLon, minLat},
		{maxLon, minLat},
		{maxLon, maxLat},
		{minLon, maxLat},
		{minLon, minLat},
	}}}
}

func testDistricts() []model.District {
	// Two adjacent squares sharing the edge lon=29.0.
	return []model.District{
		{ID: "d-besiktas", Name: "Beşiktaş", Boundary: square(28.9, 41.0, 29.0, 41.1)},
		{ID: "d-uskudar", Name: "Üsküdar", Boundary: square(29.0, 41.0, 29.1, 41.1)},
	}
}

func facilityAt(id int64, lon, lat float64) model.Facility {
	return model.Facility{OSMID: id, Longitude: lon, Latitude: lat}
}

func TestJoinAssignsByContainment(t *testing.T) {
	facilities := []model.Facility{
		facilityAt(1, 28.95, 41.05), // inside Beşiktaş
		facilityAt(2, 29.05, 41.05), // inside Üsküdar
		facilityAt(3, 29.06, 41.02), // inside Üsküdar
		facilityAt(4, 30.00, 41.05), // outside everything
	}

	res := Join(facilities, testDistricts())

	assert.Equal(t, 1, res.Counts["d-besiktas"])
	assert.Equal(t, 2, res.Counts["d-uskudar"])
	assert.Equal(t, "d-besiktas", res.Assignment[int64(1)])
	assert.Equal(t, []int64{4}, res.Diagnostics.Unassigned)
}

func TestJoinBoundaryPointAssignedOnce(t *testing.T) {
	// Exactly on the shared edge between the two districts.
	facilities := []model.Facility{facilityAt(10, 29.0, 41.05)}

	res := Join(facilities, testDistricts())

	total := 0
	for _, n := range res.Counts {
		total += n
	}
	assert.Equal(t, 1, total, "boundary facility must count exactly once")
	assert.Empty(t, res.Diagnostics.Unassigned)

	// Districts resolve in name order, so Beşiktaş wins the tie.
	assert.Equal(t, "d-besiktas", res.Assignment[int64(10)])
}

func TestJoinDeterministicAcrossInputOrder(t *testing.T) {
	facilities := []model.Facility{
		facilityAt(10, 29.0, 41.05), // shared edge
		facilityAt(11, 28.95, 41.05),
		facilityAt(12, 29.05, 41.05),
	}

	districts := testDistricts()
	reversed := []model.District{districts[1], districts[0]}

	a := Join(facilities, districts)
	b := Join(facilities, reversed)

	assert.Equal(t, a.Assignment, b.Assignment)
	assert.Equal(t, a.Counts, b.Counts)
}

func TestJoinCountsPartitionFacilities(t *testing.T) {
	facilities := []model.Facility{
		facilityAt(1, 28.95, 41.05),
		facilityAt(2, 29.05, 41.05),
		facilityAt(3, 29.0, 41.0),  // corner shared by both
		facilityAt(4, 25.0, 39.0),  // far away
		facilityAt(5, 28.99, 41.09),
	}

	res := Join(facilities, testDistricts())

	total := 0
	for _, n := range res.Counts {
		total += n
	}
	assert.Equal(t, len(facilities), total+len(res.Diagnostics.Unassigned),
		"assigned plus unassigned must cover every facility")
	assert.Len(t, res.Assignment, total)
}

func TestJoinEmptyInputs(t *testing.T) {
	res := Join(nil, testDistricts())
	require.NotNil(t, res)
	assert.Equal(t, 0, res.Counts["d-besiktas"])
	assert.Empty(t, res.Diagnostics.Unassigned)

	res = Join([]model.Facility{facilityAt(1, 28.95, 41.05)}, nil)
	assert.Equal(t, []int64{1}, res.Diagnostics.Unassigned)
}
