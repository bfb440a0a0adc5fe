// Package distance computes nearest-facility distances over a projected
// reference system.
package distance

import (
	"context"
	"runtime"

	"github.com/paulmach/orb"
	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/cityscale/healthatlas/internal/geo"
	"github.com/cityscale/healthatlas/internal/model"
)

// ErrNoFacilities marks a distance computation over an empty facility
// set. Callers may substitute a sentinel or skip, but never receive an
// undefined distance.
var ErrNoFacilities = eris.New("distance: no facilities available")

// NearestFacility returns the index of the facility nearest to the
// query point and the distance in meters. Query and facilities must be
// expressed in the same projected system. Equidistant facilities
// resolve to the first in slice order.
func NearestFacility(query orb.Point, facilities []orb.Point) (int, float64, error) {
	if len(facilities) == 0 {
		return -1, 0, eris.Wrap(ErrNoFacilities, "nearest facility")
	}
	idx, meters := geo.NearestPoint(query, facilities)
	return idx, meters, nil
}

// PerDistrict computes, for every district, the distance in kilometers
// from the district centroid to its nearest facility. Centroids are
// computed on the projected boundary; geographic centroids are never
// used for distance math. Districts are independent, so the work fans
// out over an errgroup; results are written by index and therefore
// deterministic.
func PerDistrict(ctx context.Context, districts []model.District, facilities []model.Facility, projected geo.CRS, workers int) (map[string]float64, error) {
	if len(facilities) == 0 {
		return nil, eris.Wrap(ErrNoFacilities, "per-district distances")
	}
	if projected.Geographic {
		return nil, eris.Wrap(geo.ErrInvalidCRS, "distance: per-district requires a projected CRS")
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	forward := projected.Forward()
	points := make([]orb.Point, len(facilities))
	for i := range facilities {
		points[i] = forward(facilities[i].Location())
	}

	km := make([]float64, len(districts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range districts {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			boundary, err := geo.Reproject(districts[i].Boundary, geo.WGS84, projected)
			if err != nil {
				return eris.Wrapf(err, "distance: reproject district %s", districts[i].ID)
			}
			centroid := geo.Centroid(boundary)
			_, meters, err := NearestFacility(centroid, points)
			if err != nil {
				return eris.Wrapf(err, "distance: district %s", districts[i].ID)
			}
			km[i] = meters / 1000
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]float64, len(districts))
	for i := range districts {
		out[districts[i].ID] = km[i]
	}
	return out, nil
}
