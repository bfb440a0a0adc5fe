// Package spatial associates facility points with district polygons and
// computes coverage buffers.
package spatial

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"go.uber.org/zap"

	"github.com/cityscale/healthatlas/internal/model"
)

// boundaryEpsilon is the containment tolerance in degrees (~0.1 mm).
// Points this close to a district edge count as inside, so a facility
// sitting exactly on a shared boundary is assigned to exactly one
// district instead of falling through the ray-casting test.
const boundaryEpsilon = 1e-9

// Diagnostics carries join anomalies. Unassigned facilities are reported
// alongside results rather than raised as errors.
type Diagnostics struct {
	Unassigned []int64 `json:"unassigned_osm_ids,omitempty"`
}

// Result maps districts to facility counts. Counts plus the number of
// unassigned facilities always equals the size of the input facility
// set.
type Result struct {
	Counts      map[string]int
	Assignment  map[int64]string
	Diagnostics Diagnostics
}

// Join determines, for each facility, the district whose polygon
// contains its location. Districts are tested in (name, id) order so
// boundary points resolve deterministically regardless of input file
// ordering. Containment is projection-invariant, so the test runs on
// the source lon/lat geometry directly.
func Join(facilities []model.Facility, districts []model.District) *Result {
	order := make([]int, len(districts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		da, db := districts[order[a]], districts[order[b]]
		if da.Name != db.Name {
			return da.Name < db.Name
		}
		return da.ID < db.ID
	})

	res := &Result{
		Counts:     make(map[string]int, len(districts)),
		Assignment: make(map[int64]string, len(facilities)),
	}
	for i := range districts {
		res.Counts[districts[i].ID] = 0
	}

	for i := range facilities {
		pt := facilities[i].Location()
		assigned := false
		for _, di := range order {
			if contains(districts[di].Boundary, pt) {
				res.Counts[districts[di].ID]++
				res.Assignment[facilities[i].OSMID] = districts[di].ID
				assigned = true
				break
			}
		}
		if !assigned {
			res.Diagnostics.Unassigned = append(res.Diagnostics.Unassigned, facilities[i].OSMID)
		}
	}

	if n := len(res.Diagnostics.Unassigned); n > 0 {
		zap.L().Warn("spatial: facilities outside all district polygons",
			zap.Int("unassigned", n),
			zap.Int("total", len(facilities)),
		)
	}
	return res
}

// contains reports whether pt lies inside mp or within boundaryEpsilon
// of its boundary.
func contains(mp orb.MultiPolygon, pt orb.Point) bool {
	if planar.MultiPolygonContains(mp, pt) {
		return true
	}
	return boundaryDistance(mp, pt) <= boundaryEpsilon
}

// boundaryDistance returns the minimum distance from pt to any ring
// segment of mp, in the units of the geometry.
func boundaryDistance(mp orb.MultiPolygon, pt orb.Point) float64 {
	min := -1.0
	for _, poly := range mp {
		for _, ring := range poly {
			for i := 0; i+1 < len(ring); i++ {
				d := segmentDistance(pt, ring[i], ring[i+1])
				if min < 0 || d < min {
					min = d
				}
			}
		}
	}
	if min < 0 {
		return 0
	}
	return min
}

// segmentDistance is the distance from p to the segment a-b.
func segmentDistance(p, a, b orb.Point) float64 {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	if dx == 0 && dy == 0 {
		return planar.Distance(p, a)
	}
	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / (dx*dx + dy*dy)
	if t < 0 {
		return planar.Distance(p, a)
	}
	if t > 1 {
		return planar.Distance(p, b)
	}
	closest := orb.Point{a[0] + t*dx, a[1] + t*dy}
	return planar.Distance(p, closest)
}
