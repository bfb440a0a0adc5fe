package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/project"
	"github.com/rotisserie/eris"
)

// Reproject returns a copy of g transformed from one reference system to
// another. The input geometry is never modified. Transforms between two
// projected systems route through WGS84.
func Reproject(g orb.Geometry, from, to CRS) (orb.Geometry, error) {
	if g == nil {
		return nil, eris.New("geo: reproject nil geometry")
	}
	if from.Code == to.Code {
		return orb.Clone(g), nil
	}

	out := orb.Clone(g)
	if !from.Geographic {
		out = project.Geometry(out, from.Inverse())
	}
	if !to.Geographic {
		out = project.Geometry(out, to.Forward())
	}
	return out, nil
}

// ReprojectPoint is the point-only variant of Reproject.
func ReprojectPoint(p orb.Point, from, to CRS) orb.Point {
	if from.Code == to.Code {
		return p
	}
	if !from.Geographic {
		p = from.Inverse()(p)
	}
	if !to.Geographic {
		p = to.Forward()(p)
	}
	return p
}

// Distance returns the planar distance between two points. Both points
// must be expressed in the same projected (metric) system; the result is
// then in meters.
func Distance(a, b orb.Point) float64 {
	return planar.Distance(a, b)
}

// NearestPoint returns the index of the candidate closest to p and the
// distance to it, in the units of the active system. Equidistant
// candidates resolve to the first one in slice order, which keeps
// results reproducible. Returns index -1 for an empty candidate set.
func NearestPoint(p orb.Point, candidates []orb.Point) (int, float64) {
	best := -1
	bestDist := 0.0
	for i, c := range candidates {
		d := planar.Distance(p, c)
		if best == -1 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, bestDist
}

// Centroid returns the area-weighted centroid of g. Callers that feed
// the result into distance math must pass projected geometry; geographic
// centroids are distorted and never used for distances.
func Centroid(g orb.Geometry) orb.Point {
	c, _ := planar.CentroidArea(g)
	return c
}

// Area returns the planar area of g in the squared units of the active
// system.
func Area(g orb.Geometry) float64 {
	return planar.Area(g)
}
