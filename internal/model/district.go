package model

import (
	"github.com/paulmach/orb"
)

// District is an administrative district with its boundary polygon and
// the per-run derived accessibility fields. Derived fields are fully
// recomputed on every analysis run; FacilityCount and NearestKM are
// always computed against the same facility set.
type District struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Boundary orb.MultiPolygon `json:"-"`

	// Derived, valid only within one analysis run.
	FacilityCount int     `json:"facility_count"`
	NearestKM     float64 `json:"nearest_hospital_km"`
	Score         float64 `json:"accessibility_score"`
}

// BufferZone is the coverage zone of a facility set at a fixed radius.
// Zone holds one disk polygon per facility; AreaKM2 is the estimated
// area of their union, not the sum of disk areas.
type BufferZone struct {
	RadiusKM   float64          `json:"buffer_km"`
	Facilities int              `json:"facilities"`
	Zone       orb.MultiPolygon `json:"-"`
	AreaKM2    float64          `json:"area_km2"`
}
