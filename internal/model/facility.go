// Package model defines the core types shared across the analysis pipeline.
package model

import (
	"github.com/paulmach/orb"
)

// FacilityType is the derived category of a healthcare facility.
type FacilityType string

// Primary facility types. Facilities tagged only with a healthcare
// sub-type carry that tag title-cased (e.g. "Dentist", "Pharmacy").
const (
	FacilityHospital FacilityType = "Hospital"
	FacilityClinic   FacilityType = "Clinic"
	FacilityDoctor   FacilityType = "Doctor"
	FacilityOther    FacilityType = "Other"
)

// Sector is the derived operator sector of a facility.
type Sector string

const (
	SectorPublic     Sector = "Public"
	SectorPrivate    Sector = "Private"
	SectorUniversity Sector = "University"
	SectorUnknown    Sector = "Unknown"
)

// Facility is a single healthcare facility record. Records are created
// once per collection run and are immutable afterwards.
type Facility struct {
	OSMID        int64   `json:"osm_id" csv:"osm_id"`
	Name         string  `json:"name" csv:"name"`
	NameEN       string  `json:"name_en,omitempty" csv:"name_en"`
	Amenity      string  `json:"amenity,omitempty" csv:"amenity"`
	Healthcare   string  `json:"healthcare,omitempty" csv:"healthcare"`
	Operator     string  `json:"operator,omitempty" csv:"operator"`
	OperatorType string  `json:"operator_type,omitempty" csv:"operator_type"`
	Phone        string  `json:"phone,omitempty" csv:"phone"`
	Website      string  `json:"website,omitempty" csv:"website"`
	AddrDistrict string  `json:"addr_district,omitempty" csv:"addr_district"`
	Longitude    float64 `json:"longitude" csv:"longitude"`
	Latitude     float64 `json:"latitude" csv:"latitude"`

	Type   FacilityType `json:"facility_type" csv:"facility_type"`
	Sector Sector       `json:"sector" csv:"sector"`
}

// Location returns the facility position as a lon/lat point.
func (f *Facility) Location() orb.Point {
	return orb.Point{f.Longitude, f.Latitude}
}

// DisplayName prefers the English name when present.
func (f *Facility) DisplayName() string {
	if f.NameEN != "" {
		return f.NameEN
	}
	return f.Name
}
