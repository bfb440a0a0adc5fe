package geodata

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/cityscale/healthatlas/internal/model"
)

// LoadFacilities reads a facility point FeatureCollection.
func LoadFacilities(path string) ([]model.Facility, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "geodata: read %s", path)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, eris.Wrapf(err, "geodata: parse %s", path)
	}

	facilities := make([]model.Facility, 0, len(fc.Features))
	var skipped int
	for _, f := range fc.Features {
		pt, ok := f.Geometry.(orb.Point)
		if !ok {
			skipped++
			continue
		}
		facilities = append(facilities, model.Facility{
			OSMID:        int64(f.Properties.MustInt("osm_id", 0)),
			Name:         f.Properties.MustString("name", ""),
			NameEN:       f.Properties.MustString("name_en", ""),
			Amenity:      f.Properties.MustString("amenity", ""),
			Healthcare:   f.Properties.MustString("healthcare", ""),
			Operator:     f.Properties.MustString("operator", ""),
			OperatorType: f.Properties.MustString("operator_type", ""),
			Phone:        f.Properties.MustString("phone", ""),
			Website:      f.Properties.MustString("website", ""),
			AddrDistrict: f.Properties.MustString("addr_district", ""),
			Longitude:    pt.Lon(),
			Latitude:     pt.Lat(),
			Type:         model.FacilityType(f.Properties.MustString("facility_type", string(model.FacilityOther))),
			Sector:       model.Sector(f.Properties.MustString("sector", string(model.SectorUnknown))),
		})
	}
	if skipped > 0 {
		zap.L().Warn("geodata: skipped non-point facility features",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}
	return facilities, nil
}

// SaveFacilities writes the facility set as a GeoJSON FeatureCollection.
func SaveFacilities(path string, facilities []model.Facility) error {
	fc := geojson.NewFeatureCollection()
	for i := range facilities {
		f := geojson.NewFeature(facilities[i].Location())
		f.Properties = geojson.Properties{
			"osm_id":        facilities[i].OSMID,
			"name":          facilities[i].Name,
			"facility_type": string(facilities[i].Type),
			"sector":        string(facilities[i].Sector),
		}
		setIfNotEmpty(f.Properties, "name_en", facilities[i].NameEN)
		setIfNotEmpty(f.Properties, "amenity", facilities[i].Amenity)
		setIfNotEmpty(f.Properties, "healthcare", facilities[i].Healthcare)
		setIfNotEmpty(f.Properties, "operator", facilities[i].Operator)
		setIfNotEmpty(f.Properties, "operator_type", facilities[i].OperatorType)
		setIfNotEmpty(f.Properties, "phone", facilities[i].Phone)
		setIfNotEmpty(f.Properties, "website", facilities[i].Website)
		setIfNotEmpty(f.Properties, "addr_district", facilities[i].AddrDistrict)
		fc.Append(f)
	}
	return writeJSON(path, fc)
}

// LoadDistrictsGeoJSON reads district polygons from a GeoJSON file,
// resolving the name property from nameColumns (nil means defaults).
func LoadDistrictsGeoJSON(path string, nameColumns []string) ([]model.District, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "geodata: read %s", path)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, eris.Wrapf(err, "geodata: parse %s", path)
	}
	if len(fc.Features) == 0 {
		return nil, eris.Errorf("geodata: %s contains no features", path)
	}

	keys := make(map[string]struct{})
	for _, f := range fc.Features {
		for k := range f.Properties {
			keys[k] = struct{}{}
		}
	}
	nameKey, err := resolveNameColumn(keys, nameColumns)
	if err != nil {
		return nil, eris.Wrapf(err, "geodata: districts %s", path)
	}

	districts := make([]model.District, 0, len(fc.Features))
	for i, f := range fc.Features {
		boundary, ok := toMultiPolygon(f.Geometry)
		if !ok {
			zap.L().Warn("geodata: skipping non-polygon district feature",
				zap.String("path", path),
				zap.Int("feature", i),
			)
			continue
		}
		name := f.Properties.MustString(nameKey, "")
		id := f.Properties.MustString("id", "")
		if id == "" {
			if s, ok := f.ID.(string); ok && s != "" {
				id = s
			} else {
				id = fmt.Sprintf("district-%03d", i)
			}
		}
		districts = append(districts, model.District{
			ID:       id,
			Name:     name,
			Boundary: boundary,
		})
	}
	if len(districts) == 0 {
		return nil, eris.Errorf("geodata: %s contains no polygon districts", path)
	}
	return districts, nil
}

// SaveDistricts writes the analyzed district set with its derived
// properties as a GeoJSON FeatureCollection.
func SaveDistricts(path string, districts []model.District) error {
	fc := geojson.NewFeatureCollection()
	for i := range districts {
		f := geojson.NewFeature(districts[i].Boundary)
		f.Properties = geojson.Properties{
			"id":                  districts[i].ID,
			"name":                districts[i].Name,
			"facility_count":      districts[i].FacilityCount,
			"nearest_hospital_km": districts[i].NearestKM,
			"accessibility_score": districts[i].Score,
		}
		fc.Append(f)
	}
	return writeJSON(path, fc)
}

// ReloadDistricts reads back a district FeatureCollection written by
// SaveDistricts, including the derived fields.
func ReloadDistricts(path string) ([]model.District, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "geodata: read %s", path)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, eris.Wrapf(err, "geodata: parse %s", path)
	}
	districts := make([]model.District, 0, len(fc.Features))
	for _, f := range fc.Features {
		boundary, ok := toMultiPolygon(f.Geometry)
		if !ok {
			continue
		}
		districts = append(districts, model.District{
			ID:            f.Properties.MustString("id", ""),
			Name:          f.Properties.MustString("name", ""),
			Boundary:      boundary,
			FacilityCount: f.Properties.MustInt("facility_count", 0),
			NearestKM:     f.Properties.MustFloat64("nearest_hospital_km", 0),
			Score:         f.Properties.MustFloat64("accessibility_score", 0),
		})
	}
	return districts, nil
}

// SaveSummary writes the flat summary record as indented JSON.
func SaveSummary(path string, summary model.Summary) error {
	return writeJSON(path, summary)
}

func toMultiPolygon(g orb.Geometry) (orb.MultiPolygon, bool) {
	switch geom := g.(type) {
	case orb.Polygon:
		return orb.MultiPolygon{geom}, true
	case orb.MultiPolygon:
		return geom, true
	}
	return nil, false
}

func setIfNotEmpty(props geojson.Properties, key, val string) {
	if val != "" {
		props[key] = val
	}
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrapf(err, "geodata: marshal %s", path)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "geodata: write %s", path)
	}
	return nil
}

// SortFacilities orders facilities by OSM ID so collection output is
// stable across runs.
func SortFacilities(facilities []model.Facility) {
	sort.Slice(facilities, func(a, b int) bool {
		return facilities[a].OSMID < facilities[b].OSMID
	})
}
