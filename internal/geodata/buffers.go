package geodata

import (
	"github.com/paulmach/orb/geojson"

	"github.com/cityscale/healthatlas/internal/model"
)

// SaveBufferZones writes the per-radius coverage report as JSON.
func SaveBufferZones(path string, zones []model.BufferZone) error {
	return writeJSON(path, zones)
}

// SaveBufferZoneGeoJSON writes one buffer zone's disk geometry as a
// FeatureCollection.
func SaveBufferZoneGeoJSON(path string, zone model.BufferZone) error {
	fc := geojson.NewFeatureCollection()
	f := geojson.NewFeature(zone.Zone)
	f.Properties = geojson.Properties{
		"buffer_km": zone.RadiusKM,
		"area_km2":  zone.AreaKM2,
	}
	fc.Append(f)
	return writeJSON(path, fc)
}
