package geodata

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/cityscale/healthatlas/internal/model"
)

// LoadDistricts dispatches on the file extension: .shp goes to the
// shapefile reader, everything else is treated as GeoJSON.
func LoadDistricts(path string, nameColumns []string) ([]model.District, error) {
	if strings.EqualFold(filepath.Ext(path), ".shp") {
		return LoadDistrictsShapefile(path, nameColumns)
	}
	return LoadDistrictsGeoJSON(path, nameColumns)
}

// SaveFacilitiesCSV writes the facility table (without geometry) as CSV.
func SaveFacilitiesCSV(path string, facilities []model.Facility) error {
	data, err := csvutil.Marshal(facilities)
	if err != nil {
		return eris.Wrapf(err, "geodata: marshal facility csv")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "geodata: write %s", path)
	}
	return nil
}

// districtRow is the flat CSV projection of an analyzed district.
type districtRow struct {
	ID            string  `csv:"id"`
	Name          string  `csv:"name"`
	FacilityCount int     `csv:"facility_count"`
	NearestKM     float64 `csv:"nearest_hospital_km"`
	Score         float64 `csv:"accessibility_score"`
}

// SaveDistrictsCSV writes the analyzed district table as CSV.
func SaveDistrictsCSV(path string, districts []model.District) error {
	rows := make([]districtRow, len(districts))
	for i := range districts {
		rows[i] = districtRow{
			ID:            districts[i].ID,
			Name:          districts[i].Name,
			FacilityCount: districts[i].FacilityCount,
			NearestKM:     districts[i].NearestKM,
			Score:         districts[i].Score,
		}
	}
	data, err := csvutil.Marshal(rows)
	if err != nil {
		return eris.Wrap(err, "geodata: marshal district csv")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "geodata: write %s", path)
	}
	return nil
}

// Metadata describes one collection run.
type Metadata struct {
	Source          string         `json:"source"`
	City            string         `json:"city"`
	CollectionDate  time.Time      `json:"collection_date"`
	TotalFacilities int            `json:"total_facilities"`
	CRS             string         `json:"crs"`
	Types           map[string]int `json:"types"`
	Sectors         map[string]int `json:"sectors"`
}

// BuildMetadata summarizes a collected facility set.
func BuildMetadata(city string, facilities []model.Facility, at time.Time) Metadata {
	md := Metadata{
		Source:          "OpenStreetMap via Overpass API",
		City:            city,
		CollectionDate:  at,
		TotalFacilities: len(facilities),
		CRS:             "EPSG:4326",
		Types:           make(map[string]int),
		Sectors:         make(map[string]int),
	}
	for i := range facilities {
		md.Types[string(facilities[i].Type)]++
		md.Sectors[string(facilities[i].Sector)]++
	}
	return md
}

// SaveMetadata writes collection metadata as JSON.
func SaveMetadata(path string, md Metadata) error {
	return writeJSON(path, md)
}
