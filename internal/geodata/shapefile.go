package geodata

import (
	"fmt"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/cityscale/healthatlas/internal/model"
)

// LoadDistrictsShapefile reads district polygons from an ESRI
// shapefile. DBF headers are matched case-insensitively against
// nameColumns (nil means defaults).
func LoadDistrictsShapefile(path string, nameColumns []string) ([]model.District, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "geodata: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	keys := make(map[string]struct{}, len(fields))
	fieldIdx := make(map[string]int, len(fields))
	for i, f := range fields {
		name := strings.TrimRight(f.String(), "\x00")
		keys[name] = struct{}{}
		fieldIdx[name] = i
	}
	nameKey, err := resolveNameColumn(keys, nameColumns)
	if err != nil {
		return nil, eris.Wrapf(err, "geodata: districts %s", path)
	}
	nameIdx := fieldIdx[nameKey]

	var districts []model.District
	var skipped int
	for reader.Next() {
		n, shape := reader.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok || poly == nil {
			skipped++
			continue
		}
		boundary := polygonToMultiPolygon(poly)
		if len(boundary) == 0 {
			skipped++
			continue
		}
		name := strings.TrimSpace(strings.TrimRight(reader.Attribute(nameIdx), "\x00"))
		districts = append(districts, model.District{
			ID:       fmt.Sprintf("district-%03d", n),
			Name:     name,
			Boundary: boundary,
		})
	}
	if skipped > 0 {
		zap.L().Warn("geodata: skipped non-polygon shapefile records",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}
	if len(districts) == 0 {
		return nil, eris.Errorf("geodata: %s contains no polygon districts", path)
	}
	return districts, nil
}

// polygonToMultiPolygon converts a shapefile polygon, treating each part
// as its own exterior ring.
func polygonToMultiPolygon(p *shp.Polygon) orb.MultiPolygon {
	var mp orb.MultiPolygon
	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		end := int32(len(p.Points))
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		}
		if end-start < 4 {
			continue
		}
		ring := make(orb.Ring, 0, end-start)
		for j := start; j < end; j++ {
			ring = append(ring, orb.Point{p.Points[j].X, p.Points[j].Y})
		}
		if ring[0] != ring[len(ring)-1] {
			ring = append(ring, ring[0])
		}
		mp = append(mp, orb.Polygon{ring})
	}
	return mp
}
