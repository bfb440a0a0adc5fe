package spatial

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/cityscale/healthatlas/internal/geo"
	"github.com/cityscale/healthatlas/internal/model"
)

// circleSegments is the number of edges used to approximate a disk.
const circleSegments = 64

// DefaultCellM is the default sampling cell size for union area, meters.
const DefaultCellM = 100.0

// Buffer computes the coverage zone of the facility set at the given
// radius. Disks are built in the projected system and reprojected to
// WGS84 for the zone geometry. The union area is estimated by stamping
// covered cells on a cellM-sized grid; overlapping disks are counted
// once. The estimate is deterministic for a given cell size.
func Buffer(facilities []model.Facility, radiusKM float64, projected geo.CRS, cellM float64) (model.BufferZone, error) {
	if radiusKM <= 0 {
		return model.BufferZone{}, eris.Errorf("spatial: buffer radius must be positive, got %g", radiusKM)
	}
	if projected.Geographic {
		return model.BufferZone{}, eris.Wrap(geo.ErrInvalidCRS, "spatial: buffer requires a projected CRS")
	}
	if cellM <= 0 {
		cellM = DefaultCellM
	}

	zone := model.BufferZone{
		RadiusKM:   radiusKM,
		Facilities: len(facilities),
	}
	if len(facilities) == 0 {
		return zone, nil
	}

	radiusM := radiusKM * 1000
	forward := projected.Forward()
	inverse := projected.Inverse()

	type cell struct{ x, y int }
	covered := make(map[cell]struct{})

	for i := range facilities {
		center := forward(facilities[i].Location())
		zone.Zone = append(zone.Zone, circleWGS84(center, radiusM, inverse))

		// Stamp cells whose center falls inside this disk.
		minX := int(math.Floor((center[0] - radiusM) / cellM))
		maxX := int(math.Ceil((center[0] + radiusM) / cellM))
		minY := int(math.Floor((center[1] - radiusM) / cellM))
		maxY := int(math.Ceil((center[1] + radiusM) / cellM))
		for cx := minX; cx <= maxX; cx++ {
			for cy := minY; cy <= maxY; cy++ {
				px := (float64(cx) + 0.5) * cellM
				py := (float64(cy) + 0.5) * cellM
				dx, dy := px-center[0], py-center[1]
				if dx*dx+dy*dy <= radiusM*radiusM {
					covered[cell{cx, cy}] = struct{}{}
				}
			}
		}
	}

	zone.AreaKM2 = float64(len(covered)) * cellM * cellM / 1e6
	zap.L().Debug("spatial: buffer zone computed",
		zap.Float64("radius_km", radiusKM),
		zap.Int("facilities", len(facilities)),
		zap.Float64("area_km2", zone.AreaKM2),
	)
	return zone, nil
}

// circleWGS84 builds a closed polygon approximating the disk around a
// projected center and reprojects it to lon/lat.
func circleWGS84(center orb.Point, radiusM float64, inverse orb.Projection) orb.Polygon {
	ring := make(orb.Ring, 0, circleSegments+1)
	for i := 0; i < circleSegments; i++ {
		angle := 2 * math.Pi * float64(i) / circleSegments
		p := orb.Point{
			center[0] + radiusM*math.Cos(angle),
			center[1] + radiusM*math.Sin(angle),
		}
		ring = append(ring, inverse(p))
	}
	ring = append(ring, ring[0])
	return orb.Polygon{ring}
}
