// Package geo provides the coordinate reference system registry and the
// planar geometry primitives used by the analysis pipeline. All distance
// and area computation happens in a projected (metric) system; angular
// distances are never reported.
package geo

import (
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/rotisserie/eris"
)

// ErrInvalidCRS marks an unrecognized or unsupported reference system.
var ErrInvalidCRS = eris.New("geo: invalid CRS")

// CRS is a coordinate reference system known to the registry.
// Geographic coordinates are WGS84 lon/lat degrees; projected
// coordinates are UTM easting/northing meters.
type CRS struct {
	Code       string
	Geographic bool

	zone  int
	south bool
}

// WGS84 is the geographic system all input data is expressed in.
var WGS84 = CRS{Code: "EPSG:4326", Geographic: true}

// ParseCRS resolves an EPSG code. Supported: EPSG:4326 and the UTM
// zones EPSG:32601-32660 (north) and EPSG:32701-32760 (south).
func ParseCRS(code string) (CRS, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "EPSG:4326" {
		return WGS84, nil
	}

	num, ok := strings.CutPrefix(normalized, "EPSG:")
	if !ok {
		return CRS{}, eris.Wrapf(ErrInvalidCRS, "code %q", code)
	}
	epsg, err := strconv.Atoi(num)
	if err != nil {
		return CRS{}, eris.Wrapf(ErrInvalidCRS, "code %q", code)
	}

	switch {
	case epsg >= 32601 && epsg <= 32660:
		return CRS{Code: normalized, zone: epsg - 32600}, nil
	case epsg >= 32701 && epsg <= 32760:
		return CRS{Code: normalized, zone: epsg - 32700, south: true}, nil
	}
	return CRS{}, eris.Wrapf(ErrInvalidCRS, "code %q", code)
}

// Forward returns the projection from WGS84 lon/lat into this CRS.
func (c CRS) Forward() orb.Projection {
	if c.Geographic {
		return func(p orb.Point) orb.Point { return p }
	}
	zone, south := c.zone, c.south
	return func(p orb.Point) orb.Point {
		e, n := utmForward(p.Lat(), p.Lon(), zone, south)
		return orb.Point{e, n}
	}
}

// Inverse returns the projection from this CRS back to WGS84 lon/lat.
func (c CRS) Inverse() orb.Projection {
	if c.Geographic {
		return func(p orb.Point) orb.Point { return p }
	}
	zone, south := c.zone, c.south
	return func(p orb.Point) orb.Point {
		lat, lon := utmInverse(p[0], p[1], zone, south)
		return orb.Point{lon, lat}
	}
}
