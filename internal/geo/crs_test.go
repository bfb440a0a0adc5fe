package geo

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCRS(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		wantErr    bool
		geographic bool
	}{
		{
			name:       "wgs84",
			code:       "EPSG:4326",
			geographic: true,
		},
		{
			name: "utm 35 north",
			code: "EPSG:32635",
		},
		{
			name: "utm 35 south",
			code: "EPSG:32735",
		},
		{
			name: "lowercase with whitespace",
			code: "  epsg:32635 ",
		},
		{
			name:    "web mercator unsupported",
			code:    "EPSG:3857",
			wantErr: true,
		},
		{
			name:    "zone out of range",
			code:    "EPSG:32661",
			wantErr: true,
		},
		{
			name:    "missing authority",
			code:    "32635",
			wantErr: true,
		},
		{
			name:    "garbage",
			code:    "EPSG:abc",
			wantErr: true,
		},
		{
			name:    "empty",
			code:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			crs, err := ParseCRS(tt.code)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, eris.Is(err, ErrInvalidCRS))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.geographic, crs.Geographic)
		})
	}
}

func TestForwardInverseRoundTrip(t *testing.T) {
	crs, err := ParseCRS("EPSG:32635")
	require.NoError(t, err)

	points := []orb.Point{
		{28.9784, 41.0082}, // Istanbul city center
		{29.2, 40.8},
		{27.0, 41.0}, // on the central meridian
		{26.5, 40.2},
	}

	fwd, inv := crs.Forward(), crs.Inverse()
	for _, p := range points {
		back := inv(fwd(p))
		assert.InDelta(t, p.Lon(), back.Lon(), 1e-6)
		assert.InDelta(t, p.Lat(), back.Lat(), 1e-6)
	}
}

func TestForwardKnownValues(t *testing.T) {
	crs, err := ParseCRS("EPSG:32635")
	require.NoError(t, err)
	fwd := crs.Forward()

	// A point on the central meridian projects to exactly the false
	// easting, and northern-hemisphere northings carry no offset.
	onMeridian := fwd(orb.Point{27.0, 41.0})
	assert.InDelta(t, 500000, onMeridian[0], 1e-6)
	assert.Greater(t, onMeridian[1], 4_500_000.0)
	assert.Less(t, onMeridian[1], 4_600_000.0)

	// East of the meridian means easting above 500km.
	istanbul := fwd(orb.Point{28.9784, 41.0082})
	assert.Greater(t, istanbul[0], 500000.0)

	// One hundredth of a degree of latitude is about 1.11 km on the
	// ground at this latitude.
	a := fwd(orb.Point{28.9784, 41.00})
	b := fwd(orb.Point{28.9784, 41.01})
	assert.InDelta(t, 1110, Distance(a, b), 5)
}

func TestSouthernHemisphereNorthing(t *testing.T) {
	crs, err := ParseCRS("EPSG:32735")
	require.NoError(t, err)

	// South of the equator the false northing keeps values positive.
	p := crs.Forward()(orb.Point{27.0, -10.0})
	assert.Greater(t, p[1], 8_000_000.0)
	assert.Less(t, p[1], 10_000_000.0)

	lonlat := crs.Inverse()(p)
	assert.InDelta(t, -10.0, lonlat.Lat(), 1e-6)
}
