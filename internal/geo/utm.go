package geo

import "math"

// WGS84 ellipsoid and transverse Mercator constants.
const (
	wgs84A = 6378137.0
	wgs84F = 1.0 / 298.257223563
	utmK0  = 0.9996

	falseEasting  = 500000.0
	falseNorthing = 10000000.0
)

var (
	e2  = wgs84F * (2 - wgs84F) // first eccentricity squared
	e4  = e2 * e2
	e6  = e4 * e2
	ep2 = e2 / (1 - e2) // second eccentricity squared
	e1  = (1 - math.Sqrt(1-e2)) / (1 + math.Sqrt(1-e2))
)

func centralMeridian(zone int) float64 {
	return float64(zone)*6 - 183
}

// utmForward converts WGS84 lat/lon degrees to UTM easting/northing
// meters for the given zone, using the standard series expansion.
func utmForward(lat, lon float64, zone int, south bool) (easting, northing float64) {
	phi := lat * math.Pi / 180
	lambda := lon * math.Pi / 180
	lambda0 := centralMeridian(zone) * math.Pi / 180

	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
	tanPhi := sinPhi / cosPhi

	n := wgs84A / math.Sqrt(1-e2*sinPhi*sinPhi)
	t := tanPhi * tanPhi
	c := ep2 * cosPhi * cosPhi
	a := (lambda - lambda0) * cosPhi

	m := wgs84A * ((1-e2/4-3*e4/64-5*e6/256)*phi -
		(3*e2/8+3*e4/32+45*e6/1024)*math.Sin(2*phi) +
		(15*e4/256+45*e6/1024)*math.Sin(4*phi) -
		(35*e6/3072)*math.Sin(6*phi))

	easting = utmK0*n*(a+(1-t+c)*a*a*a/6+
		(5-18*t+t*t+72*c-58*ep2)*math.Pow(a, 5)/120) + falseEasting

	northing = utmK0 * (m + n*tanPhi*(a*a/2+
		(5-t+9*c+4*c*c)*math.Pow(a, 4)/24+
		(61-58*t+t*t+600*c-330*ep2)*math.Pow(a, 6)/720))
	if south {
		northing += falseNorthing
	}
	return easting, northing
}

// utmInverse converts UTM easting/northing meters back to WGS84 lat/lon
// degrees for the given zone.
func utmInverse(easting, northing float64, zone int, south bool) (lat, lon float64) {
	x := easting - falseEasting
	y := northing
	if south {
		y -= falseNorthing
	}
	lambda0 := centralMeridian(zone) * math.Pi / 180

	m := y / utmK0
	mu := m / (wgs84A * (1 - e2/4 - 3*e4/64 - 5*e6/256))

	phi1 := mu +
		(3*e1/2-27*math.Pow(e1, 3)/32)*math.Sin(2*mu) +
		(21*e1*e1/16-55*math.Pow(e1, 4)/32)*math.Sin(4*mu) +
		(151*math.Pow(e1, 3)/96)*math.Sin(6*mu) +
		(1097*math.Pow(e1, 4)/512)*math.Sin(8*mu)

	sinPhi1, cosPhi1 := math.Sin(phi1), math.Cos(phi1)
	tanPhi1 := sinPhi1 / cosPhi1

	c1 := ep2 * cosPhi1 * cosPhi1
	t1 := tanPhi1 * tanPhi1
	n1 := wgs84A / math.Sqrt(1-e2*sinPhi1*sinPhi1)
	r1 := wgs84A * (1 - e2) / math.Pow(1-e2*sinPhi1*sinPhi1, 1.5)
	d := x / (n1 * utmK0)

	phi := phi1 - (n1*tanPhi1/r1)*(d*d/2-
		(5+3*t1+10*c1-4*c1*c1-9*ep2)*math.Pow(d, 4)/24+
		(61+90*t1+298*c1+45*t1*t1-252*ep2-3*c1*c1)*math.Pow(d, 6)/720)

	lambda := lambda0 + (d-(1+2*t1+c1)*d*d*d/6+
		(5-2*c1+28*t1-3*c1*c1+8*ep2+24*t1*t1)*math.Pow(d, 5)/120)/cosPhi1

	return phi * 180 / math.Pi, lambda * 180 / math.Pi
}
