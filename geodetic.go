package sgp4sdp4

import (
	"math"
	"time"
)

// LatLonAlt is a geodetic position on the WGS-72 ellipsoid.
type LatLonAlt struct {
	Latitude  float64 // Degrees, north positive
	Longitude float64 // Degrees east, in (-180, 180]
	Altitude  float64 // km above the ellipsoid
}

// Geodetic returns the sub-satellite point of an inertial position given in
// km, at Julian date jd.
func Geodetic(pos Vector, jd float64) LatLonAlt {
	const (
		maxIter = 10
		tol     = 1e-10
	)
	e2 := flattening * (2 - flattening)

	theta := ArcTan2(pos.Y, pos.X)
	lon := NormalizeAngle2Pi(theta - ThetaGJD(jd))
	r := math.Sqrt(pos.X*pos.X + pos.Y*pos.Y)
	lat := math.Atan2(pos.Z, r)

	var c float64
	for iter := 0; iter < maxIter; iter++ {
		prev := lat
		sinLat := math.Sin(lat)
		c = 1 / math.Sqrt(1-e2*sinLat*sinLat)
		lat = math.Atan2(pos.Z+xkmper*c*e2*sinLat, r)
		if math.Abs(lat-prev) < tol {
			break
		}
	}

	var alt float64
	if cosLat := math.Cos(lat); math.Abs(cosLat) < 1e-10 {
		alt = math.Abs(pos.Z) - xkmper*math.Sqrt(1-e2)
	} else {
		alt = r/cosLat - xkmper*c
	}

	if lon > math.Pi {
		lon -= twoPi
	}
	return LatLonAlt{
		Latitude:  lat * rad2deg,
		Longitude: lon * rad2deg,
		Altitude:  alt,
	}
}

// SubPoint returns the geodetic point under the satellite at time t.
func (s *Satellite) SubPoint(t time.Time) LatLonAlt {
	pos, _ := s.PropagateTime(t).Km()
	return Geodetic(pos, JulianDate(t))
}
