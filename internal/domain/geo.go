package domain

import (
	"math"

	"github.com/golang/geo/s2"
)

// earthRadiusKm is the mean Earth radius used for great-circle distances.
const earthRadiusKm = 6371.0088

// LatLng is a WGS84 coordinate in degrees.
type LatLng struct {
	Lat float64
	Lng float64
}

// Valid reports whether the coordinate lies within the WGS84 range
// (|lat| <= 90, |lng| <= 180) and contains no NaN or Inf component.
func (p LatLng) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return false
	}
	return p.s2().IsValid()
}

// DistanceKm returns the great-circle distance between p and q in kilometres.
func (p LatLng) DistanceKm(q LatLng) float64 {
	return p.s2().Distance(q.s2()).Radians() * earthRadiusKm
}

func (p LatLng) s2() s2.LatLng {
	return s2.LatLngFromDegrees(p.Lat, p.Lng)
}
