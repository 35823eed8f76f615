package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/trailfinder/internal/domain"
)

func TestLatLng_Valid(t *testing.T) {
	assert.True(t, domain.LatLng{Lat: 50.0, Lng: 19.9}.Valid())
	assert.True(t, domain.LatLng{Lat: -90, Lng: 180}.Valid())
	assert.False(t, domain.LatLng{Lat: 90.01, Lng: 0}.Valid())
	assert.False(t, domain.LatLng{Lat: 0, Lng: 180.5}.Valid())
	assert.False(t, domain.LatLng{Lat: math.NaN(), Lng: 0}.Valid())
	assert.False(t, domain.LatLng{Lat: 0, Lng: math.Inf(1)}.Valid())
}

func TestLatLng_DistanceKm(t *testing.T) {
	krakow := domain.LatLng{Lat: 50.0614, Lng: 19.9366}
	warsaw := domain.LatLng{Lat: 52.2297, Lng: 21.0122}

	assert.InDelta(t, 252, krakow.DistanceKm(warsaw), 2)
	assert.InDelta(t, 0, krakow.DistanceKm(krakow), 1e-9)
	// 0.01 degree of latitude is about 1.11 km everywhere.
	assert.InDelta(t, 1.11, domain.LatLng{Lat: 50, Lng: 19.9}.DistanceKm(domain.LatLng{Lat: 50.01, Lng: 19.9}), 0.01)
}
