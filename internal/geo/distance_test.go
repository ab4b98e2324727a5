package geo_test

import (
	"math"
	"testing"

	"github.com/servineo/backend/internal/domain"
	"github.com/servineo/backend/internal/geo"
)

func TestDistanceKmSymmetry(t *testing.T) {
	pairs := []struct {
		a, b domain.GeoPoint
	}{
		{domain.GeoPoint{Lat: -17.39, Lng: -66.15}, domain.GeoPoint{Lat: -17.40, Lng: -66.16}},
		{domain.GeoPoint{Lat: 0, Lng: 0}, domain.GeoPoint{Lat: 45, Lng: 90}},
		{domain.GeoPoint{Lat: 90, Lng: 0}, domain.GeoPoint{Lat: -90, Lng: 0}},
	}

	for _, p := range pairs {
		ab := geo.DistanceKm(p.a, p.b)
		ba := geo.DistanceKm(p.b, p.a)
		if ab != ba {
			t.Errorf("distance not symmetric: %v vs %v", ab, ba)
		}
	}
}

func TestDistanceKmIdentity(t *testing.T) {
	p := domain.GeoPoint{Lat: -17.3895, Lng: -66.1568}
	if d := geo.DistanceKm(p, p); d > 1e-9 {
		t.Errorf("distance to self = %v, want ~0", d)
	}
}

func TestDistanceKmOneDegree(t *testing.T) {
	// One degree of arc along a great circle is ~111.19 km.
	origin := domain.GeoPoint{}

	dLng := geo.DistanceKm(origin, domain.GeoPoint{Lat: 0, Lng: 1})
	if math.Abs(dLng-111.19) > 0.05 {
		t.Errorf("one degree of longitude at equator = %v km, want ~111.19", dLng)
	}

	dLat := geo.DistanceKm(origin, domain.GeoPoint{Lat: 1, Lng: 0})
	if math.Abs(dLat-111.19) > 0.05 {
		t.Errorf("one degree of latitude = %v km, want ~111.19", dLat)
	}
}

func TestDistanceKmExtremes(t *testing.T) {
	// Antipodal points and the poles must not divide by zero or go NaN.
	cases := []struct {
		name string
		a, b domain.GeoPoint
		want float64
	}{
		{"antipodal", domain.GeoPoint{Lat: 0, Lng: 0}, domain.GeoPoint{Lat: 0, Lng: 180}, math.Pi * 6371},
		{"poles", domain.GeoPoint{Lat: 90, Lng: 0}, domain.GeoPoint{Lat: -90, Lng: 0}, math.Pi * 6371},
	}

	for _, tc := range cases {
		d := geo.DistanceKm(tc.a, tc.b)
		if math.IsNaN(d) || math.IsInf(d, 0) {
			t.Fatalf("%s: distance is not finite: %v", tc.name, d)
		}
		if math.Abs(d-tc.want) > 1 {
			t.Errorf("%s: distance = %v, want ~%v", tc.name, d, tc.want)
		}
	}
}

func TestDistanceKmMonotonic(t *testing.T) {
	origin := domain.GeoPoint{}
	prev := 0.0
	for deg := 1.0; deg <= 90; deg++ {
		d := geo.DistanceKm(origin, domain.GeoPoint{Lat: deg, Lng: 0})
		if d <= prev {
			t.Fatalf("distance not increasing at %v degrees: %v <= %v", deg, d, prev)
		}
		prev = d
	}
}
