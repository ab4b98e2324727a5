package geo

import (
	"math"

	"github.com/servineo/backend/internal/domain"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371

// DistanceKm returns the great-circle distance between two points using the
// haversine formula. Symmetric, zero at identity, and well-defined for all
// valid coordinates including the poles and antipodal pairs. Inputs are not
// range-checked here; callers validate before filtering.
func DistanceKm(a, b domain.GeoPoint) float64 {
	dLat := deg2rad(b.Lat - a.Lat)
	dLng := deg2rad(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat +
		math.Cos(deg2rad(a.Lat))*math.Cos(deg2rad(b.Lat))*sinLng*sinLng

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

func deg2rad(deg float64) float64 {
	return deg * (math.Pi / 180)
}
