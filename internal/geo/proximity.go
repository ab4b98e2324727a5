package geo

import (
	"math"

	"github.com/servineo/backend/internal/domain"
)

// Mode controls what happens to candidates whose coordinates cannot be
// resolved from either the nested position object or the flat lat/lng
// fields.
type Mode int

const (
	// ModeLegacy defaults unresolved coordinates to (0,0), matching the
	// source system. A default-valued candidate can land inside or outside
	// any given radius purely by accident of geography; operators should be
	// aware of this when seed data is incomplete.
	ModeLegacy Mode = iota

	// ModeStrict excludes candidates with unresolved coordinates.
	ModeStrict
)

// FindWithin returns the candidates within radiusKm of ref, boundary
// inclusive. Input order is preserved; results are not distance-sorted.
func FindWithin[T domain.Locatable](ref domain.GeoPoint, candidates []T, radiusKm float64, mode Mode) ([]T, error) {
	if radiusKm <= 0 || math.IsNaN(radiusKm) {
		return nil, domain.ErrInvalidRadius
	}
	if math.IsNaN(ref.Lat) || math.IsNaN(ref.Lng) ||
		math.IsInf(ref.Lat, 0) || math.IsInf(ref.Lng, 0) {
		return nil, domain.ErrMissingCoordinates
	}

	var matched []T
	for _, c := range candidates {
		loc, resolved := c.Location()
		if !resolved && mode == ModeStrict {
			continue
		}
		if DistanceKm(ref, loc) <= radiusKm {
			matched = append(matched, c)
		}
	}
	return matched, nil
}
