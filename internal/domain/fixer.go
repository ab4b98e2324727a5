package domain

import "time"

// GeoPoint is a latitude/longitude pair in degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Coordinates carries a candidate's position under both shapes the legacy
// data uses: a nested "posicion" object or flat lat/lng fields. The nested
// object wins when present; each axis falls back independently, matching
// the source data's accretion history.
type Coordinates struct {
	Position *GeoPoint `json:"posicion,omitempty"`
	Lat      *float64  `json:"lat,omitempty"`
	Lng      *float64  `json:"lng,omitempty"`
}

// Location resolves the coordinates. The second return reports whether both
// axes resolved from actual data; callers decide whether unresolved axes
// default to zero (legacy behavior) or exclude the candidate (strict mode).
func (c Coordinates) Location() (GeoPoint, bool) {
	var p GeoPoint
	resolved := true

	switch {
	case c.Position != nil:
		p.Lat = c.Position.Lat
	case c.Lat != nil:
		p.Lat = *c.Lat
	default:
		resolved = false
	}

	switch {
	case c.Position != nil:
		p.Lng = c.Position.Lng
	case c.Lng != nil:
		p.Lng = *c.Lng
	default:
		resolved = false
	}

	return p, resolved
}

// Locatable is anything that can report a position for proximity matching.
type Locatable interface {
	Location() (GeoPoint, bool)
}

// Fixer is a service provider in the marketplace.
type Fixer struct {
	ID        string `json:"id"`
	Name      string `json:"nombre"`
	Specialty string `json:"especialidad,omitempty"`
	Phone     string `json:"telefono,omitempty"`
	Active    bool   `json:"activo"`
	Coordinates
	CreatedAt time.Time `json:"created_at"`
}

// Ubicacion is a static point of interest used by proximity search.
type Ubicacion struct {
	ID      string `json:"id"`
	Name    string `json:"nombre"`
	Address string `json:"direccion,omitempty"`
	Coordinates
	CreatedAt time.Time `json:"created_at"`
}
