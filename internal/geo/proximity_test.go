package geo_test

import (
	"errors"
	"math"
	"testing"

	"github.com/servineo/backend/internal/domain"
	"github.com/servineo/backend/internal/geo"
)

func f64(v float64) *float64 { return &v }

func fixerAt(name string, lat, lng float64) domain.Fixer {
	return domain.Fixer{
		Name: name,
		Coordinates: domain.Coordinates{
			Position: &domain.GeoPoint{Lat: lat, Lng: lng},
		},
	}
}

func TestFindWithinInclusiveBoundary(t *testing.T) {
	ref := domain.GeoPoint{Lat: 0, Lng: 0}
	// One degree of longitude at the equator is ~111.19 km away.
	candidates := []domain.Fixer{fixerAt("boundary", 0, 1)}

	exact := geo.DistanceKm(ref, domain.GeoPoint{Lat: 0, Lng: 1})

	got, err := geo.FindWithin(ref, candidates, exact, geo.ModeLegacy)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("candidate at exactly the radius must be included, got %d results", len(got))
	}

	got, err = geo.FindWithin(ref, candidates, exact-0.001, geo.ModeLegacy)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("candidate just past the radius must be excluded, got %d results", len(got))
	}
}

func TestFindWithinPreservesInputOrder(t *testing.T) {
	ref := domain.GeoPoint{Lat: -17.39, Lng: -66.15}
	candidates := []domain.Fixer{
		fixerAt("far-but-first", -17.42, -66.15),
		fixerAt("near-but-second", -17.391, -66.15),
		fixerAt("outside", -20, -66.15),
	}

	got, err := geo.FindWithin(ref, candidates, 5, geo.ModeLegacy)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	// No distance sort: matches keep their input positions.
	if got[0].Name != "far-but-first" || got[1].Name != "near-but-second" {
		t.Errorf("result order changed: %q, %q", got[0].Name, got[1].Name)
	}
}

func TestFindWithinCoordinateFallback(t *testing.T) {
	ref := domain.GeoPoint{Lat: -17.39, Lng: -66.15}

	nested := fixerAt("nested", -17.391, -66.151)
	flat := domain.Fixer{
		Name: "flat",
		Coordinates: domain.Coordinates{
			Lat: f64(-17.392),
			Lng: f64(-66.152),
		},
	}
	// Nested position wins over flat fields pointing far away.
	both := domain.Fixer{
		Name: "both",
		Coordinates: domain.Coordinates{
			Position: &domain.GeoPoint{Lat: -17.390, Lng: -66.150},
			Lat:      f64(40),
			Lng:      f64(3),
		},
	}

	got, err := geo.FindWithin(ref, []domain.Fixer{nested, flat, both}, 2, geo.ModeLegacy)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d results, want 3", len(got))
	}
}

func TestFindWithinUnresolvedCoordinates(t *testing.T) {
	noCoords := domain.Fixer{Name: "sin-coordenadas"}

	// Legacy mode defaults to (0,0): searching near the origin finds it.
	got, err := geo.FindWithin(domain.GeoPoint{Lat: 0, Lng: 0}, []domain.Fixer{noCoords}, 1, geo.ModeLegacy)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatal("legacy mode must include a record defaulted to the origin")
	}

	// Searching anywhere else silently misses it.
	got, err = geo.FindWithin(domain.GeoPoint{Lat: -17.39, Lng: -66.15}, []domain.Fixer{noCoords}, 5, geo.ModeLegacy)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatal("legacy mode defaulted record should not match far from origin")
	}

	// Strict mode excludes it everywhere, origin included.
	got, err = geo.FindWithin(domain.GeoPoint{Lat: 0, Lng: 0}, []domain.Fixer{noCoords}, 1, geo.ModeStrict)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatal("strict mode must exclude records with unresolved coordinates")
	}
}

func TestFindWithinInvalidInputs(t *testing.T) {
	candidates := []domain.Fixer{fixerAt("x", 0, 0)}

	if _, err := geo.FindWithin(domain.GeoPoint{}, candidates, 0, geo.ModeLegacy); !errors.Is(err, domain.ErrInvalidRadius) {
		t.Errorf("radius 0: got %v, want ErrInvalidRadius", err)
	}
	if _, err := geo.FindWithin(domain.GeoPoint{}, candidates, -3, geo.ModeLegacy); !errors.Is(err, domain.ErrInvalidRadius) {
		t.Errorf("negative radius: got %v, want ErrInvalidRadius", err)
	}
	if _, err := geo.FindWithin(domain.GeoPoint{Lat: math.NaN(), Lng: 0}, candidates, 5, geo.ModeLegacy); !errors.Is(err, domain.ErrMissingCoordinates) {
		t.Errorf("NaN latitude: got %v, want ErrMissingCoordinates", err)
	}
	if _, err := geo.FindWithin(domain.GeoPoint{Lat: 0, Lng: math.Inf(1)}, candidates, 5, geo.ModeLegacy); !errors.Is(err, domain.ErrMissingCoordinates) {
		t.Errorf("infinite longitude: got %v, want ErrMissingCoordinates", err)
	}
}
