// Package seed holds the predefined fixer and ubicacion fixtures and the
// loader behind the admin seed endpoints.
package seed

import (
	"context"

	"github.com/google/uuid"

	"github.com/servineo/backend/internal/domain"
	"github.com/servineo/backend/internal/repository"
)

func f64(v float64) *float64 { return &v }

// Fixers returns the predefined provider set. Some records carry the nested
// position object and some only the flat lat/lng fields; one has no
// coordinates at all, which exercises the legacy origin fallback.
func Fixers() []domain.Fixer {
	return []domain.Fixer{
		{
			ID:        uuid.NewString(),
			Name:      "Carlos Mamani",
			Specialty: "plomería",
			Phone:     "+591 70011223",
			Active:    true,
			Coordinates: domain.Coordinates{
				Position: &domain.GeoPoint{Lat: -17.3895, Lng: -66.1568},
			},
		},
		{
			ID:        uuid.NewString(),
			Name:      "Lucía Quispe",
			Specialty: "electricidad",
			Phone:     "+591 70044556",
			Active:    true,
			Coordinates: domain.Coordinates{
				Position: &domain.GeoPoint{Lat: -17.3721, Lng: -66.1598},
			},
		},
		{
			ID:        uuid.NewString(),
			Name:      "Jorge Flores",
			Specialty: "carpintería",
			Phone:     "+591 70077889",
			Active:    true,
			Coordinates: domain.Coordinates{
				Lat: f64(-17.4012),
				Lng: f64(-66.1415),
			},
		},
		{
			ID:        uuid.NewString(),
			Name:      "María Rojas",
			Specialty: "pintura",
			Phone:     "+591 70099001",
			Active:    true,
			Coordinates: domain.Coordinates{
				Lat: f64(-17.4139),
				Lng: f64(-66.1653),
			},
		},
		{
			// Registered before coordinates were collected.
			ID:        uuid.NewString(),
			Name:      "Pedro Vargas",
			Specialty: "cerrajería",
			Phone:     "+591 70022334",
			Active:    true,
		},
	}
}

func Ubicaciones() []domain.Ubicacion {
	return []domain.Ubicacion{
		{
			ID:      uuid.NewString(),
			Name:    "Plaza 14 de Septiembre",
			Address: "Centro, Cochabamba",
			Coordinates: domain.Coordinates{
				Position: &domain.GeoPoint{Lat: -17.3936, Lng: -66.1571},
			},
		},
		{
			ID:      uuid.NewString(),
			Name:    "Cristo de la Concordia",
			Address: "Cerro San Pedro, Cochabamba",
			Coordinates: domain.Coordinates{
				Position: &domain.GeoPoint{Lat: -17.3842, Lng: -66.1346},
			},
		},
		{
			ID:      uuid.NewString(),
			Name:    "Terminal de Buses",
			Address: "Av. Ayacucho, Cochabamba",
			Coordinates: domain.Coordinates{
				Lat: f64(-17.4058),
				Lng: f64(-66.1622),
			},
		},
	}
}

type Result struct {
	Deleted  int64 `json:"deleted"`
	Inserted int64 `json:"inserted"`
}

// LoadFixers wipes and reloads the fixer set, mirroring the legacy
// seed-loading endpoints.
func LoadFixers(ctx context.Context, repo repository.FixerRepository) (Result, error) {
	deleted, inserted, err := repo.ReplaceFixers(ctx, Fixers())
	if err != nil {
		return Result{}, err
	}
	return Result{Deleted: deleted, Inserted: inserted}, nil
}

func LoadUbicaciones(ctx context.Context, repo repository.FixerRepository) (Result, error) {
	deleted, inserted, err := repo.ReplaceUbicaciones(ctx, Ubicaciones())
	if err != nil {
		return Result{}, err
	}
	return Result{Deleted: deleted, Inserted: inserted}, nil
}
