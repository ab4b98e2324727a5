package geo

import (
	"context"

	"github.com/servineo/backend/internal/domain"
	"github.com/servineo/backend/pkg/config"
	"github.com/servineo/backend/pkg/logger"
)

// FixerSource enumerates the provider set. The full set is fetched before
// filtering; there is no server-side spatial index.
type FixerSource interface {
	ListFixers(ctx context.Context) ([]domain.Fixer, error)
}

type UbicacionSource interface {
	ListUbicaciones(ctx context.Context) ([]domain.Ubicacion, error)
}

type Service interface {
	NearbyFixers(ctx context.Context, ref domain.GeoPoint, radiusKm float64) ([]domain.Fixer, error)
	NearbyUbicaciones(ctx context.Context, ref domain.GeoPoint, radiusKm float64) ([]domain.Ubicacion, error)
}

type service struct {
	fixers      FixerSource
	ubicaciones UbicacionSource
	mode        Mode
}

func NewService(fixers FixerSource, ubicaciones UbicacionSource, cfg config.GeoConfig) Service {
	mode := ModeLegacy
	if cfg.StrictCoordinates {
		mode = ModeStrict
	}
	return &service{
		fixers:      fixers,
		ubicaciones: ubicaciones,
		mode:        mode,
	}
}

func (s *service) NearbyFixers(ctx context.Context, ref domain.GeoPoint, radiusKm float64) ([]domain.Fixer, error) {
	all, err := s.fixers.ListFixers(ctx)
	if err != nil {
		return nil, domain.DependencyError("failed to load fixers", err)
	}

	nearby, err := FindWithin(ref, all, radiusKm, s.mode)
	if err != nil {
		return nil, err
	}

	logger.DebugContext(ctx, "Proximity search completed",
		"kind", "fixers", "candidates", len(all), "matched", len(nearby), "radius_km", radiusKm)

	return nearby, nil
}

func (s *service) NearbyUbicaciones(ctx context.Context, ref domain.GeoPoint, radiusKm float64) ([]domain.Ubicacion, error) {
	all, err := s.ubicaciones.ListUbicaciones(ctx)
	if err != nil {
		return nil, domain.DependencyError("failed to load ubicaciones", err)
	}

	nearby, err := FindWithin(ref, all, radiusKm, s.mode)
	if err != nil {
		return nil, err
	}

	logger.DebugContext(ctx, "Proximity search completed",
		"kind", "ubicaciones", "candidates", len(all), "matched", len(nearby), "radius_km", radiusKm)

	return nearby, nil
}
