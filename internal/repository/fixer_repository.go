package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/servineo/backend/internal/domain"
)

type fixerRepository struct {
	pool *pgxpool.Pool
}

func NewFixerRepository(pool *pgxpool.Pool) FixerRepository {
	return &fixerRepository{pool: pool}
}

func (r *fixerRepository) ListFixers(ctx context.Context) ([]domain.Fixer, error) {
	const q = `
		SELECT id, nombre, especialidad, telefono, activo, pos_lat, pos_lng, lat, lng, created_at
		FROM fixers
		ORDER BY created_at`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fixers []domain.Fixer
	for rows.Next() {
		var f domain.Fixer
		var posLat, posLng *float64
		if err := rows.Scan(
			&f.ID, &f.Name, &f.Specialty, &f.Phone, &f.Active,
			&posLat, &posLng, &f.Lat, &f.Lng, &f.CreatedAt,
		); err != nil {
			return nil, err
		}
		f.Position = positionFrom(posLat, posLng)
		fixers = append(fixers, f)
	}

	return fixers, rows.Err()
}

func (r *fixerRepository) ListUbicaciones(ctx context.Context) ([]domain.Ubicacion, error) {
	const q = `
		SELECT id, nombre, direccion, pos_lat, pos_lng, lat, lng, created_at
		FROM ubicaciones
		ORDER BY created_at`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ubicaciones []domain.Ubicacion
	for rows.Next() {
		var u domain.Ubicacion
		var posLat, posLng *float64
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Address,
			&posLat, &posLng, &u.Lat, &u.Lng, &u.CreatedAt,
		); err != nil {
			return nil, err
		}
		u.Position = positionFrom(posLat, posLng)
		ubicaciones = append(ubicaciones, u)
	}

	return ubicaciones, rows.Err()
}

func (r *fixerRepository) ReplaceFixers(ctx context.Context, fixers []domain.Fixer) (int64, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var deleted, inserted int64
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, `DELETE FROM fixers`)
		if err != nil {
			return err
		}
		deleted = result.RowsAffected()

		const q = `
			INSERT INTO fixers (id, nombre, especialidad, telefono, activo, pos_lat, pos_lng, lat, lng)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

		for _, f := range fixers {
			posLat, posLng := positionCols(f.Position)
			if _, err := tx.Exec(ctx, q,
				f.ID, f.Name, f.Specialty, f.Phone, f.Active,
				posLat, posLng, f.Lat, f.Lng,
			); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return deleted, inserted, nil
}

func (r *fixerRepository) ReplaceUbicaciones(ctx context.Context, ubicaciones []domain.Ubicacion) (int64, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var deleted, inserted int64
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, `DELETE FROM ubicaciones`)
		if err != nil {
			return err
		}
		deleted = result.RowsAffected()

		const q = `
			INSERT INTO ubicaciones (id, nombre, direccion, pos_lat, pos_lng, lat, lng)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`

		for _, u := range ubicaciones {
			posLat, posLng := positionCols(u.Position)
			if _, err := tx.Exec(ctx, q,
				u.ID, u.Name, u.Address,
				posLat, posLng, u.Lat, u.Lng,
			); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return deleted, inserted, nil
}

func positionFrom(lat, lng *float64) *domain.GeoPoint {
	if lat == nil || lng == nil {
		return nil
	}
	return &domain.GeoPoint{Lat: *lat, Lng: *lng}
}

func positionCols(p *domain.GeoPoint) (*float64, *float64) {
	if p == nil {
		return nil, nil
	}
	return &p.Lat, &p.Lng
}
