package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/servineo/backend/internal/domain"
)

type magicLinkRepository struct {
	pool *pgxpool.Pool
}

func NewMagicLinkRepository(pool *pgxpool.Pool) MagicLinkRepository {
	return &magicLinkRepository{pool: pool}
}

func (r *magicLinkRepository) Create(ctx context.Context, email, codeHash, magic string, expiresAt time.Time) error {
	const q = `
		INSERT INTO magic_links (correo, code_hash, magic, expires_at)
		VALUES ($1, $2, $3, $4)`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, q, email, codeHash, magic, expiresAt)
	return err
}

func (r *magicLinkRepository) CheckCode(ctx context.Context, email, code string) (bool, error) {
	const q = `
		SELECT id, code_hash, expires_at, used_at, attempts
		FROM magic_links
		WHERE correo = $1
		ORDER BY id DESC
		LIMIT 1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var (
		id       int64
		hash     string
		expires  time.Time
		used     *time.Time
		attempts int
	)

	err := r.pool.QueryRow(ctx, q, email).Scan(&id, &hash, &expires, &used, &attempts)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if used != nil || time.Now().After(expires) || attempts >= domain.MaxAccessCodeAttempts {
		return false, nil
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) != nil {
		_, _ = r.pool.Exec(ctx, `UPDATE magic_links SET attempts = attempts + 1 WHERE id = $1`, id)
		return false, nil
	}

	// Consume the code; a verified code never matches twice.
	_, _ = r.pool.Exec(ctx, `UPDATE magic_links SET used_at = now() WHERE id = $1`, id)
	return true, nil
}

func (r *magicLinkRepository) ConsumeMagic(ctx context.Context, token string) (string, bool, error) {
	const q = `
		UPDATE magic_links
		SET used_at = now()
		WHERE magic = $1
		  AND used_at IS NULL
		  AND expires_at > now()
		RETURNING correo`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var email string
	err := r.pool.QueryRow(ctx, q, token).Scan(&email)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return email, true, nil
}

func (r *magicLinkRepository) DeleteExpired(ctx context.Context) (int64, error) {
	const q = `DELETE FROM magic_links WHERE expires_at < now()`

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected(), nil
}
