package repository

import (
	"context"
	"time"

	"github.com/servineo/backend/internal/domain"
)

// UserRepository is the identity store. FindByEmail matches the normalized
// email case-insensitively and returns (nil, nil) when no record exists.
// Create relies on the store's unique indexes; a concurrent duplicate
// insert surfaces as a unique violation detectable with IsUniqueViolation.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
	UpdateRole(ctx context.Context, id, role string) error
}

// FixerRepository is the location source for proximity search plus the seed
// loader used by the admin endpoints. ReplaceFixers mirrors the legacy
// seed-loading behavior: wipe and reinsert, reporting both counts.
type FixerRepository interface {
	ListFixers(ctx context.Context) ([]domain.Fixer, error)
	ListUbicaciones(ctx context.Context) ([]domain.Ubicacion, error)
	ReplaceFixers(ctx context.Context, fixers []domain.Fixer) (deleted, inserted int64, err error)
	ReplaceUbicaciones(ctx context.Context, ubicaciones []domain.Ubicacion) (deleted, inserted int64, err error)
}

// MagicLinkRepository stores one-time access codes and magic tokens.
// CheckCode verifies and consumes in one step: a correct code is marked used,
// a wrong code increments the attempt counter, and a code that is used,
// expired, or over the attempt cap never matches again.
type MagicLinkRepository interface {
	Create(ctx context.Context, email, codeHash, magic string, expiresAt time.Time) error
	CheckCode(ctx context.Context, email, code string) (bool, error)
	ConsumeMagic(ctx context.Context, token string) (email string, valid bool, err error)
	DeleteExpired(ctx context.Context) (int64, error)
}
