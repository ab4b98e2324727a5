package identity

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/servineo/backend/internal/domain"
	"github.com/servineo/backend/internal/mailer"
	"github.com/servineo/backend/internal/repository"
	"github.com/servineo/backend/pkg/auth"
	"github.com/servineo/backend/pkg/config"
	"github.com/servineo/backend/pkg/logger"
)

// MagicLinkService implements passwordless sign-in for existing accounts: a
// short-lived emailed code plus a one-time magic token.
type MagicLinkService interface {
	RequestAccess(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) (*domain.LoginResponse, error)
	VerifyMagic(ctx context.Context, token string) (*domain.LoginResponse, error)
}

type magicLinkService struct {
	magicRepo repository.MagicLinkRepository
	userRepo  repository.UserRepository
	mailer    mailer.Service
	config    *config.Config
}

func NewMagicLinkService(
	magicRepo repository.MagicLinkRepository,
	userRepo repository.UserRepository,
	mailer mailer.Service,
	config *config.Config,
) MagicLinkService {
	return &magicLinkService{
		magicRepo: magicRepo,
		userRepo:  userRepo,
		mailer:    mailer,
		config:    config,
	}
}

func (s *magicLinkService) RequestAccess(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return domain.ValidationError("correo is required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return domain.DependencyError("failed to find user", err)
	}
	if user == nil {
		// Do not reveal whether the account exists.
		logger.InfoContext(ctx, "Magic link requested for unknown email")
		return nil
	}

	code, err := generateAccessCode()
	if err != nil {
		return domain.DependencyError("failed to generate access code", err)
	}

	codeHash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return domain.DependencyError("failed to hash access code", err)
	}

	magicToken := uuid.NewString()
	expiresAt := time.Now().Add(s.config.Auth.MagicLinkTTL)

	if err := s.magicRepo.Create(ctx, email, string(codeHash), magicToken, expiresAt); err != nil {
		return domain.DependencyError("failed to store access code", err)
	}

	magicLink := fmt.Sprintf("%s/magiclink?token=%s", s.config.Server.PublicBaseURL, magicToken)
	if err := s.mailer.SendMagicLinkEmail(email, code, magicLink); err != nil {
		// The code was stored; the user can retry delivery.
		logger.ErrorContext(ctx, "Failed to send magic link email", "error", err)
	}

	return nil
}

func (s *magicLinkService) VerifyCode(ctx context.Context, email, code string) (*domain.LoginResponse, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || code == "" {
		return nil, domain.ErrMissingCredentials
	}

	ok, err := s.magicRepo.CheckCode(ctx, email, code)
	if err != nil {
		return nil, domain.DependencyError("failed to verify access code", err)
	}
	if !ok {
		return nil, domain.ErrMagicLinkInvalid
	}

	return s.sessionFor(ctx, email)
}

func (s *magicLinkService) VerifyMagic(ctx context.Context, token string) (*domain.LoginResponse, error) {
	if token == "" {
		return nil, domain.ErrMagicLinkInvalid
	}

	email, valid, err := s.magicRepo.ConsumeMagic(ctx, token)
	if err != nil {
		return nil, domain.DependencyError("failed to consume magic token", err)
	}
	if !valid {
		return nil, domain.ErrMagicLinkInvalid
	}

	return s.sessionFor(ctx, email)
}

func (s *magicLinkService) sessionFor(ctx context.Context, email string) (*domain.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.DependencyError("failed to find user", err)
	}
	if user == nil {
		return nil, domain.ErrIdentityNotFound
	}

	token, err := auth.NewSessionToken(user.ID, user.Email, user.Role, s.config.Auth.JWTSecret, s.config.Auth.AccessTokenTTL)
	if err != nil {
		return nil, domain.DependencyError("failed to sign session token", err)
	}

	return &domain.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.config.Auth.AccessTokenTTL.Seconds()),
		User:        user.ToUserInfo(),
	}, nil
}

func generateAccessCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
