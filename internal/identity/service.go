package identity

import (
	"context"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"

	"github.com/servineo/backend/internal/domain"
	"github.com/servineo/backend/internal/mailer"
	"github.com/servineo/backend/internal/repository"
	"github.com/servineo/backend/pkg/auth"
	"github.com/servineo/backend/pkg/config"
	"github.com/servineo/backend/pkg/events"
	"github.com/servineo/backend/pkg/logger"
)

type RegistrationService interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.UserInfo, error)
}

type AuthService interface {
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error)
}

type registrationService struct {
	userRepo repository.UserRepository
	mailer   mailer.Service
	eventBus events.Publisher
	config   *config.Config
}

func NewRegistrationService(
	userRepo repository.UserRepository,
	mailer mailer.Service,
	eventBus events.Publisher,
	config *config.Config,
) RegistrationService {
	return &registrationService{
		userRepo: userRepo,
		mailer:   mailer,
		eventBus: eventBus,
		config:   config,
	}
}

func (s *registrationService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.UserInfo, error) {
	req.Normalize()
	if req.Secret == "" {
		req.Secret, _ = ResolveSecret(req.Raw)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.DependencyError("failed to check existing user", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicateIdentity
	}

	// The store keeps a unique index on the national id. Blank values would
	// collide there, so absent ids get a throwaway unique placeholder.
	nationalID := req.NationalID
	if nationalID == "" {
		nationalID = "auto-" + uuid.NewString()
	}

	secret := req.Secret
	if secret != "" && s.config.Auth.HashSecrets {
		hashed, err := argon2id.CreateHash(secret, argon2id.DefaultParams)
		if err != nil {
			return nil, domain.DependencyError("failed to hash secret", err)
		}
		secret = hashed
	}

	now := time.Now()
	user := &domain.User{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Surname:       req.Surname,
		Email:         req.Email,
		NationalID:    nationalID,
		Secret:        secret,
		PhotoRef:      req.PhotoRef,
		Phone:         req.Phone,
		Role:          req.Role,
		TermsAccepted: req.TermsAccepted,
		Attrs:         StripSecretAliases(req.Raw),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		// Two concurrent registrations can both pass the pre-check; the
		// unique index on the store decides the winner and the loser maps
		// to the same conflict as the pre-check.
		if repository.IsUniqueViolation(err) {
			return nil, domain.ErrDuplicateIdentity
		}
		return nil, domain.DependencyError("failed to create user", err)
	}

	if err := s.eventBus.Publish(ctx, events.UserRegistered, events.UserRegisteredEvent{
		UserID:       created.ID,
		Email:        created.Email,
		Name:         created.Name,
		Role:         created.Role,
		RegisteredAt: created.CreatedAt,
	}); err != nil {
		logger.WarnContext(ctx, "Failed to publish registration event", "error", err, "user_id", created.ID)
	}

	if err := s.mailer.SendWelcomeEmail(created.Email, created.Name); err != nil {
		logger.WarnContext(ctx, "Failed to send welcome email", "error", err, "user_id", created.ID)
	}

	return created.ToUserInfo(), nil
}

type authService struct {
	userRepo repository.UserRepository
	eventBus events.Publisher
	config   *config.Config
}

func NewAuthService(
	userRepo repository.UserRepository,
	eventBus events.Publisher,
	config *config.Config,
) AuthService {
	return &authService{
		userRepo: userRepo,
		eventBus: eventBus,
		config:   config,
	}
}

func (s *authService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	req.Normalize()
	if req.Email == "" {
		if email, ok := ResolveEmail(req.Raw); ok {
			req.Email = domain.NormalizeEmail(email)
		}
	}
	if req.Secret == "" {
		req.Secret, _ = ResolveSecret(req.Raw)
	}
	if req.Email == "" || req.Secret == "" {
		return nil, domain.ErrMissingCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.DependencyError("failed to find user", err)
	}
	if user == nil {
		return nil, domain.ErrIdentityNotFound
	}

	stored, hasSecret := ResolveStoredSecret(user)
	switch {
	case !hasSecret || stored == "":
		// Externally-provisioned accounts have no stored secret; the source
		// system lets them in on email match alone. Preserved behind a
		// config flag rather than silently hardened.
		if !s.config.Auth.AllowPasswordlessLogin {
			return nil, domain.ErrInvalidCredentials
		}
	case strings.HasPrefix(stored, "$argon2id$"):
		match, err := argon2id.ComparePasswordAndHash(req.Secret, stored)
		if err != nil {
			return nil, domain.DependencyError("failed to verify secret", err)
		}
		if !match {
			return nil, domain.ErrInvalidCredentials
		}
	default:
		if stored != req.Secret {
			return nil, domain.ErrInvalidCredentials
		}
	}

	token, err := auth.NewSessionToken(user.ID, user.Email, user.Role, s.config.Auth.JWTSecret, s.config.Auth.AccessTokenTTL)
	if err != nil {
		return nil, domain.DependencyError("failed to sign session token", err)
	}

	if err := s.eventBus.Publish(ctx, events.UserLoggedIn, events.UserLoggedInEvent{
		UserID:     user.ID,
		Email:      user.Email,
		LoggedInAt: time.Now(),
	}); err != nil {
		logger.WarnContext(ctx, "Failed to publish login event", "error", err, "user_id", user.ID)
	}

	return &domain.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.config.Auth.AccessTokenTTL.Seconds()),
		User:        user.ToUserInfo(),
	}, nil
}
