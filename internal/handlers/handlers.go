package handlers

import (
	"net/http"
	"strings"

	"github.com/servineo/backend/internal/geo"
	"github.com/servineo/backend/internal/http/response"
	"github.com/servineo/backend/internal/identity"
	"github.com/servineo/backend/internal/metrics"
	"github.com/servineo/backend/internal/repository"
	"github.com/servineo/backend/pkg/auth"
	"github.com/servineo/backend/pkg/config"
)

type Handlers struct {
	registration identity.RegistrationService
	auth         identity.AuthService
	magic        identity.MagicLinkService
	geo          geo.Service
	userRepo     repository.UserRepository
	fixerRepo    repository.FixerRepository
	cache        *repository.CachedLocationSource
	collector    *metrics.Collector
	config       *config.Config
}

func New(
	registration identity.RegistrationService,
	authService identity.AuthService,
	magic identity.MagicLinkService,
	geoService geo.Service,
	userRepo repository.UserRepository,
	fixerRepo repository.FixerRepository,
	cache *repository.CachedLocationSource,
	collector *metrics.Collector,
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		registration: registration,
		auth:         authService,
		magic:        magic,
		geo:          geoService,
		userRepo:     userRepo,
		fixerRepo:    fixerRepo,
		cache:        cache,
		collector:    collector,
		config:       cfg,
	}
}

// RequireJWT rejects requests without a valid bearer token carrying one of
// the allowed roles.
func (h *Handlers) RequireJWT(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				response.WriteError(w, http.StatusUnauthorized, "missing bearer token", "UNAUTHORIZED")
				return
			}

			claims, err := auth.Parse(strings.TrimPrefix(header, "Bearer "), h.config.Auth.JWTSecret)
			if err != nil {
				response.WriteError(w, http.StatusUnauthorized, "invalid or expired token", "INVALID_TOKEN")
				return
			}

			if len(allowed) > 0 && !allowed[claims.Role] {
				response.WriteError(w, http.StatusForbidden, "insufficient role", "FORBIDDEN")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
