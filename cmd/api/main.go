package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/servineo/backend/internal/geo"
	"github.com/servineo/backend/internal/handlers"
	"github.com/servineo/backend/internal/identity"
	"github.com/servineo/backend/internal/mailer"
	"github.com/servineo/backend/internal/metrics"
	"github.com/servineo/backend/internal/repository"
	"github.com/servineo/backend/pkg/config"
	"github.com/servineo/backend/pkg/database"
	"github.com/servineo/backend/pkg/events"
	"github.com/servineo/backend/pkg/logger"
	mw "github.com/servineo/backend/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()

	if err := database.RunMigrations(cfg.Database.URL); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.Error("Invalid Redis URL", "error", err)
		os.Exit(1)
	}
	if cfg.Redis.Password != "" {
		redisOpts.Password = cfg.Redis.Password
	}
	redisOpts.DB = cfg.Redis.DB
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	// Metrics
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Repositories
	userRepo := repository.NewUserRepository(pool)
	fixerRepo := repository.NewFixerRepository(pool)
	magicRepo := repository.NewMagicLinkRepository(pool)
	locationCache := repository.NewCachedLocationSource(fixerRepo, rdb, cfg.Geo.CacheTTL)
	locationCache.OnMiss = collector.RecordCacheMiss

	// Mailer
	var mailSvc mailer.Service
	switch {
	case cfg.Email.DevMode:
		mailSvc = mailer.NewDevMailer()
	case cfg.Email.MailerSendKey != "":
		mailSvc = mailer.NewMailerSend(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.SMTPFrom)
	default:
		mailSvc = mailer.NewSMTPMailer(cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.SMTPFrom, cfg.Email.SMTPUser, cfg.Email.SMTPPass)
	}

	// Services
	registrationSvc := identity.NewRegistrationService(userRepo, mailSvc, eventBus, cfg)
	authSvc := identity.NewAuthService(userRepo, eventBus, cfg)
	magicSvc := identity.NewMagicLinkService(magicRepo, userRepo, mailSvc, cfg)
	geoSvc := geo.NewService(locationCache, locationCache, cfg.Geo)

	h := handlers.New(registrationSvc, authSvc, magicSvc, geoSvc, userRepo, fixerRepo, locationCache, collector, cfg)

	rateLimiter := mw.NewRateLimiter(120)
	defer rateLimiter.Stop()

	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("api"))
	r.Use(mw.Logging)
	r.Use(mw.Health)
	r.Use(collector.Middleware)
	r.Use(rateLimiter.Handler)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Method(http.MethodGet, "/metrics", metrics.Handler(registry))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)

		r.Post("/magiclink/request", h.MagicLinkRequest)
		r.Post("/magiclink/verify", h.MagicLinkVerify)

		r.Get("/geolocation/nearby-fixers", h.NearbyFixers)
		r.Get("/geolocation/nearby-ubicaciones", h.NearbyUbicaciones)

		r.Group(func(r chi.Router) {
			r.Use(h.RequireJWT("admin"))
			r.Post("/fixers/cargar-definidos", h.LoadFixerSeed)
			r.Post("/ubicaciones/cargar-definidas", h.LoadUbicacionSeed)
			r.Get("/users", h.ListUsers)
			r.Patch("/users/{id}/rol", h.UpdateUserRole)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down API server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	logger.Info("Starting API server", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
