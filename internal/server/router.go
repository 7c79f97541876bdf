// Package server собирает HTTP API сервера quotesync
package server

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/iudanet/quotesync/internal/server/handlers"
	"github.com/iudanet/quotesync/internal/server/middleware"
	"github.com/iudanet/quotesync/internal/server/storage"
)

const (
	healthPath     = "/api/v1/health"
	requestTimeout = 10 * time.Second
)

// RouterOption настраивает роутер
type RouterOption func(*routerConfig)

type routerConfig struct {
	validator middleware.TokenValidator
	pinger    handlers.Pinger
	limiter   *middleware.RateLimiter
	version   string
}

// WithAuth требует bearer токен для /api/v1/records
func WithAuth(validator middleware.TokenValidator) RouterOption {
	return func(cfg *routerConfig) {
		cfg.validator = validator
	}
}

// WithHealthCheck добавляет проверку хранилища в health endpoint
func WithHealthCheck(pinger handlers.Pinger) RouterOption {
	return func(cfg *routerConfig) {
		cfg.pinger = pinger
	}
}

// WithRateLimiter ограничивает частоту запросов к /api/v1/records
func WithRateLimiter(limiter *middleware.RateLimiter) RouterOption {
	return func(cfg *routerConfig) {
		cfg.limiter = limiter
	}
}

// WithVersion задает версию, которую возвращает health endpoint
func WithVersion(version string) RouterOption {
	return func(cfg *routerConfig) {
		cfg.version = version
	}
}

// NewRouter создает chi роутер со всеми маршрутами API:
//
//	GET /api/v1/health
//	GET /api/v1/records
//	PUT /api/v1/records/{id}
func NewRouter(logger *slog.Logger, records storage.RecordStorage, opts ...RouterOption) *chi.Mux {
	cfg := &routerConfig{version: "dev"}
	for _, opt := range opts {
		opt(cfg)
	}

	health := handlers.NewHealthHandler(logger, cfg.version, cfg.pinger)
	recordsHandler := handlers.NewRecordsHandler(logger, records)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger, healthPath))
	r.Use(chimw.Timeout(requestTimeout))

	r.Get(healthPath, health.Health)

	r.Route("/api/v1/records", func(r chi.Router) {
		if cfg.limiter != nil {
			r.Use(cfg.limiter.Middleware)
		}
		if cfg.validator != nil {
			r.Use(middleware.BearerAuth(logger, cfg.validator))
		}
		r.Get("/", recordsHandler.List)
		r.Put("/{id}", recordsHandler.Upsert)
	})

	return r
}
