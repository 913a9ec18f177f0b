package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/iho/finledger/internal/adapter/http/handler"
	"github.com/iho/finledger/internal/adapter/http/middleware"
	"github.com/iho/finledger/internal/infrastructure/metrics"
	"github.com/iho/finledger/internal/usecase"
)

// RouterConfig holds dependencies for the router. Optional pieces are left
// out of the chain when nil.
type RouterConfig struct {
	EntryHandler        *handler.EntryHandler
	CardHandler         *handler.CardHandler
	SubscriptionHandler *handler.SubscriptionHandler
	DebtHandler         *handler.DebtHandler
	LedgerHandler       *handler.LedgerHandler
	HealthHandler       *handler.HealthHandler

	Logger           zerolog.Logger
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	TokenVerifier    middleware.TokenVerifier
	Metrics          *metrics.Metrics
	MetricsHandler   http.Handler
	EventStream      http.Handler
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	var authFailures *prometheus.CounterVec
	if cfg.Metrics != nil {
		authFailures = cfg.Metrics.AuthFailures
	}

	if cfg.EventStream != nil {
		r.Group(func(r chi.Router) {
			if cfg.TokenVerifier != nil {
				r.Use(middleware.AuthMiddleware(cfg.TokenVerifier, authFailures))
			}
			r.Method(http.MethodGet, "/ws", cfg.EventStream)
		})
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.TokenVerifier != nil {
			r.Use(middleware.AuthMiddleware(cfg.TokenVerifier, authFailures))
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Entries
		r.Route("/entries", func(r chi.Router) {
			r.Get("/", cfg.EntryHandler.List)
			r.Post("/", cfg.EntryHandler.Create)
			r.Get("/{id}", cfg.EntryHandler.Get)
			r.Patch("/{id}", cfg.EntryHandler.Update)
			r.Delete("/{id}", cfg.EntryHandler.Delete)
			r.Post("/{id}/toggle", cfg.EntryHandler.Toggle)
			r.Post("/{id}/partial-payments", cfg.EntryHandler.PartialPayment)
		})

		// Credit cards
		r.Route("/cards", func(r chi.Router) {
			r.Get("/", cfg.CardHandler.List)
			r.Post("/", cfg.CardHandler.Create)
			r.Delete("/{id}", cfg.CardHandler.Delete)
			r.Post("/{id}/purchases", cfg.CardHandler.Purchase)
			r.Get("/{id}/installments", cfg.CardHandler.Installments)
		})

		// Subscriptions
		r.Route("/subscriptions", func(r chi.Router) {
			r.Get("/", cfg.SubscriptionHandler.List)
			r.Post("/", cfg.SubscriptionHandler.Create)
			r.Post("/{id}/deactivate", cfg.SubscriptionHandler.Deactivate)
		})

		// Debt accounts
		r.Route("/debts", func(r chi.Router) {
			r.Get("/", cfg.DebtHandler.List)
			r.Post("/", cfg.DebtHandler.Create)
			r.Get("/{id}", cfg.DebtHandler.Get)
			r.Post("/{id}/purchases", cfg.DebtHandler.Purchase)
		})

		// Ledger
		r.Get("/summary", cfg.LedgerHandler.Summary)
		r.Post("/sync", cfg.LedgerHandler.Sync)
		r.Get("/sync/status", cfg.LedgerHandler.Check)
	})

	return r
}
