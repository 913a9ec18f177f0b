package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/finledger/internal/adapter/http"
	"github.com/iho/finledger/internal/adapter/http/handler"
	"github.com/iho/finledger/internal/adapter/http/middleware"
	"github.com/iho/finledger/internal/adapter/realtime"
	postgresRepo "github.com/iho/finledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/finledger/internal/adapter/repository/redis"
	"github.com/iho/finledger/internal/infrastructure/auth"
	"github.com/iho/finledger/internal/infrastructure/config"
	"github.com/iho/finledger/internal/infrastructure/eventpublisher"
	"github.com/iho/finledger/internal/infrastructure/logger"
	"github.com/iho/finledger/internal/infrastructure/metrics"
	"github.com/iho/finledger/internal/infrastructure/postgres"
	"github.com/iho/finledger/internal/infrastructure/redis"
	"github.com/iho/finledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Migrate before the pool starts serving queries
	if cfg.MigrationsPath != "" {
		if err := postgres.NewMigrator(cfg.DatabaseURL, cfg.MigrationsPath, log).Up(); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Initialize repositories
	idGen, err := postgresRepo.NewIDGenerator(cfg.IDStrategy)
	if err != nil {
		return err
	}
	repos := usecase.Repositories{
		Entries:       postgresRepo.NewEntryRepository(pool),
		Cards:         postgresRepo.NewCardRepository(pool),
		Installments:  postgresRepo.NewInstallmentRepository(pool),
		Subscriptions: postgresRepo.NewSubscriptionRepository(pool),
		Debts:         postgresRepo.NewDebtRepository(pool),
		Outbox:        postgresRepo.NewOutboxRepository(pool),
	}

	var (
		cache            usecase.Cache
		idempotencyStore usecase.IdempotencyStore
	)
	if redisClient != nil {
		cache = redisRepo.NewCache(redisClient).WithLookups(m.CacheLookups)
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
	}

	// Initialize use cases
	store := usecase.NewStore(usecase.StoreConfig{
		Repos:          repos,
		IDGen:          idGen,
		Retrier:        postgresRepo.NewRetrier(log),
		Recorder:       m,
		Cache:          cache,
		Logger:         log,
		ForecastMonths: cfg.ForecastMonths,
	})
	entryUC := usecase.NewEntryUseCase(store, repos.Entries)
	cardUC := usecase.NewCardUseCase(store, repos.Cards, repos.Installments)
	subUC := usecase.NewSubscriptionUseCase(store, repos.Subscriptions)
	debtUC := usecase.NewDebtUseCase(store, repos.Debts)
	syncUC := usecase.NewReconciliationUseCase(store)
	ledgerUC := usecase.NewLedgerUseCase(repos.Entries, cache, cfg.SummaryCacheTTL, log).WithCurrency(cfg.Currency)

	// Event stream
	hub := realtime.NewHub(log, m.WebsocketSessions)
	defer hub.Close()

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: repos.Outbox,
		Publisher:  eventpublisher.MultiPublisher{eventpublisher.NewLogPublisher(log), hub},
		Logger:     log,
		Interval:   cfg.OutboxInterval,
		Published:  m.EventsPublished,
	})
	go publisher.Start(ctx)

	// Roll the forecast window forward on start and then periodically
	go syncLoop(ctx, syncUC, cfg.SyncInterval, log)

	rateLimiter := newRateLimiter(cfg, m)
	if rateLimiter != nil {
		go cleanupLoop(ctx, rateLimiter, 10*time.Minute)
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		EntryHandler:        handler.NewEntryHandler(entryUC, nil),
		CardHandler:         handler.NewCardHandler(cardUC),
		SubscriptionHandler: handler.NewSubscriptionHandler(subUC),
		DebtHandler:         handler.NewDebtHandler(debtUC, nil),
		LedgerHandler:       handler.NewLedgerHandler(ledgerUC, syncUC, nil),
		HealthHandler:       handler.NewHealthHandler(healthChecks(pool, redisClient)),
		Logger:              log,
		IdempotencyStore:    idempotencyStore,
		IdempotencyTTL:      cfg.IdempotencyTTL,
		RateLimiter:         rateLimiter,
		TokenVerifier:       newTokenVerifier(cfg),
		Metrics:             m,
		MetricsHandler:      promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		EventStream:         hub,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}

// Syncer runs one reconciliation pass.
type Syncer interface {
	Sync(ctx context.Context) (*usecase.Result, error)
}

func syncLoop(ctx context.Context, syncer Syncer, interval time.Duration, log zerolog.Logger) {
	runSync := func() {
		res, err := syncer.Sync(ctx)
		if err != nil {
			log.Error().Err(err).Msg("scheduled sync failed")
			return
		}
		if res.Changed() {
			log.Info().
				Int("created", len(res.Changes.Created)).
				Int("updated", len(res.Changes.Updated)).
				Int("deleted", len(res.Changes.Deleted)).
				Msg("scheduled sync changed the ledger")
		}
	}

	runSync()
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runSync()
		}
	}
}

func cleanupLoop(ctx context.Context, rl *middleware.RateLimiter, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.CleanupLimiters(time.Hour)
		}
	}
}

func newRateLimiter(cfg *config.Config, m *metrics.Metrics) *middleware.RateLimiter {
	if cfg.RateLimitRPS <= 0 {
		return nil
	}
	return middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).WithHits(m.RateLimitHits)
}

func newTokenVerifier(cfg *config.Config) middleware.TokenVerifier {
	if !cfg.AuthEnabled {
		return nil
	}
	return auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
}

func healthChecks(pool *pgxpool.Pool, redisClient *goredis.Client) map[string]handler.Check {
	checks := map[string]handler.Check{}
	if pool != nil {
		checks["postgres"] = pool.Ping
	}
	if redisClient != nil {
		checks["redis"] = redis.Check(redisClient)
	}
	return checks
}
