package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// SQLSTATE classes and codes worth another attempt: the statement failed
// because of server or connection state, not because of the data.
var (
	retryableClasses = []string{
		"08", // connection exception
		"40", // transaction rollback: serialization failure, deadlock
		"53", // insufficient resources, e.g. too many connections
	}
	retryableCodes = map[string]bool{
		"57P01": true, // admin_shutdown
		"57P02": true, // crash_shutdown
		"57P03": true, // cannot_connect_now
	}
)

// RetrierOption customises a Retrier.
type RetrierOption func(*Retrier)

// WithMaxRetries caps the number of retries after the first attempt.
func WithMaxRetries(n int) RetrierOption {
	return func(r *Retrier) { r.maxRetries = n }
}

// WithBackoff sets the initial and maximum wait between attempts.
func WithBackoff(initial, max time.Duration) RetrierOption {
	return func(r *Retrier) {
		r.initialInterval = initial
		r.maxInterval = max
	}
}

// Retrier implements usecase.Retrier with exponential backoff. Writes of a
// cascade go through it one by one, so a retry never replays a sibling.
type Retrier struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
	logger          zerolog.Logger
}

// NewRetrier creates a new PostgreSQL retrier.
func NewRetrier(logger zerolog.Logger, opts ...RetrierOption) *Retrier {
	r := &Retrier{
		maxRetries:      3,
		initialInterval: 50 * time.Millisecond,
		maxInterval:     time.Second,
		maxElapsedTime:  10 * time.Second,
		logger:          logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retry runs operation until it succeeds, fails permanently, runs out of
// retries or ctx is done.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.MaxElapsedTime = r.maxElapsedTime

	attempt := 0
	start := time.Now()

	return backoff.Retry(func() error {
		attempt++
		err := operation()
		if err == nil {
			if attempt > 1 {
				r.logger.Debug().Int("attempts", attempt).Dur("elapsed", time.Since(start)).Msg("database call recovered")
			}
			return nil
		}

		if !isRetryableError(err) || attempt > r.maxRetries {
			return backoff.Permanent(err)
		}

		r.logger.Warn().
			Err(err).
			Int("retry", attempt).
			Msg("retryable database error, retrying")

		return err
	}, backoff.WithContext(b, ctx))
}

// isRetryableError reports whether err came from a transient server or
// connection condition.
func isRetryableError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if retryableCodes[pgErr.Code] {
			return true
		}
		for _, class := range retryableClasses {
			if strings.HasPrefix(pgErr.Code, class) {
				return true
			}
		}
		return false
	}

	// Failures before the query reached the server.
	return pgconn.SafeToRetry(err)
}
