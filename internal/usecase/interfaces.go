package usecase

import (
	"context"
	"time"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/recurrence"
)

// EntryRepository defines data access for ledger entries.
type EntryRepository interface {
	List(ctx context.Context) ([]domain.LedgerEntry, error)
	ListByMonth(ctx context.Context, year, month int) ([]domain.LedgerEntry, error)
	GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error)
	Create(ctx context.Context, entry *domain.LedgerEntry) error
	Update(ctx context.Context, entry *domain.LedgerEntry) error
	Delete(ctx context.Context, id string) error
}

// CardRepository defines data access for credit cards.
type CardRepository interface {
	List(ctx context.Context) ([]domain.CreditCard, error)
	GetByID(ctx context.Context, id string) (*domain.CreditCard, error)
	Create(ctx context.Context, card *domain.CreditCard) error
	Delete(ctx context.Context, id string) error
}

// InstallmentRepository defines data access for card installments.
type InstallmentRepository interface {
	List(ctx context.Context) ([]domain.CardInstallment, error)
	ListByCard(ctx context.Context, cardID string) ([]domain.CardInstallment, error)
	Create(ctx context.Context, installment *domain.CardInstallment) error
	Delete(ctx context.Context, id string) error
}

// SubscriptionRepository defines data access for subscriptions.
type SubscriptionRepository interface {
	List(ctx context.Context) ([]domain.Subscription, error)
	GetByID(ctx context.Context, id string) (*domain.Subscription, error)
	Create(ctx context.Context, sub *domain.Subscription) error
	Update(ctx context.Context, sub *domain.Subscription) error
}

// DebtRepository defines data access for debt accounts. Update stores the
// balance and replaces the event history.
type DebtRepository interface {
	List(ctx context.Context) ([]domain.DebtAccount, error)
	GetByID(ctx context.Context, id string) (*domain.DebtAccount, error)
	Create(ctx context.Context, debt *domain.DebtAccount) error
	Update(ctx context.Context, debt *domain.DebtAccount) error
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Repositories groups the stores a Store reads and writes.
type Repositories struct {
	Entries       EntryRepository
	Cards         CardRepository
	Installments  InstallmentRepository
	Subscriptions SubscriptionRepository
	Debts         DebtRepository
	Outbox        OutboxRepository
}

// IDGenerator generates unique IDs.
type IDGenerator = recurrence.IDGenerator

// Retrier re-runs an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Recorder receives operational measurements.
type Recorder interface {
	ObserveMutation(op string, d time.Duration, err error)
	ObserveRecompute(report recurrence.Report)
	IncPersistError(op string)
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
