package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/infrastructure/postgres/generated"
)

// SubscriptionRepository implements usecase.SubscriptionRepository.
type SubscriptionRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewSubscriptionRepository creates a new SubscriptionRepository.
func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// List returns every subscription, active or not.
func (r *SubscriptionRepository) List(ctx context.Context) ([]domain.Subscription, error) {
	rows, err := r.queries.ListSubscriptions(ctx)
	if err != nil {
		return nil, err
	}

	subs := make([]domain.Subscription, 0, len(rows))
	for _, row := range rows {
		subs = append(subs, rowToSubscription(row))
	}
	return subs, nil
}

// GetByID retrieves a subscription by ID.
func (r *SubscriptionRepository) GetByID(ctx context.Context, id string) (*domain.Subscription, error) {
	row, err := r.queries.GetSubscriptionByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrSubscriptionNotFound)
	}
	sub := rowToSubscription(row)
	return &sub, nil
}

// Create inserts a subscription.
func (r *SubscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	return r.queries.CreateSubscription(ctx, generated.CreateSubscriptionParams{
		ID:         sub.ID,
		Name:       sub.Name,
		Amount:     decimalToNumeric(sub.Amount),
		BillingDay: toInt32(sub.BillingDay),
		Category:   sub.Category,
		Active:     sub.Active,
	})
}

// Update overwrites a subscription.
func (r *SubscriptionRepository) Update(ctx context.Context, sub *domain.Subscription) error {
	n, err := r.queries.UpdateSubscription(ctx, generated.UpdateSubscriptionParams{
		ID:         sub.ID,
		Name:       sub.Name,
		Amount:     decimalToNumeric(sub.Amount),
		BillingDay: toInt32(sub.BillingDay),
		Category:   sub.Category,
		Active:     sub.Active,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}

func rowToSubscription(row generated.Subscription) domain.Subscription {
	return domain.Subscription{
		ID:         row.ID,
		Name:       row.Name,
		Amount:     numericToDecimal(row.Amount),
		BillingDay: int(row.BillingDay),
		Category:   row.Category,
		Active:     row.Active,
	}
}
