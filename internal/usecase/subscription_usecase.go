package usecase

import (
	"context"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/recurrence"
)

// SubscriptionUseCase handles subscription business logic.
type SubscriptionUseCase struct {
	store   *Store
	subRepo SubscriptionRepository
}

// NewSubscriptionUseCase creates a new SubscriptionUseCase.
func NewSubscriptionUseCase(store *Store, subRepo SubscriptionRepository) *SubscriptionUseCase {
	return &SubscriptionUseCase{
		store:   store,
		subRepo: subRepo,
	}
}

// Create registers an active subscription and forecasts its entries.
func (uc *SubscriptionUseCase) Create(ctx context.Context, sub domain.Subscription) (*domain.Subscription, *Result, error) {
	if err := sub.Validate(); err != nil {
		return nil, nil, err
	}

	sub.Active = true
	res, err := uc.store.Mutate(ctx, OpCreateSubscription, func(st *recurrence.State) error {
		sub.ID = uc.store.idGen.Generate()
		st.Subscriptions = append(st.Subscriptions, sub)
		return nil
	})
	if err != nil {
		return nil, res, err
	}

	return &sub, res, nil
}

// List returns every subscription.
func (uc *SubscriptionUseCase) List(ctx context.Context) ([]domain.Subscription, error) {
	return uc.subRepo.List(ctx)
}

// Deactivate stops future forecasts. Entries already in the ledger stay.
func (uc *SubscriptionUseCase) Deactivate(ctx context.Context, id string) (*Result, error) {
	return uc.store.Mutate(ctx, OpDeactivateSubscription, func(st *recurrence.State) error {
		for i := range st.Subscriptions {
			if st.Subscriptions[i].ID == id {
				st.Subscriptions[i].Active = false
				return nil
			}
		}
		return domain.ErrSubscriptionNotFound
	})
}
