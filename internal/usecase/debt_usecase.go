package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/recurrence"
)

// DebtUseCase handles debt account business logic.
type DebtUseCase struct {
	store    *Store
	debtRepo DebtRepository
}

// NewDebtUseCase creates a new DebtUseCase.
func NewDebtUseCase(store *Store, debtRepo DebtRepository) *DebtUseCase {
	return &DebtUseCase{
		store:    store,
		debtRepo: debtRepo,
	}
}

// DebtPurchaseInput represents a purchase made on credit.
type DebtPurchaseInput struct {
	Description string
	Amount      decimal.Decimal
	Date        time.Time
}

// Create opens a debt account with an initial balance.
func (uc *DebtUseCase) Create(ctx context.Context, name string, balance decimal.Decimal) (*domain.DebtAccount, error) {
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}

	debt := domain.DebtAccount{Name: name, CurrentBalance: balance}
	_, err := uc.store.Mutate(ctx, OpCreateDebt, func(st *recurrence.State) error {
		debt.ID = uc.store.idGen.Generate()
		st.Debts = append(st.Debts, debt)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &debt, nil
}

// List returns every debt account.
func (uc *DebtUseCase) List(ctx context.Context) ([]domain.DebtAccount, error) {
	return uc.debtRepo.List(ctx)
}

// Get returns one debt account with its history.
func (uc *DebtUseCase) Get(ctx context.Context, id string) (*domain.DebtAccount, error) {
	return uc.debtRepo.GetByID(ctx, id)
}

// RecordPurchase grows the balance of a debt account.
func (uc *DebtUseCase) RecordPurchase(ctx context.Context, debtID string, input DebtPurchaseInput) (*domain.DebtAccount, error) {
	if err := domain.ValidateName(input.Description); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	var updated domain.DebtAccount
	_, err := uc.store.Mutate(ctx, OpDebtPurchase, func(st *recurrence.State) error {
		for i := range st.Debts {
			if st.Debts[i].ID != debtID {
				continue
			}
			st.Debts[i].RecordPurchase(domain.DebtEvent{
				ID:          uc.store.idGen.Generate(),
				Date:        input.Date,
				Description: input.Description,
				Amount:      input.Amount,
			})
			updated = st.Debts[i].Clone()
			return nil
		}
		return domain.ErrDebtNotFound
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func hasDebt(debts []domain.DebtAccount, id string) bool {
	for i := range debts {
		if debts[i].ID == id {
			return true
		}
	}
	return false
}
