package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/infrastructure/postgres/generated"
)

// DebtRepository implements usecase.DebtRepository. History is stored as a
// JSONB array, most recent event first.
type DebtRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewDebtRepository creates a new DebtRepository.
func NewDebtRepository(pool *pgxpool.Pool) *DebtRepository {
	return &DebtRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// List returns every debt account.
func (r *DebtRepository) List(ctx context.Context) ([]domain.DebtAccount, error) {
	rows, err := r.queries.ListDebtAccounts(ctx)
	if err != nil {
		return nil, err
	}

	debts := make([]domain.DebtAccount, 0, len(rows))
	for _, row := range rows {
		d, err := rowToDebt(row)
		if err != nil {
			return nil, err
		}
		debts = append(debts, d)
	}
	return debts, nil
}

// GetByID retrieves a debt account by ID.
func (r *DebtRepository) GetByID(ctx context.Context, id string) (*domain.DebtAccount, error) {
	row, err := r.queries.GetDebtAccountByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrDebtNotFound)
	}
	d, err := rowToDebt(row)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a debt account.
func (r *DebtRepository) Create(ctx context.Context, debt *domain.DebtAccount) error {
	history, err := encodeDebtHistory(debt.History)
	if err != nil {
		return err
	}

	return r.queries.CreateDebtAccount(ctx, generated.CreateDebtAccountParams{
		ID:             debt.ID,
		Name:           debt.Name,
		CurrentBalance: decimalToNumeric(debt.CurrentBalance),
		History:        history,
	})
}

// Update stores the balance and replaces the history.
func (r *DebtRepository) Update(ctx context.Context, debt *domain.DebtAccount) error {
	history, err := encodeDebtHistory(debt.History)
	if err != nil {
		return err
	}

	n, err := r.queries.UpdateDebtAccount(ctx, generated.UpdateDebtAccountParams{
		ID:             debt.ID,
		Name:           debt.Name,
		CurrentBalance: decimalToNumeric(debt.CurrentBalance),
		History:        history,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrDebtNotFound
	}
	return nil
}

func rowToDebt(row generated.DebtAccount) (domain.DebtAccount, error) {
	history, err := decodeDebtHistory(row.History)
	if err != nil {
		return domain.DebtAccount{}, err
	}

	return domain.DebtAccount{
		ID:             row.ID,
		Name:           row.Name,
		CurrentBalance: numericToDecimal(row.CurrentBalance),
		History:        history,
	}, nil
}
