package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/infrastructure/postgres/generated"
)

// InstallmentRepository implements usecase.InstallmentRepository.
type InstallmentRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewInstallmentRepository creates a new InstallmentRepository.
func NewInstallmentRepository(pool *pgxpool.Pool) *InstallmentRepository {
	return &InstallmentRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// List returns every installment ordered by invoice month.
func (r *InstallmentRepository) List(ctx context.Context) ([]domain.CardInstallment, error) {
	rows, err := r.queries.ListInstallments(ctx)
	if err != nil {
		return nil, err
	}
	return rowsToInstallments(rows), nil
}

// ListByCard returns the installments billed on one card.
func (r *InstallmentRepository) ListByCard(ctx context.Context, cardID string) ([]domain.CardInstallment, error) {
	rows, err := r.queries.ListInstallmentsByCard(ctx, cardID)
	if err != nil {
		return nil, err
	}
	return rowsToInstallments(rows), nil
}

// Create inserts an installment.
func (r *InstallmentRepository) Create(ctx context.Context, inst *domain.CardInstallment) error {
	return r.queries.CreateInstallment(ctx, generated.CreateInstallmentParams{
		ID:                   inst.ID,
		PurchaseID:           inst.PurchaseID,
		CardID:               inst.CardID,
		Description:          inst.Description,
		Category:             inst.Category,
		Amount:               decimalToNumeric(inst.Amount),
		Month:                toInt32(inst.Month),
		Year:                 toInt32(inst.Year),
		InstallmentNumber:    toInt32(inst.InstallmentNumber),
		TotalInstallments:    toInt32(inst.TotalInstallments),
		OriginalPurchaseDate: timeToPgTimestamptz(inst.OriginalPurchaseDate),
	})
}

// Delete removes an installment.
func (r *InstallmentRepository) Delete(ctx context.Context, id string) error {
	_, err := r.queries.DeleteInstallment(ctx, id)
	return err
}

func rowsToInstallments(rows []generated.CardInstallment) []domain.CardInstallment {
	out := make([]domain.CardInstallment, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.CardInstallment{
			ID:                   row.ID,
			PurchaseID:           row.PurchaseID,
			CardID:               row.CardID,
			Description:          row.Description,
			Category:             row.Category,
			Amount:               numericToDecimal(row.Amount),
			Month:                int(row.Month),
			Year:                 int(row.Year),
			InstallmentNumber:    int(row.InstallmentNumber),
			TotalInstallments:    int(row.TotalInstallments),
			OriginalPurchaseDate: row.OriginalPurchaseDate.Time,
		})
	}
	return out
}
