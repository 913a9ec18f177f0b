package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/infrastructure/postgres/generated"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// List returns every entry in insertion order.
func (r *EntryRepository) List(ctx context.Context) ([]domain.LedgerEntry, error) {
	rows, err := r.queries.ListEntries(ctx)
	if err != nil {
		return nil, err
	}
	return rowsToEntries(rows)
}

// ListByMonth returns the entries of one month ordered by day.
func (r *EntryRepository) ListByMonth(ctx context.Context, year, month int) ([]domain.LedgerEntry, error) {
	rows, err := r.queries.ListEntriesByMonth(ctx, generated.ListEntriesByMonthParams{
		Year:  toInt32(year),
		Month: toInt32(month),
	})
	if err != nil {
		return nil, err
	}
	return rowsToEntries(rows)
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	row, err := r.queries.GetEntryByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrEntryNotFound)
	}
	e, err := rowToEntry(row)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts an entry.
func (r *EntryRepository) Create(ctx context.Context, entry *domain.LedgerEntry) error {
	payments, err := encodePartialPayments(entry.PartialPayments)
	if err != nil {
		return err
	}

	return r.queries.CreateEntry(ctx, generated.CreateEntryParams{
		ID:                  entry.ID,
		Description:         entry.Description,
		Day:                 toInt32(entry.Day),
		Month:               toInt32(entry.Month),
		Year:                toInt32(entry.Year),
		Kind:                string(entry.Kind),
		Category:            entry.Category,
		SubCategory:         entry.SubCategory,
		Amount:              decimalToNumeric(entry.Amount),
		Completed:           entry.Completed,
		FixedSeriesID:       entry.FixedSeriesID,
		IsFixed:             entry.IsFixed,
		SubscriptionID:      entry.SubscriptionID,
		IsSubscription:      entry.IsSubscription,
		DebtID:              entry.DebtID,
		IsCreditCardInvoice: entry.IsCreditCardInvoice,
		RelatedCardID:       entry.RelatedCardID,
		InstallmentNumber:   toInt32(entry.InstallmentNumber),
		TotalInstallments:   toInt32(entry.TotalInstallments),
		OriginalAmount:      decimalPtrToNumeric(entry.OriginalAmount),
		PartialPayments:     payments,
	})
}

// Update overwrites every mutable column of an entry.
func (r *EntryRepository) Update(ctx context.Context, entry *domain.LedgerEntry) error {
	payments, err := encodePartialPayments(entry.PartialPayments)
	if err != nil {
		return err
	}

	n, err := r.queries.UpdateEntry(ctx, generated.UpdateEntryParams{
		ID:                  entry.ID,
		Description:         entry.Description,
		Day:                 toInt32(entry.Day),
		Month:               toInt32(entry.Month),
		Year:                toInt32(entry.Year),
		Kind:                string(entry.Kind),
		Category:            entry.Category,
		SubCategory:         entry.SubCategory,
		Amount:              decimalToNumeric(entry.Amount),
		Completed:           entry.Completed,
		FixedSeriesID:       entry.FixedSeriesID,
		IsFixed:             entry.IsFixed,
		SubscriptionID:      entry.SubscriptionID,
		IsSubscription:      entry.IsSubscription,
		DebtID:              entry.DebtID,
		IsCreditCardInvoice: entry.IsCreditCardInvoice,
		RelatedCardID:       entry.RelatedCardID,
		InstallmentNumber:   toInt32(entry.InstallmentNumber),
		TotalInstallments:   toInt32(entry.TotalInstallments),
		OriginalAmount:      decimalPtrToNumeric(entry.OriginalAmount),
		PartialPayments:     payments,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

// Delete removes an entry. Deleting a missing entry is not an error.
func (r *EntryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.queries.DeleteEntry(ctx, id)
	return err
}

func rowsToEntries(rows []generated.LedgerEntry) ([]domain.LedgerEntry, error) {
	entries := make([]domain.LedgerEntry, 0, len(rows))
	for _, row := range rows {
		e, err := rowToEntry(row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func rowToEntry(row generated.LedgerEntry) (domain.LedgerEntry, error) {
	payments, err := decodePartialPayments(row.PartialPayments)
	if err != nil {
		return domain.LedgerEntry{}, err
	}

	return domain.LedgerEntry{
		ID:                  row.ID,
		Description:         row.Description,
		Day:                 int(row.Day),
		Month:               int(row.Month),
		Year:                int(row.Year),
		Kind:                domain.EntryKind(row.Kind),
		Category:            row.Category,
		SubCategory:         row.SubCategory,
		Amount:              numericToDecimal(row.Amount),
		Completed:           row.Completed,
		FixedSeriesID:       row.FixedSeriesID,
		IsFixed:             row.IsFixed,
		SubscriptionID:      row.SubscriptionID,
		IsSubscription:      row.IsSubscription,
		DebtID:              row.DebtID,
		IsCreditCardInvoice: row.IsCreditCardInvoice,
		RelatedCardID:       row.RelatedCardID,
		InstallmentNumber:   int(row.InstallmentNumber),
		TotalInstallments:   int(row.TotalInstallments),
		OriginalAmount:      numericToDecimalPtr(row.OriginalAmount),
		PartialPayments:     payments,
	}, nil
}
