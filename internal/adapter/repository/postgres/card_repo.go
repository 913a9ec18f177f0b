package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/infrastructure/postgres/generated"
)

// CardRepository implements usecase.CardRepository.
type CardRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewCardRepository creates a new CardRepository.
func NewCardRepository(pool *pgxpool.Pool) *CardRepository {
	return &CardRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// List returns every card.
func (r *CardRepository) List(ctx context.Context) ([]domain.CreditCard, error) {
	rows, err := r.queries.ListCards(ctx)
	if err != nil {
		return nil, err
	}

	cards := make([]domain.CreditCard, 0, len(rows))
	for _, row := range rows {
		cards = append(cards, rowToCard(row))
	}
	return cards, nil
}

// GetByID retrieves a card by ID.
func (r *CardRepository) GetByID(ctx context.Context, id string) (*domain.CreditCard, error) {
	row, err := r.queries.GetCardByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrCardNotFound)
	}
	card := rowToCard(row)
	return &card, nil
}

// Create inserts a card.
func (r *CardRepository) Create(ctx context.Context, card *domain.CreditCard) error {
	return r.queries.CreateCard(ctx, generated.CreateCardParams{
		ID:          card.ID,
		Name:        card.Name,
		ClosingDay:  toInt32(card.ClosingDay),
		DueDay:      toInt32(card.DueDay),
		CreditLimit: decimalToNumeric(card.CreditLimit),
		Color:       card.Color,
	})
}

// Delete removes a card. Its installments go with it.
func (r *CardRepository) Delete(ctx context.Context, id string) error {
	_, err := r.queries.DeleteCard(ctx, id)
	return err
}

func rowToCard(row generated.CreditCard) domain.CreditCard {
	return domain.CreditCard{
		ID:          row.ID,
		Name:        row.Name,
		ClosingDay:  int(row.ClosingDay),
		DueDay:      int(row.DueDay),
		CreditLimit: numericToDecimal(row.CreditLimit),
		Color:       row.Color,
	}
}
