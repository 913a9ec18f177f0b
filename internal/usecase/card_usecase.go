package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/recurrence"
)

// CardUseCase handles credit card business logic.
type CardUseCase struct {
	store           *Store
	cardRepo        CardRepository
	installmentRepo InstallmentRepository
}

// NewCardUseCase creates a new CardUseCase.
func NewCardUseCase(store *Store, cardRepo CardRepository, installmentRepo InstallmentRepository) *CardUseCase {
	return &CardUseCase{
		store:           store,
		cardRepo:        cardRepo,
		installmentRepo: installmentRepo,
	}
}

// CardView is a card with the part of its limit not yet committed.
type CardView struct {
	Card           domain.CreditCard
	AvailableLimit decimal.Decimal
}

// Create registers a card.
func (uc *CardUseCase) Create(ctx context.Context, card domain.CreditCard) (*domain.CreditCard, error) {
	if err := card.Validate(); err != nil {
		return nil, err
	}
	if err := domain.ValidateColor(card.Color); err != nil {
		return nil, err
	}

	_, err := uc.store.Mutate(ctx, OpCreateCard, func(st *recurrence.State) error {
		card.ID = uc.store.idGen.Generate()
		st.Cards = append(st.Cards, card)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &card, nil
}

// List returns every card with its available limit from the current month on.
func (uc *CardUseCase) List(ctx context.Context) ([]CardView, error) {
	cards, err := uc.cardRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	installments, err := uc.installmentRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	from := recurrence.YearMonthOf(uc.store.now())
	views := make([]CardView, 0, len(cards))
	for i := range cards {
		views = append(views, CardView{
			Card:           cards[i],
			AvailableLimit: cards[i].AvailableLimit(installments, from.Year, from.Month),
		})
	}

	return views, nil
}

// Delete removes a card and its installments. Its invoice entries are
// removed by the recompute that follows.
func (uc *CardUseCase) Delete(ctx context.Context, id string) (*Result, error) {
	return uc.store.Mutate(ctx, OpDeleteCard, func(st *recurrence.State) error {
		cards := st.Cards[:0]
		for _, c := range st.Cards {
			if c.ID != id {
				cards = append(cards, c)
			}
		}
		st.Cards = cards

		installments := st.Installments[:0]
		for _, inst := range st.Installments {
			if inst.CardID != id {
				installments = append(installments, inst)
			}
		}
		st.Installments = installments

		return nil
	})
}

// Purchase splits a purchase into installments on the card's invoices.
func (uc *CardUseCase) Purchase(ctx context.Context, cardID string, input recurrence.PurchaseInput) ([]domain.CardInstallment, *Result, error) {
	var created []domain.CardInstallment
	res, err := uc.store.Mutate(ctx, OpCardPurchase, func(st *recurrence.State) error {
		idx := -1
		for i := range st.Cards {
			if st.Cards[i].ID == cardID {
				idx = i
			}
		}
		if idx < 0 {
			return domain.ErrCardNotFound
		}

		installments, err := recurrence.ExpandCardPurchase(uc.store.idGen, st.Cards[idx], input)
		if err != nil {
			return err
		}

		st.Installments = append(st.Installments, installments...)
		created = installments
		return nil
	})
	if err != nil {
		return nil, res, err
	}

	return created, res, nil
}

// Installments lists the installments billed on a card.
func (uc *CardUseCase) Installments(ctx context.Context, cardID string) ([]domain.CardInstallment, error) {
	if _, err := uc.cardRepo.GetByID(ctx, cardID); err != nil {
		return nil, err
	}
	return uc.installmentRepo.ListByCard(ctx, cardID)
}
