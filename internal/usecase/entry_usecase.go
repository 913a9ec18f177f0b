package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/recurrence"
)

// EntryUseCase handles ledger entry business logic.
type EntryUseCase struct {
	store     *Store
	entryRepo EntryRepository
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(store *Store, entryRepo EntryRepository) *EntryUseCase {
	return &EntryUseCase{
		store:     store,
		entryRepo: entryRepo,
	}
}

// CreateEntryInput represents input for creating entries. Fixed expands the
// entry into a twelve month series; Installments > 1 splits its amount over
// that many months. At most one of the two may be set.
type CreateEntryInput struct {
	Entry        domain.LedgerEntry
	Fixed        bool
	Installments int
}

// Create records one entry or expands it into a series.
func (uc *EntryUseCase) Create(ctx context.Context, input CreateEntryInput) ([]domain.LedgerEntry, error) {
	template := input.Entry
	template.FixedSeriesID, template.IsFixed = "", false
	template.SubscriptionID, template.IsSubscription = "", false
	template.IsCreditCardInvoice, template.RelatedCardID = false, ""
	template.OriginalAmount, template.PartialPayments = nil, nil

	if template.DebtID != "" && (input.Fixed || input.Installments > 1) {
		return nil, domain.ErrMultipleLinkages
	}

	var created []domain.LedgerEntry
	_, err := uc.store.Mutate(ctx, OpCreateEntry, func(st *recurrence.State) error {
		if template.DebtID != "" && !hasDebt(st.Debts, template.DebtID) {
			return domain.ErrDebtNotFound
		}

		entries, err := uc.expand(template, input)
		if err != nil {
			return err
		}

		ledger := append(st.Ledger, entries...)
		if template.DebtID != "" && template.Completed {
			ledger[len(ledger)-1].Completed = false
			ledger, st.Debts, _ = recurrence.ResolveCompletionToggle(ledger, entries[0].ID, st.Debts, uc.store.now(), uc.store.idGen)
			entries[0] = ledger[len(ledger)-1]
		}

		st.Ledger = ledger
		created = entries
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (uc *EntryUseCase) expand(template domain.LedgerEntry, input CreateEntryInput) ([]domain.LedgerEntry, error) {
	switch {
	case input.Fixed && input.Installments > 1:
		return nil, domain.ErrMultipleLinkages
	case input.Fixed:
		return recurrence.ExpandFixedSeries(uc.store.idGen, template)
	case input.Installments > 1:
		return recurrence.ExpandInstallments(uc.store.idGen, template, input.Installments)
	case input.Installments < 0:
		return nil, domain.ErrInvalidInstallmentCount
	}

	if template.Kind == domain.EntryKindAppointment {
		template.Amount = decimal.Zero
	} else if err := domain.ValidateAmount(template.Amount); err != nil {
		return nil, err
	}

	template.ID = uc.store.idGen.Generate()
	if err := template.Validate(); err != nil {
		return nil, err
	}

	return []domain.LedgerEntry{template}, nil
}

// Update patches the entry and, with applyToFuture, the later members of its
// series. Amount edits on paid debt entries move the debt balance.
func (uc *EntryUseCase) Update(ctx context.Context, id string, patch recurrence.EntryPatch, applyToFuture bool) (*Result, error) {
	return uc.store.Mutate(ctx, OpUpdateEntry, func(st *recurrence.State) error {
		ledger, changes, err := recurrence.ApplyCascadeUpdate(st.Ledger, id, patch, applyToFuture)
		if err != nil {
			return err
		}

		var adjustments []recurrence.DebtAdjustment
		for _, updated := range changes.Updated {
			before := st.Ledger[recurrence.FindEntry(st.Ledger, updated)]
			after := ledger[recurrence.FindEntry(ledger, updated)]
			if adj := recurrence.ResolveAmountEdit(before, after); adj != nil {
				adjustments = append(adjustments, *adj)
			}
		}

		st.Debts, _ = recurrence.ApplyDebtAdjustments(st.Debts, adjustments)
		st.Ledger = ledger
		return nil
	})
}

// Delete removes the entry and, with applyToFuture, the later members of its
// series. Removing the future of a subscription deactivates it.
func (uc *EntryUseCase) Delete(ctx context.Context, id string, applyToFuture bool) (*Result, error) {
	return uc.store.Mutate(ctx, OpDeleteEntry, func(st *recurrence.State) error {
		ledger, _, effects, err := recurrence.ApplyCascadeDelete(st.Ledger, id, applyToFuture)
		if err != nil {
			return err
		}

		st.Debts, _ = recurrence.ApplyDebtAdjustments(st.Debts, effects.DebtAdjustments)
		for _, subID := range effects.DeactivateSubscriptions {
			for i := range st.Subscriptions {
				if st.Subscriptions[i].ID == subID {
					st.Subscriptions[i].Active = false
				}
			}
		}

		st.Ledger = ledger
		return nil
	})
}

// Toggle flips the completed flag, recording or reverting a debt payment for
// debt-linked entries.
func (uc *EntryUseCase) Toggle(ctx context.Context, id string) (*Result, recurrence.ToggleResult, error) {
	var toggle recurrence.ToggleResult
	res, err := uc.store.Mutate(ctx, OpToggleEntry, func(st *recurrence.State) error {
		st.Ledger, st.Debts, toggle = recurrence.ResolveCompletionToggle(st.Ledger, id, st.Debts, uc.store.now(), uc.store.idGen)
		return nil
	})
	return res, toggle, err
}

// RegisterPartialPayment settles part of an entry. Invoices are refused since
// their amount is recomputed from installments. A payment that settles a
// debt-linked entry goes through the completion toggle so the debt records it.
func (uc *EntryUseCase) RegisterPartialPayment(ctx context.Context, id string, amount decimal.Decimal, date time.Time) (*Result, error) {
	return uc.store.Mutate(ctx, OpPartialPayment, func(st *recurrence.State) error {
		idx := recurrence.FindEntry(st.Ledger, id)
		if idx < 0 {
			return nil
		}

		e := &st.Ledger[idx]
		if e.IsCreditCardInvoice {
			return domain.ErrDerivedEntry
		}
		if err := domain.ValidateAmount(amount); err != nil {
			return err
		}

		before := e.Clone()
		err := e.RegisterPartialPayment(domain.PartialPayment{
			ID:     uc.store.idGen.Generate(),
			Date:   date,
			Amount: amount,
		})
		if err != nil {
			return err
		}

		if !before.Completed && e.Completed {
			e.Completed = false
			st.Ledger, st.Debts, _ = recurrence.ResolveCompletionToggle(st.Ledger, id, st.Debts, uc.store.now(), uc.store.idGen)
			return nil
		}
		if adj := recurrence.ResolveAmountEdit(before, *e); adj != nil {
			st.Debts, _ = recurrence.ApplyDebtAdjustments(st.Debts, []recurrence.DebtAdjustment{*adj})
		}
		return nil
	})
}

// Get returns one entry.
func (uc *EntryUseCase) Get(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	return uc.entryRepo.GetByID(ctx, id)
}

// List returns the entries of one month.
func (uc *EntryUseCase) List(ctx context.Context, year, month int) ([]domain.LedgerEntry, error) {
	if err := domain.ValidateMonth(month); err != nil {
		return nil, err
	}
	return uc.entryRepo.ListByMonth(ctx, year, month)
}
