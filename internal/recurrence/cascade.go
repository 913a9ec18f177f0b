package recurrence

import (
	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
)

// EntryPatch holds the non-date fields an edit may change. Month, year, id
// and linkage are never propagated so a series keeps its sequence.
type EntryPatch struct {
	Description *string
	Amount      *decimal.Decimal
	Day         *int
	Category    *string
	SubCategory *string
	Kind        *domain.EntryKind
}

// Validate rejects out-of-range patch values.
func (p EntryPatch) Validate() error {
	if p.Description != nil {
		if err := domain.ValidateName(*p.Description); err != nil {
			return err
		}
	}
	if p.Amount != nil {
		if err := domain.ValidateStoredAmount(*p.Amount); err != nil {
			return err
		}
	}
	if p.Day != nil {
		if err := domain.ValidateDay(*p.Day); err != nil {
			return err
		}
	}
	if p.Kind != nil && !p.Kind.Valid() {
		return domain.ErrInvalidKind
	}
	return nil
}

// Empty reports whether the patch changes nothing.
func (p EntryPatch) Empty() bool {
	return p.Description == nil && p.Amount == nil && p.Day == nil &&
		p.Category == nil && p.SubCategory == nil && p.Kind == nil
}

func (p EntryPatch) apply(e *domain.LedgerEntry) {
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Day != nil {
		e.Day = ClampDay(e.Year, e.Month, *p.Day)
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.SubCategory != nil {
		e.SubCategory = *p.SubCategory
	}
	if p.Kind != nil {
		e.Kind = *p.Kind
	}
	if e.Kind == domain.EntryKindAppointment {
		e.Amount = decimal.Zero
	}
}

// check validates a patched entry. A zero amount is only refused when the
// patch sets the amount or turns an appointment into income or expense, so
// fully settled entries can still be edited.
func (p EntryPatch) check(before, after *domain.LedgerEntry) error {
	if err := after.Validate(); err != nil {
		return err
	}
	if after.Kind == domain.EntryKindAppointment || after.Amount.IsPositive() {
		return nil
	}
	if p.Amount != nil || before.Kind == domain.EntryKindAppointment {
		return domain.ErrInvalidAmount
	}
	return nil
}

// DebtAdjustment restores a debt balance after a linked payment entry
// disappears or changes.
type DebtAdjustment struct {
	DebtID    string
	EntryID   string
	Delta     decimal.Decimal
	DropEvent bool
}

// SideEffects names the source-record changes a cascade implies. The caller
// applies and persists them alongside the ledger change.
type SideEffects struct {
	DebtAdjustments         []DebtAdjustment
	DeactivateSubscriptions []string
}

// Empty reports whether there is nothing to apply.
func (s SideEffects) Empty() bool {
	return len(s.DebtAdjustments) == 0 && len(s.DeactivateSubscriptions) == 0
}

// ApplyCascadeUpdate applies patch to the entry with entryID. When
// applyToFuture is set and the entry belongs to a fixed series or a
// subscription, every member in the same or a later month is patched too.
//
// An unknown id is a no-op. Invoice entries are refused with
// domain.ErrDerivedEntry. Appointments end up with a zero amount, and income
// or expense members a patch would leave without a positive amount are
// refused with domain.ErrInvalidAmount. On error the input ledger is returned
// unchanged.
func ApplyCascadeUpdate(ledger []domain.LedgerEntry, entryID string, patch EntryPatch, applyToFuture bool) ([]domain.LedgerEntry, Changes, error) {
	idx := FindEntry(ledger, entryID)
	if idx < 0 || patch.Empty() {
		return ledger, Changes{}, nil
	}
	if ledger[idx].IsCreditCardInvoice {
		return ledger, Changes{}, domain.ErrDerivedEntry
	}
	if err := patch.Validate(); err != nil {
		return ledger, Changes{}, err
	}

	target := ledger[idx]
	out := cloneLedger(ledger)

	var changes Changes
	for i := range out {
		if !inScope(&target, &out[i], applyToFuture) {
			continue
		}
		patch.apply(&out[i])
		if err := patch.check(&ledger[i], &out[i]); err != nil {
			return ledger, Changes{}, err
		}
		changes.Updated = append(changes.Updated, out[i].ID)
	}

	return out, changes, nil
}

// ApplyCascadeDelete removes the entry with entryID and, when applyToFuture
// is set, every same-or-later member of its fixed series or subscription.
// Removing the future of a subscription asks for it to be deactivated so the
// forecaster stops regenerating it. Completed debt-linked entries ask for
// their payment to be reverted.
func ApplyCascadeDelete(ledger []domain.LedgerEntry, entryID string, applyToFuture bool) ([]domain.LedgerEntry, Changes, SideEffects, error) {
	idx := FindEntry(ledger, entryID)
	if idx < 0 {
		return ledger, Changes{}, SideEffects{}, nil
	}
	if ledger[idx].IsCreditCardInvoice {
		return ledger, Changes{}, SideEffects{}, domain.ErrDerivedEntry
	}

	target := ledger[idx]

	var (
		changes Changes
		effects SideEffects
	)
	out := make([]domain.LedgerEntry, 0, len(ledger))
	for i := range ledger {
		e := &ledger[i]
		if !inScope(&target, e, applyToFuture) {
			out = append(out, e.Clone())
			continue
		}
		changes.Deleted = append(changes.Deleted, e.ID)
		if adj := ResolveDeletion(*e); adj != nil {
			effects.DebtAdjustments = append(effects.DebtAdjustments, *adj)
		}
	}

	if applyToFuture && target.LinkageKind() == domain.LinkageSubscription {
		effects.DeactivateSubscriptions = append(effects.DeactivateSubscriptions, target.SubscriptionID)
	}

	return out, changes, effects, nil
}

// inScope reports whether e is affected by an operation on target.
func inScope(target, e *domain.LedgerEntry, applyToFuture bool) bool {
	if e.ID == target.ID {
		return true
	}
	if !applyToFuture || e.IsCreditCardInvoice || e.MonthKey() < target.MonthKey() {
		return false
	}

	switch target.LinkageKind() {
	case domain.LinkageFixedSeries:
		return e.FixedSeriesID == target.FixedSeriesID
	case domain.LinkageSubscription:
		return e.SubscriptionID == target.SubscriptionID
	}
	return false
}
