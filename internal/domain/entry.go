package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind classifies a ledger entry.
type EntryKind string

const (
	EntryKindIncome      EntryKind = "income"
	EntryKindExpense     EntryKind = "expense"
	EntryKindAppointment EntryKind = "appointment"
)

// Valid reports whether k is a known kind.
func (k EntryKind) Valid() bool {
	switch k {
	case EntryKindIncome, EntryKindExpense, EntryKindAppointment:
		return true
	}
	return false
}

// LinkageKind names the recurring source an entry was generated from.
type LinkageKind string

const (
	LinkageNone         LinkageKind = ""
	LinkageFixedSeries  LinkageKind = "fixed_series"
	LinkageSubscription LinkageKind = "subscription"
	LinkageDebt         LinkageKind = "debt"
	LinkageCardInvoice  LinkageKind = "card_invoice"
)

// PartialPayment records a partial settlement of an entry.
type PartialPayment struct {
	ID     string
	Date   time.Time
	Amount decimal.Decimal
}

// LedgerEntry is one dated income, expense or appointment record.
// Month is zero-based (0 = January).
type LedgerEntry struct {
	ID          string
	Description string
	Day         int
	Month       int
	Year        int
	Kind        EntryKind
	Category    string
	SubCategory string
	Amount      decimal.Decimal
	Completed   bool

	FixedSeriesID       string
	IsFixed             bool
	SubscriptionID      string
	IsSubscription      bool
	DebtID              string
	IsCreditCardInvoice bool
	RelatedCardID       string

	InstallmentNumber int
	TotalInstallments int

	OriginalAmount  *decimal.Decimal
	PartialPayments []PartialPayment
}

// LinkageKind returns the single recurring source the entry is linked to.
func (e *LedgerEntry) LinkageKind() LinkageKind {
	switch {
	case e.IsCreditCardInvoice:
		return LinkageCardInvoice
	case e.SubscriptionID != "":
		return LinkageSubscription
	case e.FixedSeriesID != "":
		return LinkageFixedSeries
	case e.DebtID != "":
		return LinkageDebt
	}
	return LinkageNone
}

// MonthKey orders entries by calendar month.
func (e *LedgerEntry) MonthKey() int {
	return e.Year*12 + e.Month
}

// SettledAmount is the full value the entry stands for: what is still open
// plus every partial payment already registered against it.
func (e *LedgerEntry) SettledAmount() decimal.Decimal {
	total := e.Amount
	for _, p := range e.PartialPayments {
		total = total.Add(p.Amount)
	}
	return total
}

// Clone returns a deep copy of the entry.
func (e LedgerEntry) Clone() LedgerEntry {
	if e.OriginalAmount != nil {
		orig := *e.OriginalAmount
		e.OriginalAmount = &orig
	}
	if e.PartialPayments != nil {
		e.PartialPayments = append([]PartialPayment(nil), e.PartialPayments...)
	}
	return e
}

// Validate checks field ranges and the single-linkage invariant.
func (e *LedgerEntry) Validate() error {
	if err := ValidateName(e.Description); err != nil {
		return err
	}
	if !e.Kind.Valid() {
		return ErrInvalidKind
	}
	if err := ValidateDay(e.Day); err != nil {
		return err
	}
	if err := ValidateMonth(e.Month); err != nil {
		return err
	}
	if e.Amount.IsNegative() {
		return ErrInvalidAmount
	}

	linked := 0
	if e.FixedSeriesID != "" {
		linked++
	}
	if e.SubscriptionID != "" {
		linked++
	}
	if e.DebtID != "" {
		linked++
	}
	if e.IsCreditCardInvoice {
		linked++
	}
	if linked > 1 {
		return ErrMultipleLinkages
	}

	return nil
}

// RegisterPartialPayment settles part of the entry. The first partial payment
// remembers the original amount; the entry completes once nothing remains.
func (e *LedgerEntry) RegisterPartialPayment(p PartialPayment) error {
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if p.Amount.GreaterThan(e.Amount) {
		return ErrPartialPaymentTooLarge
	}

	if e.OriginalAmount == nil {
		orig := e.Amount
		e.OriginalAmount = &orig
	}

	e.PartialPayments = append(e.PartialPayments, p)
	e.Amount = e.Amount.Sub(p.Amount)
	if e.Amount.IsZero() {
		e.Completed = true
	}

	return nil
}
