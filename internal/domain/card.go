package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditCard is a card whose purchases are billed through a monthly invoice.
// Purchases made on or after ClosingDay roll to the next month's invoice.
type CreditCard struct {
	ID          string
	Name        string
	ClosingDay  int
	DueDay      int
	CreditLimit decimal.Decimal
	Color       string
}

// Validate validates card fields.
func (c *CreditCard) Validate() error {
	if err := ValidateName(c.Name); err != nil {
		return err
	}
	if err := ValidateDay(c.ClosingDay); err != nil {
		return err
	}
	if err := ValidateDay(c.DueDay); err != nil {
		return err
	}
	if c.CreditLimit.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

// AvailableLimit returns the credit limit minus every installment of this card
// billed in or after the given month.
func (c *CreditCard) AvailableLimit(installments []CardInstallment, fromYear, fromMonth int) decimal.Decimal {
	fromKey := fromYear*12 + fromMonth
	committed := decimal.Zero
	for i := range installments {
		inst := &installments[i]
		if inst.CardID != c.ID || inst.MonthKey() < fromKey {
			continue
		}
		committed = committed.Add(inst.Amount)
	}
	return c.CreditLimit.Sub(committed)
}

// CardInstallment is one installment of a card purchase, billed on the
// invoice of Month/Year (Month is zero-based).
type CardInstallment struct {
	ID                   string
	PurchaseID           string
	CardID               string
	Description          string
	Category             string
	Amount               decimal.Decimal
	Month                int
	Year                 int
	InstallmentNumber    int
	TotalInstallments    int
	OriginalPurchaseDate time.Time
}

// MonthKey orders installments by invoice month.
func (i *CardInstallment) MonthKey() int {
	return i.Year*12 + i.Month
}
