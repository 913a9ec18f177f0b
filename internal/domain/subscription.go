package domain

import "github.com/shopspring/decimal"

// Subscription is a recurring monthly charge. Inactive subscriptions keep
// their history but stop generating new entries.
type Subscription struct {
	ID         string
	Name       string
	Amount     decimal.Decimal
	BillingDay int
	Category   string
	Active     bool
}

// Validate validates subscription fields.
func (s *Subscription) Validate() error {
	if err := ValidateName(s.Name); err != nil {
		return err
	}
	if err := ValidateDay(s.BillingDay); err != nil {
		return err
	}
	if s.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}
