package domain

import (
	"errors"
	"fmt"
)

var (
	// Entry errors
	ErrEntryNotFound          = errors.New("entry not found")
	ErrDerivedEntry           = errors.New("credit card invoice entries are derived and cannot be edited")
	ErrMultipleLinkages       = errors.New("entry is linked to more than one recurring source")
	ErrPartialPaymentTooLarge = errors.New("partial payment exceeds remaining amount")
	ErrInvalidKind            = errors.New("invalid entry kind")

	// Source errors
	ErrCardNotFound         = errors.New("credit card not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrDebtNotFound         = errors.New("debt account not found")

	// Expansion errors
	ErrInvalidAmount           = errors.New("amount must be positive")
	ErrInvalidInstallmentCount = errors.New("installment count must be at least 1")
)

// PersistError reports which persistence call of a multi-step operation failed.
// Calls that ran before it are not rolled back.
type PersistError struct {
	Op       string
	EntityID string
	Applied  int
	Err      error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s %s failed after %d applied changes: %v", e.Op, e.EntityID, e.Applied, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
