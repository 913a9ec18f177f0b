package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidName         = errors.New("invalid name")
	ErrInvalidDay          = errors.New("invalid day of month")
	ErrInvalidMonth        = errors.New("invalid month")
	ErrInvalidColor        = errors.New("invalid color")
	ErrAmountTooLarge      = errors.New("amount exceeds maximum allowed")
	ErrTooManyInstallments = errors.New("installment count exceeds maximum allowed")
)

// Validation constants
const (
	MaxNameLength        = 255
	MinNameLength        = 1
	MaxEntryAmount       = "1000000000" // 1 billion
	MaxInstallmentCount  = 120
	FixedSeriesLength    = 12
	ForecastWindowMonths = 12
)

var colorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateName validates a description or display name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}

	return nil
}

// ValidateDay validates a day of month (1..31).
func ValidateDay(day int) error {
	if day < 1 || day > 31 {
		return fmt.Errorf("%w: %d", ErrInvalidDay, day)
	}
	return nil
}

// ValidateMonth validates a zero-based month (0..11).
func ValidateMonth(month int) error {
	if month < 0 || month > 11 {
		return fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}
	return nil
}

// ValidateAmount validates a positive purchase or bill amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return ValidateStoredAmount(amount)
}

// ValidateStoredAmount validates an amount that may be zero. Amounts are
// stored in cents, so more than two decimal places are rejected.
func ValidateStoredAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}
	if !amount.Equal(amount.Round(2)) {
		return fmt.Errorf("%w: at most two decimal places", ErrInvalidAmount)
	}

	maxAmount := decimal.RequireFromString(MaxEntryAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxEntryAmount)
	}

	return nil
}

// ValidateInstallmentCount validates an installment count.
func ValidateInstallmentCount(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidInstallmentCount, n)
	}
	if n > MaxInstallmentCount {
		return fmt.Errorf("%w: maximum is %d", ErrTooManyInstallments, MaxInstallmentCount)
	}
	return nil
}

// ValidateColor validates a hex display color. Empty is allowed.
func ValidateColor(color string) error {
	if color == "" {
		return nil
	}
	if !colorRegex.MatchString(color) {
		return fmt.Errorf("%w: %q", ErrInvalidColor, color)
	}
	return nil
}
