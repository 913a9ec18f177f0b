package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateName(t *testing.T) {
	t.Parallel()

	t.Run("valid name", func(t *testing.T) {
		if err := ValidateName("Aluguel"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		err := ValidateName("   ")
		if !errors.Is(err, ErrInvalidName) {
			t.Fatalf("expected ErrInvalidName, got %v", err)
		}
	})

	t.Run("name too long", func(t *testing.T) {
		tooLong := strings.Repeat("a", MaxNameLength+1)
		err := ValidateName(tooLong)
		if !errors.Is(err, ErrInvalidName) {
			t.Fatalf("expected ErrInvalidName, got %v", err)
		}
	})
}

func TestValidateDayAndMonth(t *testing.T) {
	t.Parallel()

	for _, day := range []int{1, 15, 31} {
		if err := ValidateDay(day); err != nil {
			t.Fatalf("day %d: unexpected error %v", day, err)
		}
	}
	for _, day := range []int{0, 32, -1} {
		if err := ValidateDay(day); !errors.Is(err, ErrInvalidDay) {
			t.Fatalf("day %d: expected ErrInvalidDay, got %v", day, err)
		}
	}

	if err := ValidateMonth(0); err != nil {
		t.Fatalf("expected January (0) to be valid, got %v", err)
	}
	if err := ValidateMonth(12); !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth for 12, got %v", err)
	}
}

func TestValidateAmount(t *testing.T) {
	t.Parallel()

	if err := ValidateAmount(decimal.NewFromFloat(100.25)); err != nil {
		t.Fatalf("expected valid amount, got %v", err)
	}

	if err := ValidateAmount(decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}

	huge := decimal.RequireFromString(MaxEntryAmount).Add(decimal.NewFromInt(1))
	if err := ValidateAmount(huge); !errors.Is(err, ErrAmountTooLarge) {
		t.Fatalf("expected ErrAmountTooLarge, got %v", err)
	}

	if err := ValidateAmount(decimal.RequireFromString("10.005")); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for sub-cent amount, got %v", err)
	}
	if err := ValidateAmount(decimal.RequireFromString("10.500")); err != nil {
		t.Fatalf("trailing zeros are whole cents, got %v", err)
	}
}

func TestValidateStoredAmount(t *testing.T) {
	t.Parallel()

	if err := ValidateStoredAmount(decimal.Zero); err != nil {
		t.Fatalf("expected zero to be valid, got %v", err)
	}
	if err := ValidateStoredAmount(decimal.NewFromInt(-1)); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative, got %v", err)
	}
	if err := ValidateStoredAmount(decimal.RequireFromString("0.001")); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for sub-cent amount, got %v", err)
	}
}

func TestValidateInstallmentCount(t *testing.T) {
	t.Parallel()

	if err := ValidateInstallmentCount(1); err != nil {
		t.Fatalf("expected 1 to be valid, got %v", err)
	}
	if err := ValidateInstallmentCount(0); !errors.Is(err, ErrInvalidInstallmentCount) {
		t.Fatalf("expected ErrInvalidInstallmentCount, got %v", err)
	}
	if err := ValidateInstallmentCount(MaxInstallmentCount + 1); !errors.Is(err, ErrTooManyInstallments) {
		t.Fatalf("expected ErrTooManyInstallments, got %v", err)
	}
}

func TestValidateColor(t *testing.T) {
	t.Parallel()

	for _, c := range []string{"", "#fff", "#8A05BE"} {
		if err := ValidateColor(c); err != nil {
			t.Fatalf("color %q: unexpected error %v", c, err)
		}
	}
	if err := ValidateColor("purple"); !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("expected ErrInvalidColor, got %v", err)
	}
}
