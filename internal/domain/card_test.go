package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCreditCard_Validate(t *testing.T) {
	card := CreditCard{ID: "c1", Name: "Nubank", ClosingDay: 10, DueDay: 17, CreditLimit: decimal.NewFromInt(5000)}
	if err := card.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	card.DueDay = 40
	if err := card.Validate(); !errors.Is(err, ErrInvalidDay) {
		t.Fatalf("expected ErrInvalidDay, got %v", err)
	}
}

func TestCreditCard_AvailableLimit(t *testing.T) {
	card := CreditCard{ID: "c1", CreditLimit: decimal.NewFromInt(1000)}
	installments := []CardInstallment{
		{CardID: "c1", Amount: decimal.NewFromInt(100), Year: 2026, Month: 0},
		{CardID: "c1", Amount: decimal.NewFromInt(100), Year: 2026, Month: 1},
		{CardID: "c1", Amount: decimal.NewFromInt(100), Year: 2026, Month: 2},
		{CardID: "other", Amount: decimal.NewFromInt(999), Year: 2026, Month: 2},
	}

	got := card.AvailableLimit(installments, 2026, 1)
	if !got.Equal(decimal.NewFromInt(800)) {
		t.Fatalf("expected 800, got %s", got)
	}
}
