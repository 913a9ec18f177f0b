package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDebtAccount_PaymentRoundTrip(t *testing.T) {
	debt := DebtAccount{ID: "d1", Name: "Loja", CurrentBalance: decimal.NewFromInt(500)}

	debt.RecordPurchase(DebtEvent{ID: "ev0", Amount: decimal.NewFromInt(100)})
	if !debt.CurrentBalance.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("expected 600 after purchase, got %s", debt.CurrentBalance)
	}

	debt.RecordPayment(DebtEvent{ID: "ev1", Amount: decimal.NewFromInt(150), LinkedEntryID: "e1"})
	if !debt.CurrentBalance.Equal(decimal.NewFromInt(450)) {
		t.Fatalf("expected 450 after payment, got %s", debt.CurrentBalance)
	}
	if debt.History[0].ID != "ev1" || debt.History[0].Kind != DebtEventPayment {
		t.Fatalf("expected payment at the front of history, got %+v", debt.History[0])
	}
	if debt.PaymentFor("e1") != 0 {
		t.Fatalf("expected payment index 0, got %d", debt.PaymentFor("e1"))
	}

	if !debt.RevertPayment("e1", decimal.NewFromInt(150)) {
		t.Fatal("expected payment event to be removed")
	}
	if !debt.CurrentBalance.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("expected 600 after revert, got %s", debt.CurrentBalance)
	}
	if len(debt.History) != 1 || debt.History[0].ID != "ev0" {
		t.Fatalf("expected only the purchase to remain, got %+v", debt.History)
	}
}

func TestDebtAccount_CloneIsDeep(t *testing.T) {
	debt := DebtAccount{History: []DebtEvent{{ID: "a"}}}
	c := debt.Clone()
	c.History[0].ID = "b"
	if debt.History[0].ID != "a" {
		t.Fatal("clone shares history")
	}
}
