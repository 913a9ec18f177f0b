package postgres

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
)

func TestNumericConversion(t *testing.T) {
	for _, s := range []string{"0", "1500", "333.34", "-12.5", "0.01"} {
		d := decimal.RequireFromString(s)
		if got := numericToDecimal(decimalToNumeric(d)); !got.Equal(d) {
			t.Fatalf("%s: got %s", s, got)
		}
	}

	if numericToDecimalPtr(decimalPtrToNumeric(nil)) != nil {
		t.Fatalf("expected nil original amount to stay nil")
	}
}

func TestDebtHistoryEncoding(t *testing.T) {
	date := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	history := []domain.DebtEvent{
		{ID: "ev-2", Date: date, Description: "Pay", Amount: decimal.NewFromInt(150), Kind: domain.DebtEventPayment, LinkedEntryID: "e1"},
		{ID: "ev-1", Date: date, Description: "Buy", Amount: decimal.NewFromInt(900), Kind: domain.DebtEventPurchase},
	}

	raw, err := encodeDebtHistory(history)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := decodeDebtHistory(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[0].ID != "ev-2" || got[0].LinkedEntryID != "e1" || got[1].Kind != domain.DebtEventPurchase {
		t.Fatalf("unexpected history %+v", got)
	}

	empty, err := decodeDebtHistory([]byte("[]"))
	if err != nil || empty != nil {
		t.Fatalf("expected nil history, got %v %v", empty, err)
	}
	if _, err := decodeDebtHistory([]byte("{")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestPartialPaymentsEncoding(t *testing.T) {
	raw, err := encodePartialPayments(nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(raw) != "[]" {
		t.Fatalf("expected empty array, got %s", raw)
	}

	payments := []domain.PartialPayment{{ID: "p1", Date: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.RequireFromString("20.50")}}
	raw, err = encodePartialPayments(payments)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := decodePartialPayments(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || !got[0].Amount.Equal(payments[0].Amount) {
		t.Fatalf("unexpected payments %+v", got)
	}
}
