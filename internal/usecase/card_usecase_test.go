package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/recurrence"
)

func TestCardUseCase_PurchaseCreatesInvoices(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	card, err := h.cardUC.Create(ctx, domain.CreditCard{Name: "Nubank", ClosingDay: 10, DueDay: 15, CreditLimit: dec("5000")})
	if err != nil {
		t.Fatalf("create card: %v", err)
	}

	installments, res, err := h.cardUC.Purchase(ctx, card.ID, recurrence.PurchaseInput{
		Description:  "Notebook",
		Amount:       dec("300"),
		Installments: 3,
		Date:         time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if len(installments) != 3 {
		t.Fatalf("expected 3 installments, got %d", len(installments))
	}
	if len(res.Report.Invoices.Created) != 3 {
		t.Fatalf("expected 3 invoices, got %d", len(res.Report.Invoices.Created))
	}

	for month := 1; month <= 3; month++ {
		entries := h.month(t, month)
		if len(entries) != 1 {
			t.Fatalf("month %d: expected one invoice, got %d", month, len(entries))
		}
		inv := entries[0]
		if !inv.IsCreditCardInvoice || inv.RelatedCardID != card.ID || !inv.Amount.Equal(dec("100")) || inv.Day != 15 {
			t.Fatalf("month %d: unexpected invoice %+v", month, inv)
		}
	}

	views, err := h.cardUC.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 || !views[0].AvailableLimit.Equal(dec("4700")) {
		t.Fatalf("expected available limit 4700, got %+v", views)
	}

	stored, err := h.cardUC.Installments(ctx, card.ID)
	if err != nil || len(stored) != 3 {
		t.Fatalf("expected 3 stored installments, got %d (%v)", len(stored), err)
	}
}

func TestCardUseCase_SecondPurchaseUpdatesInvoice(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	card, _ := h.cardUC.Create(ctx, domain.CreditCard{Name: "Inter", ClosingDay: 20, DueDay: 28})
	buy := func(amount string) {
		t.Helper()
		_, _, err := h.cardUC.Purchase(ctx, card.ID, recurrence.PurchaseInput{
			Description: "Mercado", Amount: dec(amount), Installments: 1, Date: testNow,
		})
		if err != nil {
			t.Fatalf("purchase: %v", err)
		}
	}

	buy("80")
	buy("20")

	jan := h.month(t, 0)
	if len(jan) != 1 || !jan[0].Amount.Equal(dec("100")) {
		t.Fatalf("expected a single january invoice of 100, got %+v", jan)
	}
}

func TestCardUseCase_DeleteRemovesInvoices(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	card, _ := h.cardUC.Create(ctx, domain.CreditCard{Name: "Nubank", ClosingDay: 10, DueDay: 15})
	_, _, _ = h.cardUC.Purchase(ctx, card.ID, recurrence.PurchaseInput{
		Description: "TV", Amount: dec("600"), Installments: 6, Date: testNow,
	})
	if n := len(h.all(t)); n != 6 {
		t.Fatalf("expected 6 invoices, got %d", n)
	}

	res, err := h.cardUC.Delete(ctx, card.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(res.Changes.Deleted) != 6 {
		t.Fatalf("expected 6 invoices removed, got %d", len(res.Changes.Deleted))
	}
	if n := len(h.all(t)); n != 0 {
		t.Fatalf("expected empty ledger, got %d", n)
	}

	remaining, _ := h.installments.List(ctx)
	if len(remaining) != 0 {
		t.Fatalf("expected installments removed, got %d", len(remaining))
	}

	var removed bool
	for _, ev := range h.outbox.Events() {
		if ev.EventType == domain.EventTypeCardRemoved && ev.AggregateID == card.ID {
			removed = true
		}
	}
	if !removed {
		t.Fatalf("expected card.removed event")
	}
}

func TestCardUseCase_Errors(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	if _, err := h.cardUC.Create(ctx, domain.CreditCard{Name: "X", ClosingDay: 0, DueDay: 5}); !errors.Is(err, domain.ErrInvalidDay) {
		t.Fatalf("expected ErrInvalidDay, got %v", err)
	}
	if _, err := h.cardUC.Create(ctx, domain.CreditCard{Name: "X", ClosingDay: 1, DueDay: 5, Color: "blue"}); !errors.Is(err, domain.ErrInvalidColor) {
		t.Fatalf("expected ErrInvalidColor, got %v", err)
	}
	if _, _, err := h.cardUC.Purchase(ctx, "nope", recurrence.PurchaseInput{Description: "TV", Amount: dec("1"), Installments: 1}); !errors.Is(err, domain.ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
	if _, err := h.cardUC.Installments(ctx, "nope"); !errors.Is(err, domain.ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}

	card, _ := h.cardUC.Create(ctx, domain.CreditCard{Name: "Nubank", ClosingDay: 10, DueDay: 15})
	_, _, err := h.cardUC.Purchase(ctx, card.ID, recurrence.PurchaseInput{Description: "TV", Amount: dec("100"), Installments: 0, Date: testNow})
	if !errors.Is(err, domain.ErrInvalidInstallmentCount) {
		t.Fatalf("expected ErrInvalidInstallmentCount, got %v", err)
	}
}
