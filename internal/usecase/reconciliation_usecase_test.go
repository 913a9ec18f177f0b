package usecase_test

import (
	"context"
	"testing"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/recurrence"
)

func TestReconciliationUseCase_CheckReportsDrift(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	card, _ := h.cardUC.Create(ctx, domain.CreditCard{Name: "Nubank", ClosingDay: 10, DueDay: 15})
	_, _, _ = h.cardUC.Purchase(ctx, card.ID, recurrence.PurchaseInput{
		Description: "TV", Amount: dec("100"), Installments: 1, Date: testNow,
	})

	report, err := h.syncUC.Check(ctx)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !report.InSync {
		t.Fatalf("expected ledger in sync, got %+v", report.Report)
	}

	// drop the invoice behind the store's back
	for _, e := range h.all(t) {
		_ = h.entries.Delete(ctx, e.ID)
	}

	report, err = h.syncUC.Check(ctx)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if report.InSync || len(report.Report.Invoices.Created) != 1 {
		t.Fatalf("expected one missing invoice, got %+v", report.Report)
	}
	if n := len(h.all(t)); n != 0 {
		t.Fatalf("check must not write, got %d entries", n)
	}

	res, err := h.syncUC.Sync(ctx)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(res.Changes.Created) != 1 || len(h.all(t)) != 1 {
		t.Fatalf("sync must restore the invoice, got %+v", res.Changes)
	}
}
