package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/recurrence"
	"github.com/iho/finledger/internal/usecase"
)

func TestEntryUseCase_CreateSingle(t *testing.T) {
	h := newHarness(t)

	created, err := h.entryUC.Create(context.Background(), usecase.CreateEntryInput{Entry: rent()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(created))
	}
	if created[0].ID == "" || created[0].FixedSeriesID != "" {
		t.Fatalf("unexpected entry: %+v", created[0])
	}

	stored, err := h.entryUC.Get(context.Background(), created[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !stored.Amount.Equal(dec("1500")) {
		t.Fatalf("expected 1500, got %s", stored.Amount)
	}

	events := h.outbox.Events()
	if len(events) != 1 || events[0].EventType != domain.EventTypeEntryCreated {
		t.Fatalf("expected one entry.created event, got %+v", events)
	}
}

func TestEntryUseCase_CreateRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input usecase.CreateEntryInput
		want  error
	}{
		{
			name:  "negative amount",
			input: usecase.CreateEntryInput{Entry: func() domain.LedgerEntry { e := rent(); e.Amount = dec("-1"); return e }()},
			want:  domain.ErrInvalidAmount,
		},
		{
			name:  "fixed and installments",
			input: usecase.CreateEntryInput{Entry: rent(), Fixed: true, Installments: 3},
			want:  domain.ErrMultipleLinkages,
		},
		{
			name:  "negative installments",
			input: usecase.CreateEntryInput{Entry: rent(), Installments: -2},
			want:  domain.ErrInvalidInstallmentCount,
		},
		{
			name:  "unknown debt",
			input: usecase.CreateEntryInput{Entry: func() domain.LedgerEntry { e := rent(); e.DebtID = "nope"; return e }()},
			want:  domain.ErrDebtNotFound,
		},
		{
			name:  "bad kind",
			input: usecase.CreateEntryInput{Entry: func() domain.LedgerEntry { e := rent(); e.Kind = "transfer"; return e }()},
			want:  domain.ErrInvalidKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)

			_, err := h.entryUC.Create(context.Background(), tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if n := len(h.all(t)); n != 0 {
				t.Fatalf("expected nothing persisted, got %d entries", n)
			}
		})
	}
}

func TestEntryUseCase_CreateInstallments(t *testing.T) {
	h := newHarness(t)

	in := rent()
	in.Description = "Geladeira"
	in.Amount = dec("1000")
	created, err := h.entryUC.Create(context.Background(), usecase.CreateEntryInput{Entry: in, Installments: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(created))
	}

	sum := dec("0")
	for _, e := range created {
		sum = sum.Add(e.Amount)
	}
	if !sum.Equal(dec("1000")) {
		t.Fatalf("installments must sum to 1000, got %s", sum)
	}
	if !created[2].Amount.Equal(dec("333.34")) {
		t.Fatalf("remainder belongs to the last installment, got %s", created[2].Amount)
	}
}

func TestEntryUseCase_CascadeUpdateFromApril(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	if _, err := h.entryUC.Create(ctx, usecase.CreateEntryInput{Entry: rent(), Fixed: true}); err != nil {
		t.Fatalf("create: %v", err)
	}
	april := h.month(t, 3)[0]

	amount := dec("1600")
	res, err := h.entryUC.Update(ctx, april.ID, recurrence.EntryPatch{Amount: &amount}, true)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(res.Changes.Updated) != 9 {
		t.Fatalf("expected 9 updated entries, got %d", len(res.Changes.Updated))
	}

	for _, e := range h.all(t) {
		want := dec("1500")
		if e.Month >= 3 {
			want = amount
		}
		if !e.Amount.Equal(want) {
			t.Fatalf("month %d: expected %s, got %s", e.Month, want, e.Amount)
		}
	}
}

func TestEntryUseCase_UpdateMissingIsNoop(t *testing.T) {
	h := newHarness(t)

	amount := dec("1")
	res, err := h.entryUC.Update(context.Background(), "missing", recurrence.EntryPatch{Amount: &amount}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Changed() {
		t.Fatalf("expected no change, got %+v", res.Changes)
	}
	if len(h.outbox.Events()) != 0 {
		t.Fatalf("no-op must not emit events")
	}
}

func TestEntryUseCase_InvoiceIsReadOnly(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	card, err := h.cardUC.Create(ctx, domain.CreditCard{Name: "Nubank", ClosingDay: 10, DueDay: 15})
	if err != nil {
		t.Fatalf("create card: %v", err)
	}
	_, _, err = h.cardUC.Purchase(ctx, card.ID, recurrence.PurchaseInput{
		Description: "TV", Amount: dec("300"), Installments: 1, Date: testNow,
	})
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}

	invoice := h.month(t, 1)[0]
	amount := dec("1")
	if _, err := h.entryUC.Update(ctx, invoice.ID, recurrence.EntryPatch{Amount: &amount}, false); !errors.Is(err, domain.ErrDerivedEntry) {
		t.Fatalf("expected ErrDerivedEntry, got %v", err)
	}
	if _, err := h.entryUC.Delete(ctx, invoice.ID, false); !errors.Is(err, domain.ErrDerivedEntry) {
		t.Fatalf("expected ErrDerivedEntry, got %v", err)
	}
	if _, err := h.entryUC.RegisterPartialPayment(ctx, invoice.ID, amount, testNow); !errors.Is(err, domain.ErrDerivedEntry) {
		t.Fatalf("expected ErrDerivedEntry, got %v", err)
	}
}

func TestEntryUseCase_DeleteSubscriptionFuture(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	sub, _, err := h.subUC.Create(ctx, netflix())
	if err != nil {
		t.Fatalf("create subscription: %v", err)
	}
	if n := len(h.all(t)); n != 12 {
		t.Fatalf("expected 12 forecast entries, got %d", n)
	}

	april := h.month(t, 3)[0]
	res, err := h.entryUC.Delete(ctx, april.ID, true)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(res.Changes.Deleted) != 9 {
		t.Fatalf("expected 9 deleted entries, got %d", len(res.Changes.Deleted))
	}

	stored, _ := h.subscriptions.GetByID(ctx, sub.ID)
	if stored.Active {
		t.Fatalf("subscription must be deactivated")
	}

	res, err = h.syncUC.Sync(ctx)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if res.Changed() {
		t.Fatalf("inactive subscription must not be forecast again, got %+v", res.Changes)
	}
	if n := len(h.all(t)); n != 3 {
		t.Fatalf("expected 3 entries left, got %d", n)
	}
}

func TestEntryUseCase_ToggleDebtPayment(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	debt, err := h.debtUC.Create(ctx, "Casas Bahia", dec("900"))
	if err != nil {
		t.Fatalf("create debt: %v", err)
	}

	in := rent()
	in.Description = "Parcela Casas Bahia"
	in.Amount = dec("150")
	in.DebtID = debt.ID
	created, err := h.entryUC.Create(ctx, usecase.CreateEntryInput{Entry: in})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}

	_, toggle, err := h.entryUC.Toggle(ctx, created[0].ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !toggle.Completed || toggle.DebtID != debt.ID {
		t.Fatalf("unexpected toggle result: %+v", toggle)
	}

	stored, _ := h.debtUC.Get(ctx, debt.ID)
	if !stored.CurrentBalance.Equal(dec("750")) {
		t.Fatalf("expected balance 750, got %s", stored.CurrentBalance)
	}
	if len(stored.History) != 1 || stored.History[0].LinkedEntryID != created[0].ID {
		t.Fatalf("expected one linked payment, got %+v", stored.History)
	}

	if _, _, err := h.entryUC.Toggle(ctx, created[0].ID); err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	stored, _ = h.debtUC.Get(ctx, debt.ID)
	if !stored.CurrentBalance.Equal(dec("900")) || len(stored.History) != 0 {
		t.Fatalf("expected balance 900 and empty history, got %s %+v", stored.CurrentBalance, stored.History)
	}
}

func TestEntryUseCase_CreateCompletedDebtEntryRecordsPayment(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	debt, _ := h.debtUC.Create(ctx, "Loja", dec("300"))

	in := rent()
	in.Amount = dec("100")
	in.DebtID = debt.ID
	in.Completed = true
	created, err := h.entryUC.Create(ctx, usecase.CreateEntryInput{Entry: in})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !created[0].Completed {
		t.Fatalf("entry must stay completed")
	}

	stored, _ := h.debtUC.Get(ctx, debt.ID)
	if !stored.CurrentBalance.Equal(dec("200")) {
		t.Fatalf("expected balance 200, got %s", stored.CurrentBalance)
	}

	if _, err := h.entryUC.Delete(ctx, created[0].ID, false); err != nil {
		t.Fatalf("delete: %v", err)
	}
	stored, _ = h.debtUC.Get(ctx, debt.ID)
	if !stored.CurrentBalance.Equal(dec("300")) || len(stored.History) != 0 {
		t.Fatalf("deleting a paid entry must revert its payment, got %s %+v", stored.CurrentBalance, stored.History)
	}
}

func TestEntryUseCase_AmountEditMovesDebtBalance(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	debt, _ := h.debtUC.Create(ctx, "Loja", dec("300"))
	in := rent()
	in.Amount = dec("100")
	in.DebtID = debt.ID
	in.Completed = true
	created, _ := h.entryUC.Create(ctx, usecase.CreateEntryInput{Entry: in})

	amount := dec("80")
	if _, err := h.entryUC.Update(ctx, created[0].ID, recurrence.EntryPatch{Amount: &amount}, false); err != nil {
		t.Fatalf("update: %v", err)
	}

	stored, _ := h.debtUC.Get(ctx, debt.ID)
	if !stored.CurrentBalance.Equal(dec("220")) {
		t.Fatalf("expected balance 220, got %s", stored.CurrentBalance)
	}
	if len(stored.History) != 1 {
		t.Fatalf("history must not change, got %+v", stored.History)
	}
}

func TestEntryUseCase_PartialPayment(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	created, _ := h.entryUC.Create(ctx, usecase.CreateEntryInput{Entry: rent()})
	id := created[0].ID
	paidAt := testNow.Add(24 * time.Hour)

	if _, err := h.entryUC.RegisterPartialPayment(ctx, id, dec("500"), paidAt); err != nil {
		t.Fatalf("partial payment: %v", err)
	}
	if _, err := h.entryUC.RegisterPartialPayment(ctx, id, dec("5000"), paidAt); !errors.Is(err, domain.ErrPartialPaymentTooLarge) {
		t.Fatalf("expected ErrPartialPaymentTooLarge, got %v", err)
	}

	stored, _ := h.entryUC.Get(ctx, id)
	if !stored.Amount.Equal(dec("1000")) || stored.OriginalAmount == nil || !stored.OriginalAmount.Equal(dec("1500")) {
		t.Fatalf("unexpected amounts: %s / %v", stored.Amount, stored.OriginalAmount)
	}

	if _, err := h.entryUC.RegisterPartialPayment(ctx, id, dec("1000"), paidAt); err != nil {
		t.Fatalf("final payment: %v", err)
	}
	stored, _ = h.entryUC.Get(ctx, id)
	if !stored.Completed || len(stored.PartialPayments) != 2 {
		t.Fatalf("expected completed entry with 2 payments, got %+v", stored)
	}
}

func TestEntryUseCase_PartialPaymentSettlesDebtEntry(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	debt, _ := h.debtUC.Create(ctx, "Casas Bahia", dec("1000"))
	in := rent()
	in.Amount = dec("150")
	in.DebtID = debt.ID
	created, err := h.entryUC.Create(ctx, usecase.CreateEntryInput{Entry: in})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	id := created[0].ID

	if _, err := h.entryUC.RegisterPartialPayment(ctx, id, dec("50"), testNow); err != nil {
		t.Fatalf("first payment: %v", err)
	}
	stored, _ := h.debtUC.Get(ctx, debt.ID)
	if !stored.CurrentBalance.Equal(dec("1000")) || len(stored.History) != 0 {
		t.Fatalf("an open entry must not touch the debt, got %s %+v", stored.CurrentBalance, stored.History)
	}

	if _, err := h.entryUC.RegisterPartialPayment(ctx, id, dec("100"), testNow); err != nil {
		t.Fatalf("settling payment: %v", err)
	}
	entry, _ := h.entryUC.Get(ctx, id)
	if !entry.Completed || !entry.Amount.IsZero() {
		t.Fatalf("expected a settled entry, got completed=%v amount=%s", entry.Completed, entry.Amount)
	}
	stored, _ = h.debtUC.Get(ctx, debt.ID)
	if !stored.CurrentBalance.Equal(dec("850")) {
		t.Fatalf("expected balance 850, got %s", stored.CurrentBalance)
	}
	if len(stored.History) != 1 || stored.History[0].Kind != domain.DebtEventPayment ||
		!stored.History[0].Amount.Equal(dec("150")) || stored.History[0].LinkedEntryID != id {
		t.Fatalf("expected one 150 payment linked to the entry, got %+v", stored.History)
	}

	if _, _, err := h.entryUC.Toggle(ctx, id); err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	stored, _ = h.debtUC.Get(ctx, debt.ID)
	if !stored.CurrentBalance.Equal(dec("1000")) || len(stored.History) != 0 {
		t.Fatalf("reopening must restore the debt, got %s %+v", stored.CurrentBalance, stored.History)
	}
}

func TestEntryUseCase_PartialPaymentOnPaidDebtEntryKeepsBalance(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	debt, _ := h.debtUC.Create(ctx, "Casas Bahia", dec("1000"))
	in := rent()
	in.Amount = dec("150")
	in.DebtID = debt.ID
	in.Completed = true
	created, err := h.entryUC.Create(ctx, usecase.CreateEntryInput{Entry: in})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	id := created[0].ID

	if _, err := h.entryUC.RegisterPartialPayment(ctx, id, dec("100"), testNow); err != nil {
		t.Fatalf("partial payment: %v", err)
	}
	stored, _ := h.debtUC.Get(ctx, debt.ID)
	if !stored.CurrentBalance.Equal(dec("850")) || len(stored.History) != 1 {
		t.Fatalf("expected balance 850 with one payment, got %s %+v", stored.CurrentBalance, stored.History)
	}

	if _, _, err := h.entryUC.Toggle(ctx, id); err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	stored, _ = h.debtUC.Get(ctx, debt.ID)
	if !stored.CurrentBalance.Equal(dec("1000")) || len(stored.History) != 0 {
		t.Fatalf("expected balance 1000 and empty history, got %s %+v", stored.CurrentBalance, stored.History)
	}
}

func TestEntryUseCase_PartialPaymentRejectsSubCentAmount(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	created, _ := h.entryUC.Create(ctx, usecase.CreateEntryInput{Entry: rent()})
	if _, err := h.entryUC.RegisterPartialPayment(ctx, created[0].ID, dec("10.005"), testNow); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestEntryUseCase_CascadeKindChange(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	if _, err := h.entryUC.Create(ctx, usecase.CreateEntryInput{Entry: rent(), Fixed: true}); err != nil {
		t.Fatalf("create: %v", err)
	}
	june := h.month(t, 5)[0]

	appointment := domain.EntryKindAppointment
	res, err := h.entryUC.Update(ctx, june.ID, recurrence.EntryPatch{Kind: &appointment}, true)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(res.Changes.Updated) != 7 {
		t.Fatalf("expected 7 updated entries, got %d", len(res.Changes.Updated))
	}
	for _, e := range h.all(t) {
		if e.Month < 5 {
			if e.Kind != domain.EntryKindExpense || !e.Amount.Equal(dec("1500")) {
				t.Fatalf("month %d must be untouched, got %s %s", e.Month, e.Kind, e.Amount)
			}
			continue
		}
		if e.Kind != domain.EntryKindAppointment || !e.Amount.IsZero() {
			t.Fatalf("month %d: expected a zero appointment, got %s %s", e.Month, e.Kind, e.Amount)
		}
	}

	// Turning an appointment back into an expense needs a positive amount.
	expense := domain.EntryKindExpense
	if _, err := h.entryUC.Update(ctx, june.ID, recurrence.EntryPatch{Kind: &expense}, true); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	amount := dec("1200")
	if _, err := h.entryUC.Update(ctx, june.ID, recurrence.EntryPatch{Kind: &expense, Amount: &amount}, true); err != nil {
		t.Fatalf("restore expense: %v", err)
	}
	for _, e := range h.month(t, 11) {
		if e.Kind != domain.EntryKindExpense || !e.Amount.Equal(amount) {
			t.Fatalf("expected a 1200 expense in December, got %s %s", e.Kind, e.Amount)
		}
	}
}

func TestEntryUseCase_ListValidatesMonth(t *testing.T) {
	h := newHarness(t)

	if _, err := h.entryUC.List(context.Background(), 2026, 12); !errors.Is(err, domain.ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}
