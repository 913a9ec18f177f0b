package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/recurrence"
	"github.com/iho/finledger/internal/usecase"
	"github.com/iho/finledger/internal/usecase/mocks"
)

var testNow = time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)

type harness struct {
	entries       *mocks.InMemoryEntryRepository
	cards         *mocks.InMemoryCardRepository
	installments  *mocks.InMemoryInstallmentRepository
	subscriptions *mocks.InMemorySubscriptionRepository
	debts         *mocks.InMemoryDebtRepository
	outbox        *mocks.InMemoryOutboxRepository
	store         *usecase.Store

	entryUC *usecase.EntryUseCase
	cardUC  *usecase.CardUseCase
	subUC   *usecase.SubscriptionUseCase
	debtUC  *usecase.DebtUseCase
	syncUC  *usecase.ReconciliationUseCase
}

func newHarness(t *testing.T, mutate ...func(*usecase.StoreConfig)) *harness {
	t.Helper()

	h := &harness{
		entries:       mocks.NewInMemoryEntryRepository(),
		cards:         mocks.NewInMemoryCardRepository(),
		installments:  mocks.NewInMemoryInstallmentRepository(),
		subscriptions: mocks.NewInMemorySubscriptionRepository(),
		debts:         mocks.NewInMemoryDebtRepository(),
		outbox:        mocks.NewInMemoryOutboxRepository(),
	}

	cfg := usecase.StoreConfig{
		Repos: usecase.Repositories{
			Entries:       h.entries,
			Cards:         h.cards,
			Installments:  h.installments,
			Subscriptions: h.subscriptions,
			Debts:         h.debts,
			Outbox:        h.outbox,
		},
		IDGen:  &recurrence.SequenceIDs{Prefix: "id-"},
		Logger: zerolog.Nop(),
		Now:    func() time.Time { return testNow },
	}
	for _, fn := range mutate {
		fn(&cfg)
	}

	h.store = usecase.NewStore(cfg)
	h.entryUC = usecase.NewEntryUseCase(h.store, h.entries)
	h.cardUC = usecase.NewCardUseCase(h.store, h.cards, h.installments)
	h.subUC = usecase.NewSubscriptionUseCase(h.store, h.subscriptions)
	h.debtUC = usecase.NewDebtUseCase(h.store, h.debts)
	h.syncUC = usecase.NewReconciliationUseCase(h.store)

	return h
}

func (h *harness) all(t *testing.T) []domain.LedgerEntry {
	t.Helper()
	entries, err := h.entries.List(context.Background())
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	return entries
}

func (h *harness) month(t *testing.T, month int) []domain.LedgerEntry {
	t.Helper()
	entries, err := h.entries.ListByMonth(context.Background(), 2026, month)
	if err != nil {
		t.Fatalf("list month: %v", err)
	}
	return entries
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func rent() domain.LedgerEntry {
	return domain.LedgerEntry{
		Description: "Aluguel",
		Day:         5,
		Month:       0,
		Year:        2026,
		Kind:        domain.EntryKindExpense,
		Category:    "Moradia",
		Amount:      dec("1500"),
	}
}

func netflix() domain.Subscription {
	return domain.Subscription{Name: "Netflix", Amount: dec("55.90"), BillingDay: 31, Category: "Lazer"}
}
