package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

// InMemoryEntryRepository is an in-memory implementation of EntryRepository.
// Setting a Func field overrides the matching method.
type InMemoryEntryRepository struct {
	mu      sync.RWMutex
	entries map[string]domain.LedgerEntry
	order   []string

	CreateFunc func(ctx context.Context, entry *domain.LedgerEntry) error
	UpdateFunc func(ctx context.Context, entry *domain.LedgerEntry) error
	DeleteFunc func(ctx context.Context, id string) error
	Calls      int
}

func NewInMemoryEntryRepository(seed ...domain.LedgerEntry) *InMemoryEntryRepository {
	r := &InMemoryEntryRepository{entries: make(map[string]domain.LedgerEntry)}
	for _, e := range seed {
		r.put(e)
	}
	return r
}

func (m *InMemoryEntryRepository) put(e domain.LedgerEntry) {
	if _, ok := m.entries[e.ID]; !ok {
		m.order = append(m.order, e.ID)
	}
	m.entries[e.ID] = e.Clone()
}

func (m *InMemoryEntryRepository) List(ctx context.Context) ([]domain.LedgerEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.LedgerEntry, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.entries[id].Clone())
	}
	return out, nil
}

func (m *InMemoryEntryRepository) ListByMonth(ctx context.Context, year, month int) ([]domain.LedgerEntry, error) {
	all, _ := m.List(ctx)
	var out []domain.LedgerEntry
	for _, e := range all {
		if e.Year == year && e.Month == month {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

func (m *InMemoryEntryRepository) GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, domain.ErrEntryNotFound
	}
	e = e.Clone()
	return &e, nil
}

func (m *InMemoryEntryRepository) Create(ctx context.Context, entry *domain.LedgerEntry) error {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, entry); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(*entry)
	return nil
}

func (m *InMemoryEntryRepository) Update(ctx context.Context, entry *domain.LedgerEntry) error {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	if m.UpdateFunc != nil {
		if err := m.UpdateFunc(ctx, entry); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[entry.ID]; !ok {
		return domain.ErrEntryNotFound
	}
	m.entries[entry.ID] = entry.Clone()
	return nil
}

func (m *InMemoryEntryRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	if m.DeleteFunc != nil {
		if err := m.DeleteFunc(ctx, id); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// InMemoryCardRepository is an in-memory implementation of CardRepository.
type InMemoryCardRepository struct {
	mu    sync.RWMutex
	cards []domain.CreditCard
}

func NewInMemoryCardRepository(seed ...domain.CreditCard) *InMemoryCardRepository {
	return &InMemoryCardRepository{cards: append([]domain.CreditCard(nil), seed...)}
}

func (m *InMemoryCardRepository) List(ctx context.Context) ([]domain.CreditCard, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.CreditCard(nil), m.cards...), nil
}

func (m *InMemoryCardRepository) GetByID(ctx context.Context, id string) (*domain.CreditCard, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.cards {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, domain.ErrCardNotFound
}

func (m *InMemoryCardRepository) Create(ctx context.Context, card *domain.CreditCard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cards = append(m.cards, *card)
	return nil
}

func (m *InMemoryCardRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.cards {
		if c.ID == id {
			m.cards = append(m.cards[:i], m.cards[i+1:]...)
			return nil
		}
	}
	return nil
}

// InMemoryInstallmentRepository is an in-memory implementation of InstallmentRepository.
type InMemoryInstallmentRepository struct {
	mu           sync.RWMutex
	installments []domain.CardInstallment
}

func NewInMemoryInstallmentRepository(seed ...domain.CardInstallment) *InMemoryInstallmentRepository {
	return &InMemoryInstallmentRepository{installments: append([]domain.CardInstallment(nil), seed...)}
}

func (m *InMemoryInstallmentRepository) List(ctx context.Context) ([]domain.CardInstallment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.CardInstallment(nil), m.installments...), nil
}

func (m *InMemoryInstallmentRepository) ListByCard(ctx context.Context, cardID string) ([]domain.CardInstallment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.CardInstallment
	for _, inst := range m.installments {
		if inst.CardID == cardID {
			out = append(out, inst)
		}
	}
	return out, nil
}

func (m *InMemoryInstallmentRepository) Create(ctx context.Context, installment *domain.CardInstallment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.installments = append(m.installments, *installment)
	return nil
}

func (m *InMemoryInstallmentRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, inst := range m.installments {
		if inst.ID == id {
			m.installments = append(m.installments[:i], m.installments[i+1:]...)
			return nil
		}
	}
	return nil
}

// InMemorySubscriptionRepository is an in-memory implementation of SubscriptionRepository.
type InMemorySubscriptionRepository struct {
	mu   sync.RWMutex
	subs []domain.Subscription
}

func NewInMemorySubscriptionRepository(seed ...domain.Subscription) *InMemorySubscriptionRepository {
	return &InMemorySubscriptionRepository{subs: append([]domain.Subscription(nil), seed...)}
}

func (m *InMemorySubscriptionRepository) List(ctx context.Context) ([]domain.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Subscription(nil), m.subs...), nil
}

func (m *InMemorySubscriptionRepository) GetByID(ctx context.Context, id string) (*domain.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.subs {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, domain.ErrSubscriptionNotFound
}

func (m *InMemorySubscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, *sub)
	return nil
}

func (m *InMemorySubscriptionRepository) Update(ctx context.Context, sub *domain.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.subs {
		if m.subs[i].ID == sub.ID {
			m.subs[i] = *sub
			return nil
		}
	}
	return domain.ErrSubscriptionNotFound
}

// InMemoryDebtRepository is an in-memory implementation of DebtRepository.
type InMemoryDebtRepository struct {
	mu    sync.RWMutex
	debts []domain.DebtAccount
}

func NewInMemoryDebtRepository(seed ...domain.DebtAccount) *InMemoryDebtRepository {
	r := &InMemoryDebtRepository{}
	for _, d := range seed {
		r.debts = append(r.debts, d.Clone())
	}
	return r
}

func (m *InMemoryDebtRepository) List(ctx context.Context) ([]domain.DebtAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.DebtAccount, 0, len(m.debts))
	for _, d := range m.debts {
		out = append(out, d.Clone())
	}
	return out, nil
}

func (m *InMemoryDebtRepository) GetByID(ctx context.Context, id string) (*domain.DebtAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.debts {
		if d.ID == id {
			d = d.Clone()
			return &d, nil
		}
	}
	return nil, domain.ErrDebtNotFound
}

func (m *InMemoryDebtRepository) Create(ctx context.Context, debt *domain.DebtAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.debts = append(m.debts, debt.Clone())
	return nil
}

func (m *InMemoryDebtRepository) Update(ctx context.Context, debt *domain.DebtAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.debts {
		if m.debts[i].ID == debt.ID {
			m.debts[i] = debt.Clone()
			return nil
		}
	}
	return domain.ErrDebtNotFound
}

// InMemoryOutboxRepository is an in-memory implementation of OutboxRepository.
type InMemoryOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent
}

func NewInMemoryOutboxRepository() *InMemoryOutboxRepository {
	return &InMemoryOutboxRepository{}
}

func (m *InMemoryOutboxRepository) Create(ctx context.Context, event *domain.OutboxEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *InMemoryOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *InMemoryOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (m *InMemoryOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.events[:0]
	for _, e := range m.events {
		if !e.Published || e.PublishedAt.After(before) {
			kept = append(kept, e)
		}
	}
	m.events = kept
	return nil
}

// Events returns every recorded event.
func (m *InMemoryOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.OutboxEvent(nil), m.events...)
}

// NewRepositories wires a full set of empty in-memory repositories.
func NewRepositories() usecase.Repositories {
	return usecase.Repositories{
		Entries:       NewInMemoryEntryRepository(),
		Cards:         NewInMemoryCardRepository(),
		Installments:  NewInMemoryInstallmentRepository(),
		Subscriptions: NewInMemorySubscriptionRepository(),
		Debts:         NewInMemoryDebtRepository(),
		Outbox:        NewInMemoryOutboxRepository(),
	}
}
