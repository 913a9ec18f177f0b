package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/recurrence"
)

// Store serializes every ledger mutation. Each mutation loads the full state,
// lets the caller change a copy, runs one recompute pass and then persists the
// difference one call at a time. A failed call stops the sequence; whatever
// was written before it stays, and the next sync repairs the ledger.
type Store struct {
	mu sync.Mutex

	repos          Repositories
	idGen          IDGenerator
	retrier        Retrier
	recorder       Recorder
	cache          Cache
	logger         zerolog.Logger
	now            func() time.Time
	forecastMonths int
}

// StoreConfig configures a Store. Only Repos and IDGen are required.
type StoreConfig struct {
	Repos          Repositories
	IDGen          IDGenerator
	Retrier        Retrier
	Recorder       Recorder
	Cache          Cache
	Logger         zerolog.Logger
	Now            func() time.Time
	ForecastMonths int
}

// NewStore creates a new Store.
func NewStore(cfg StoreConfig) *Store {
	if cfg.Retrier == nil {
		cfg.Retrier = noRetry{}
	}
	if cfg.Recorder == nil {
		cfg.Recorder = nopRecorder{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.ForecastMonths <= 0 {
		cfg.ForecastMonths = DefaultForecastMonths
	}

	return &Store{
		repos:          cfg.Repos,
		idGen:          cfg.IDGen,
		retrier:        cfg.Retrier,
		recorder:       cfg.Recorder,
		cache:          cfg.Cache,
		logger:         cfg.Logger,
		now:            cfg.Now,
		forecastMonths: cfg.ForecastMonths,
	}
}

// Result reports what a mutation changed in the ledger, recompute included.
type Result struct {
	Changes recurrence.Changes
	Report  recurrence.Report
	State   recurrence.State
}

// Changed reports whether the ledger was touched.
func (r *Result) Changed() bool {
	return r != nil && !r.Changes.Empty()
}

// Horizon returns the forecast window relative to the current time.
func (s *Store) Horizon() recurrence.Horizon {
	return recurrence.NewHorizon(s.now(), s.forecastMonths)
}

// Load reads the full application state.
func (s *Store) Load(ctx context.Context) (recurrence.State, error) {
	var (
		st  recurrence.State
		err error
	)

	if st.Ledger, err = s.repos.Entries.List(ctx); err != nil {
		return st, fmt.Errorf("load entries: %w", err)
	}
	if st.Cards, err = s.repos.Cards.List(ctx); err != nil {
		return st, fmt.Errorf("load cards: %w", err)
	}
	if st.Installments, err = s.repos.Installments.List(ctx); err != nil {
		return st, fmt.Errorf("load installments: %w", err)
	}
	if st.Subscriptions, err = s.repos.Subscriptions.List(ctx); err != nil {
		return st, fmt.Errorf("load subscriptions: %w", err)
	}
	if st.Debts, err = s.repos.Debts.List(ctx); err != nil {
		return st, fmt.Errorf("load debts: %w", err)
	}

	return st, nil
}

// Mutate applies fn to a copy of the current state, recomputes derived
// entries and persists the result. An error from fn aborts before anything is
// written.
func (s *Store) Mutate(ctx context.Context, op string, fn func(st *recurrence.State) error) (*Result, error) {
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.mutate(ctx, op, fn)
	s.recorder.ObserveMutation(op, time.Since(start), err)

	return res, err
}

func (s *Store) mutate(ctx context.Context, op string, fn func(st *recurrence.State) error) (*Result, error) {
	before, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	next := before.Clone()
	if err := fn(&next); err != nil {
		return nil, err
	}

	synced, report, _ := recurrence.Recompute(next, s.Horizon(), s.idGen)
	s.recorder.ObserveRecompute(report)

	res := &Result{
		Changes: recurrence.Diff(before.Ledger, synced.Ledger),
		Report:  report,
		State:   synced,
	}

	if err := s.commit(ctx, op, before, synced); err != nil {
		s.recorder.IncPersistError(op)
		s.logger.Error().Err(err).Str("op", op).Msg("persisting mutation failed")
		return res, err
	}

	s.invalidateSummaries(ctx, before.Ledger, synced.Ledger)
	s.publish(ctx, op, before, synced, res)

	s.logger.Info().
		Str("op", op).
		Int("created", len(res.Changes.Created)).
		Int("updated", len(res.Changes.Updated)).
		Int("deleted", len(res.Changes.Deleted)).
		Msg("ledger mutated")

	return res, nil
}

// commit writes the difference between before and after. Source records are
// written before the ledger and removed after it.
func (s *Store) commit(ctx context.Context, op string, before, after recurrence.State) error {
	p := &persister{ctx: ctx, retrier: s.retrier, op: op}

	cardsNew, _, cardsGone := diffRecords(before.Cards, after.Cards, func(c domain.CreditCard) string { return c.ID })
	instNew, _, instGone := diffRecords(before.Installments, after.Installments, func(i domain.CardInstallment) string { return i.ID })
	subsNew, subsChanged, _ := diffRecords(before.Subscriptions, after.Subscriptions, func(sub domain.Subscription) string { return sub.ID })
	debtsNew, debtsChanged, _ := diffRecords(before.Debts, after.Debts, func(d domain.DebtAccount) string { return d.ID })

	for i := range cardsNew {
		c := &cardsNew[i]
		p.do(c.ID, func() error { return s.repos.Cards.Create(ctx, c) })
	}
	for i := range instNew {
		inst := &instNew[i]
		p.do(inst.ID, func() error { return s.repos.Installments.Create(ctx, inst) })
	}
	for i := range subsNew {
		sub := &subsNew[i]
		p.do(sub.ID, func() error { return s.repos.Subscriptions.Create(ctx, sub) })
	}
	for i := range subsChanged {
		sub := &subsChanged[i]
		p.do(sub.ID, func() error { return s.repos.Subscriptions.Update(ctx, sub) })
	}
	for i := range debtsNew {
		d := &debtsNew[i]
		p.do(d.ID, func() error { return s.repos.Debts.Create(ctx, d) })
	}
	for i := range debtsChanged {
		d := &debtsChanged[i]
		p.do(d.ID, func() error { return s.repos.Debts.Update(ctx, d) })
	}

	changes := recurrence.Diff(before.Ledger, after.Ledger)
	byID := make(map[string]*domain.LedgerEntry, len(after.Ledger))
	for i := range after.Ledger {
		byID[after.Ledger[i].ID] = &after.Ledger[i]
	}
	for _, id := range changes.Created {
		e := byID[id]
		p.do(id, func() error { return s.repos.Entries.Create(ctx, e) })
	}
	for _, id := range changes.Updated {
		e := byID[id]
		p.do(id, func() error { return s.repos.Entries.Update(ctx, e) })
	}
	for _, id := range changes.Deleted {
		p.do(id, func() error { return s.repos.Entries.Delete(ctx, id) })
	}

	for _, id := range instGone {
		p.do(id, func() error { return s.repos.Installments.Delete(ctx, id) })
	}
	for _, id := range cardsGone {
		p.do(id, func() error { return s.repos.Cards.Delete(ctx, id) })
	}

	return p.err
}

// persister runs persistence calls in order and stops at the first failure.
type persister struct {
	ctx     context.Context
	retrier Retrier
	op      string
	applied int
	err     error
}

func (p *persister) do(id string, call func() error) {
	if p.err != nil {
		return
	}
	if err := p.retrier.Retry(p.ctx, call); err != nil {
		p.err = &domain.PersistError{Op: p.op, EntityID: id, Applied: p.applied, Err: err}
		return
	}
	p.applied++
}

// diffRecords compares two record lists by id.
func diffRecords[T any](before, after []T, id func(T) string) (created, updated []T, deleted []string) {
	prev := make(map[string]T, len(before))
	for _, r := range before {
		prev[id(r)] = r
	}

	seen := make(map[string]bool, len(after))
	for _, r := range after {
		seen[id(r)] = true
		old, ok := prev[id(r)]
		switch {
		case !ok:
			created = append(created, r)
		case !cmp.Equal(old, r):
			updated = append(updated, r)
		}
	}

	for _, r := range before {
		if !seen[id(r)] {
			deleted = append(deleted, id(r))
		}
	}

	return created, updated, deleted
}

// publish records outbox events for a committed mutation. Event writes are
// best effort and never fail the mutation.
func (s *Store) publish(ctx context.Context, op string, before, after recurrence.State, res *Result) {
	if s.repos.Outbox == nil {
		return
	}

	now := s.now().UTC()
	emit := func(aggregateType, aggregateID, eventType string, payload any) {
		event := &domain.OutboxEvent{
			ID:            s.idGen.Generate(),
			AggregateID:   aggregateID,
			AggregateType: aggregateType,
			EventType:     eventType,
			Payload:       domain.MarshalPayload(payload),
			CreatedAt:     now,
		}
		if err := s.retrier.Retry(ctx, func() error { return s.repos.Outbox.Create(ctx, event) }); err != nil {
			s.logger.Warn().Err(err).Str("event_type", eventType).Msg("failed to write outbox event")
		}
	}

	if !res.Changes.Empty() {
		emit(domain.AggregateTypeLedger, op, eventTypeFor(op), domain.EntryChangedEvent{
			Op:      op,
			Created: res.Changes.Created,
			Updated: res.Changes.Updated,
			Deleted: res.Changes.Deleted,
		})
	}

	if !res.Report.Invoices.Empty() || !res.Report.Forecasts.Empty() {
		emit(domain.AggregateTypeLedger, op, domain.EventTypeLedgerSynced, domain.LedgerSyncedEvent{
			InvoicesCreated:  len(res.Report.Invoices.Created),
			InvoicesUpdated:  len(res.Report.Invoices.Updated),
			InvoicesDeleted:  len(res.Report.Invoices.Deleted),
			ForecastsCreated: len(res.Report.Forecasts.Created),
		})
	}

	_, debtsChanged, _ := diffRecords(before.Debts, after.Debts, func(d domain.DebtAccount) string { return d.ID })
	for _, d := range debtsChanged {
		ev := domain.DebtBalanceChangedEvent{DebtID: d.ID, Balance: d.CurrentBalance.StringFixed(2)}
		if len(d.History) > 0 {
			ev.EntryID = d.History[0].LinkedEntryID
		}
		emit(domain.AggregateTypeDebt, d.ID, domain.EventTypeDebtBalanceChanged, ev)
	}

	_, subsChanged, _ := diffRecords(before.Subscriptions, after.Subscriptions, func(sub domain.Subscription) string { return sub.ID })
	for _, sub := range subsChanged {
		if !sub.Active {
			emit(domain.AggregateTypeSubscription, sub.ID, domain.EventTypeSubscriptionDeactivate, map[string]string{"subscription_id": sub.ID})
		}
	}

	_, _, cardsGone := diffRecords(before.Cards, after.Cards, func(c domain.CreditCard) string { return c.ID })
	for _, id := range cardsGone {
		emit(domain.AggregateTypeCard, id, domain.EventTypeCardRemoved, map[string]string{"card_id": id})
	}
}

func eventTypeFor(op string) string {
	switch op {
	case OpCreateEntry:
		return domain.EventTypeEntryCreated
	case OpDeleteEntry:
		return domain.EventTypeEntryDeleted
	case OpToggleEntry:
		return domain.EventTypeEntryToggled
	case OpSync:
		return domain.EventTypeLedgerSynced
	}
	return domain.EventTypeEntryUpdated
}

// invalidateSummaries drops cached summaries of every month whose entries
// changed.
func (s *Store) invalidateSummaries(ctx context.Context, before, after []domain.LedgerEntry) {
	if s.cache == nil {
		return
	}

	months := make(map[int]recurrence.YearMonth)
	prev := make(map[string]*domain.LedgerEntry, len(before))
	for i := range before {
		prev[before[i].ID] = &before[i]
	}
	seen := make(map[string]bool, len(after))
	for i := range after {
		e := &after[i]
		seen[e.ID] = true
		old, ok := prev[e.ID]
		if ok && cmp.Equal(*old, *e) {
			continue
		}
		months[e.MonthKey()] = recurrence.YearMonth{Year: e.Year, Month: e.Month}
		if ok {
			months[old.MonthKey()] = recurrence.YearMonth{Year: old.Year, Month: old.Month}
		}
	}
	for i := range before {
		if !seen[before[i].ID] {
			months[before[i].MonthKey()] = recurrence.YearMonth{Year: before[i].Year, Month: before[i].Month}
		}
	}

	for _, ym := range months {
		if err := s.cache.Delete(ctx, SummaryCacheKey(ym.Year, ym.Month)); err != nil {
			s.logger.Warn().Err(err).Int("year", ym.Year).Int("month", ym.Month).Msg("failed to invalidate summary cache")
		}
	}
}

type noRetry struct{}

func (noRetry) Retry(_ context.Context, operation func() error) error {
	return operation()
}

type nopRecorder struct{}

func (nopRecorder) ObserveMutation(string, time.Duration, error) {}
func (nopRecorder) ObserveRecompute(recurrence.Report)           {}
func (nopRecorder) IncPersistError(string)                       {}
