package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// DaySummary is the movement of one day with the balance carried so far.
type DaySummary struct {
	Day     int             `json:"day"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// MonthSummary aggregates the entries of one month. Projected figures count
// every entry; realized figures count completed entries only.
type MonthSummary struct {
	Year            int             `json:"year"`
	Month           int             `json:"month"`
	Income          decimal.Decimal `json:"income"`
	Expense         decimal.Decimal `json:"expense"`
	RealizedIncome  decimal.Decimal `json:"realized_income"`
	RealizedExpense decimal.Decimal `json:"realized_expense"`
	Projected       decimal.Decimal `json:"projected"`
	Realized        decimal.Decimal `json:"realized"`
	Appointments    int             `json:"appointments"`
	Days            []DaySummary    `json:"days"`
	Currency        string          `json:"currency,omitempty"`
}

// BuildMonthSummary folds entries of year/month into a summary. Entries of
// other months are ignored.
func BuildMonthSummary(entries []domain.LedgerEntry, year, month int) MonthSummary {
	s := MonthSummary{Year: year, Month: month}

	days := make(map[int]*DaySummary)
	for i := range entries {
		e := &entries[i]
		if e.Year != year || e.Month != month {
			continue
		}
		if e.Kind == domain.EntryKindAppointment {
			s.Appointments++
			continue
		}

		d, ok := days[e.Day]
		if !ok {
			d = &DaySummary{Day: e.Day}
			days[e.Day] = d
		}

		switch e.Kind {
		case domain.EntryKindIncome:
			s.Income = s.Income.Add(e.Amount)
			d.Income = d.Income.Add(e.Amount)
			if e.Completed {
				s.RealizedIncome = s.RealizedIncome.Add(e.Amount)
			}
		case domain.EntryKindExpense:
			s.Expense = s.Expense.Add(e.Amount)
			d.Expense = d.Expense.Add(e.Amount)
			if e.Completed {
				s.RealizedExpense = s.RealizedExpense.Add(e.Amount)
			}
		}
	}

	s.Projected = s.Income.Sub(s.Expense)
	s.Realized = s.RealizedIncome.Sub(s.RealizedExpense)

	s.Days = make([]DaySummary, 0, len(days))
	for _, d := range days {
		s.Days = append(s.Days, *d)
	}
	sort.Slice(s.Days, func(i, j int) bool { return s.Days[i].Day < s.Days[j].Day })

	running := decimal.Zero
	for i := range s.Days {
		running = running.Add(s.Days[i].Income).Sub(s.Days[i].Expense)
		s.Days[i].Balance = running
	}

	return s
}

// SummaryCacheKey is the cache key of one month summary.
func SummaryCacheKey(year, month int) string {
	return fmt.Sprintf("summary:%04d-%02d", year, month+1)
}

// LedgerUseCase handles ledger-wide read operations.
type LedgerUseCase struct {
	entryRepo EntryRepository
	cache     Cache
	ttl       time.Duration
	currency  string
	logger    zerolog.Logger
}

// NewLedgerUseCase creates a new LedgerUseCase. cache may be nil.
func NewLedgerUseCase(entryRepo EntryRepository, cache Cache, ttl time.Duration, logger zerolog.Logger) *LedgerUseCase {
	if ttl <= 0 {
		ttl = SummaryCacheTTL
	}
	return &LedgerUseCase{
		entryRepo: entryRepo,
		cache:     cache,
		ttl:       ttl,
		logger:    logger,
	}
}

// WithCurrency tags summaries with an ISO 4217 code for display.
func (uc *LedgerUseCase) WithCurrency(code string) *LedgerUseCase {
	uc.currency = code
	return uc
}

// MonthSummary returns the summary of one month, served from cache when
// possible. Cache failures fall back to the repository.
func (uc *LedgerUseCase) MonthSummary(ctx context.Context, year, month int) (*MonthSummary, error) {
	if err := domain.ValidateMonth(month); err != nil {
		return nil, err
	}

	key := SummaryCacheKey(year, month)
	if uc.cache != nil {
		data, err := uc.cache.Get(ctx, key)
		switch {
		case err == nil:
			var cached MonthSummary
			if err := json.Unmarshal(data, &cached); err == nil {
				cached.Currency = uc.currency
				return &cached, nil
			}
		case !errors.Is(err, ErrCacheMiss):
			uc.logger.Warn().Err(err).Str("key", key).Msg("summary cache read failed")
		}
	}

	entries, err := uc.entryRepo.ListByMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}

	summary := BuildMonthSummary(entries, year, month)
	summary.Currency = uc.currency

	if uc.cache != nil {
		data, err := json.Marshal(summary)
		if err == nil {
			err = uc.cache.Set(ctx, key, data, uc.ttl)
		}
		if err != nil {
			uc.logger.Warn().Err(err).Str("key", key).Msg("summary cache write failed")
		}
	}

	return &summary, nil
}
