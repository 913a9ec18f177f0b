package recurrence

import (
	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}

func fixedTemplate(day, month, year int) domain.LedgerEntry {
	return domain.LedgerEntry{
		Description: "Aluguel",
		Day:         day,
		Month:       month,
		Year:        year,
		Kind:        domain.EntryKindExpense,
		Category:    "Moradia",
		Amount:      dec("1500"),
	}
}

func byMonth(ledger []domain.LedgerEntry) map[int]domain.LedgerEntry {
	out := make(map[int]domain.LedgerEntry, len(ledger))
	for _, e := range ledger {
		out[e.MonthKey()] = e
	}
	return out
}
