package recurrence

import (
	"fmt"

	"github.com/google/go-cmp/cmp"

	"github.com/iho/finledger/internal/domain"
)

// IDGenerator mints ids for newly generated records.
type IDGenerator interface {
	Generate() string
}

// SequenceIDs is a deterministic IDGenerator producing prefix1, prefix2, ...
type SequenceIDs struct {
	Prefix string
	n      int
}

// Generate returns the next id in the sequence.
func (s *SequenceIDs) Generate() string {
	s.n++
	return fmt.Sprintf("%s%d", s.Prefix, s.n)
}

// State is the full application state the reconciliation functions read.
// The ledger is the only part they write back.
type State struct {
	Ledger        []domain.LedgerEntry
	Cards         []domain.CreditCard
	Installments  []domain.CardInstallment
	Subscriptions []domain.Subscription
	Debts         []domain.DebtAccount
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	return State{
		Ledger:        cloneLedger(s.Ledger),
		Cards:         append([]domain.CreditCard(nil), s.Cards...),
		Installments:  append([]domain.CardInstallment(nil), s.Installments...),
		Subscriptions: append([]domain.Subscription(nil), s.Subscriptions...),
		Debts:         cloneDebts(s.Debts),
	}
}

// Changes lists ledger entry ids touched by an operation.
type Changes struct {
	Created []string
	Updated []string
	Deleted []string
}

// Empty reports whether nothing changed.
func (c Changes) Empty() bool {
	return len(c.Created) == 0 && len(c.Updated) == 0 && len(c.Deleted) == 0
}

// Count returns the number of touched entries.
func (c Changes) Count() int {
	return len(c.Created) + len(c.Updated) + len(c.Deleted)
}

// Diff compares two ledgers by id.
func Diff(before, after []domain.LedgerEntry) Changes {
	var c Changes

	prev := make(map[string]*domain.LedgerEntry, len(before))
	for i := range before {
		prev[before[i].ID] = &before[i]
	}

	seen := make(map[string]bool, len(after))
	for i := range after {
		e := &after[i]
		seen[e.ID] = true
		old, ok := prev[e.ID]
		switch {
		case !ok:
			c.Created = append(c.Created, e.ID)
		case !cmp.Equal(*old, *e):
			c.Updated = append(c.Updated, e.ID)
		}
	}

	for i := range before {
		if !seen[before[i].ID] {
			c.Deleted = append(c.Deleted, before[i].ID)
		}
	}

	return c
}

// FindEntry returns the index of the entry with id, or -1.
func FindEntry(ledger []domain.LedgerEntry, id string) int {
	for i := range ledger {
		if ledger[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneLedger(ledger []domain.LedgerEntry) []domain.LedgerEntry {
	if ledger == nil {
		return nil
	}
	out := make([]domain.LedgerEntry, len(ledger))
	for i := range ledger {
		out[i] = ledger[i].Clone()
	}
	return out
}

func cloneDebts(debts []domain.DebtAccount) []domain.DebtAccount {
	if debts == nil {
		return nil
	}
	out := make([]domain.DebtAccount, len(debts))
	for i := range debts {
		out[i] = debts[i].Clone()
	}
	return out
}
