package recurrence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/finledger/internal/domain"
)

func TestRecompute_ReachesFixedPointInOnePass(t *testing.T) {
	ids := &SequenceIDs{Prefix: "r-"}
	state := State{
		Cards:         []domain.CreditCard{testCard()},
		Installments:  []domain.CardInstallment{inst("card-1", 1, "100"), inst("card-1", 2, "40")},
		Subscriptions: []domain.Subscription{netflix(true)},
	}

	next, report, changed := Recompute(state, jan2026, ids)
	require.True(t, changed)
	assert.Len(t, report.Invoices.Created, 2)
	assert.Len(t, report.Forecasts.Created, 12)
	assert.Len(t, next.Ledger, 14)
	assert.Empty(t, state.Ledger, "input state is not mutated")

	again, report, changed := Recompute(next, jan2026, ids)
	assert.False(t, changed)
	assert.True(t, report.Invoices.Empty())
	assert.True(t, report.Forecasts.Empty())
	assert.Equal(t, next, again)
}

func TestRecompute_EmptyStateIsStable(t *testing.T) {
	_, _, changed := Recompute(State{}, jan2026, &SequenceIDs{})
	assert.False(t, changed)
}

func TestDiff(t *testing.T) {
	a := domain.LedgerEntry{ID: "a", Amount: dec("1")}
	b := domain.LedgerEntry{ID: "b", Amount: dec("2")}
	c := domain.LedgerEntry{ID: "c", Amount: dec("3")}

	b2 := b
	b2.Amount = dec("2.00")
	assert.True(t, Diff([]domain.LedgerEntry{a, b}, []domain.LedgerEntry{a, b2}).Empty(), "equal decimals are not a change")

	b2.Amount = dec("5")
	changes := Diff([]domain.LedgerEntry{a, b}, []domain.LedgerEntry{b2, c})
	assert.Equal(t, []string{"c"}, changes.Created)
	assert.Equal(t, []string{"b"}, changes.Updated)
	assert.Equal(t, []string{"a"}, changes.Deleted)
	assert.Equal(t, 3, changes.Count())
}
