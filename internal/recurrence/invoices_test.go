package recurrence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/finledger/internal/domain"
)

var jan2026 = Horizon{From: YearMonth{2026, 0}, Length: 12}

func testCard() domain.CreditCard {
	return domain.CreditCard{ID: "card-1", Name: "Nubank", ClosingDay: 10, DueDay: 31}
}

func inst(cardID string, month int, amount string) domain.CardInstallment {
	return domain.CardInstallment{ID: cardID + "-" + amount, CardID: cardID, Year: 2026, Month: month, Amount: dec(amount)}
}

func invoices(ledger []domain.LedgerEntry) []domain.LedgerEntry {
	var out []domain.LedgerEntry
	for _, e := range ledger {
		if e.IsCreditCardInvoice {
			out = append(out, e)
		}
	}
	return out
}

func TestReconcileCardInvoices_CreatesOnePerMonth(t *testing.T) {
	ids := &SequenceIDs{Prefix: "inv-"}
	cards := []domain.CreditCard{testCard()}
	installments := []domain.CardInstallment{
		inst("card-1", 1, "100"),
		inst("card-1", 1, "50"),
		inst("card-1", 2, "100"),
	}
	manual := domain.LedgerEntry{ID: "m1", Description: "Mercado", Day: 3, Month: 1, Year: 2026, Kind: domain.EntryKindExpense, Amount: dec("80")}

	ledger, changes := ReconcileCardInvoices([]domain.LedgerEntry{manual}, installments, cards, jan2026, ids)

	got := invoices(ledger)
	require.Len(t, got, 2)
	assert.Len(t, changes.Created, 2)
	assert.Empty(t, changes.Updated)
	assert.Empty(t, changes.Deleted)

	feb := byMonth(got)[MonthKey(2026, 1)]
	assert.True(t, feb.Amount.Equal(dec("150")))
	assert.Equal(t, 28, feb.Day, "due day clamps to february")
	assert.Equal(t, "card-1", feb.RelatedCardID)
	assert.False(t, feb.Completed)
	assert.Equal(t, domain.EntryKindExpense, feb.Kind)
	assert.Equal(t, "Fatura Nubank", feb.Description)

	assert.Equal(t, "m1", ledger[0].ID, "existing entries keep their position")
}

func TestReconcileCardInvoices_Idempotent(t *testing.T) {
	ids := &SequenceIDs{Prefix: "inv-"}
	cards := []domain.CreditCard{testCard()}
	installments := []domain.CardInstallment{inst("card-1", 1, "100"), inst("card-1", 4, "75")}

	once, _ := ReconcileCardInvoices(nil, installments, cards, jan2026, ids)
	twice, changes := ReconcileCardInvoices(once, installments, cards, jan2026, ids)

	assert.Equal(t, once, twice)
	assert.True(t, changes.Empty())
	assert.Equal(t, "inv-3", ids.Generate(), "the second pass must not mint ids")
}

func TestReconcileCardInvoices_UpdatesAmountOnly(t *testing.T) {
	ids := &SequenceIDs{Prefix: "inv-"}
	cards := []domain.CreditCard{testCard()}

	ledger, _ := ReconcileCardInvoices(nil, []domain.CardInstallment{inst("card-1", 1, "100")}, cards, jan2026, ids)
	ledger[0].Completed = true
	ledger[0].Description = "Fatura editada"

	ledger, changes := ReconcileCardInvoices(ledger, []domain.CardInstallment{inst("card-1", 1, "100"), inst("card-1", 1, "20")}, cards, jan2026, ids)

	require.Len(t, ledger, 1)
	assert.Equal(t, []string{ledger[0].ID}, changes.Updated)
	assert.True(t, ledger[0].Amount.Equal(dec("120")))
	assert.True(t, ledger[0].Completed)
	assert.Equal(t, "Fatura editada", ledger[0].Description)
}

func TestReconcileCardInvoices_Zeroing(t *testing.T) {
	cards := []domain.CreditCard{testCard()}
	ids := &SequenceIDs{Prefix: "inv-"}
	ledger, _ := ReconcileCardInvoices(nil, []domain.CardInstallment{inst("card-1", 1, "100"), inst("card-1", 2, "100")}, cards, jan2026, ids)
	require.Len(t, ledger, 2)

	months := byMonth(ledger)
	completedID := months[MonthKey(2026, 2)].ID
	for i := range ledger {
		if ledger[i].ID == completedID {
			ledger[i].Completed = true
		}
	}

	out, changes := ReconcileCardInvoices(ledger, nil, cards, jan2026, ids)

	require.Len(t, out, 1)
	assert.Equal(t, completedID, out[0].ID, "a completed invoice survives with its last amount")
	assert.True(t, out[0].Amount.Equal(dec("100")))
	assert.Equal(t, []string{months[MonthKey(2026, 1)].ID}, changes.Deleted)
}

func TestReconcileCardInvoices_OrphansRemoved(t *testing.T) {
	orphan := domain.LedgerEntry{
		ID: "old", Description: "Fatura Antiga", Day: 5, Month: 0, Year: 2020,
		Kind: domain.EntryKindExpense, Amount: dec("10"), Completed: true,
		IsCreditCardInvoice: true, RelatedCardID: "gone",
	}

	out, changes := ReconcileCardInvoices([]domain.LedgerEntry{orphan}, []domain.CardInstallment{inst("gone", 1, "50")}, nil, jan2026, &SequenceIDs{})

	assert.Empty(t, out)
	assert.Equal(t, []string{"old"}, changes.Deleted)
}

func TestReconcileCardInvoices_OutsideHorizonUntouched(t *testing.T) {
	past := domain.LedgerEntry{
		ID: "past", Description: "Fatura", Day: 5, Month: 11, Year: 2025,
		Kind: domain.EntryKindExpense, Amount: dec("10"),
		IsCreditCardInvoice: true, RelatedCardID: "card-1",
	}

	out, changes := ReconcileCardInvoices([]domain.LedgerEntry{past}, nil, []domain.CreditCard{testCard()}, jan2026, &SequenceIDs{})

	require.Len(t, out, 1)
	assert.True(t, changes.Empty())
}

func TestReconcileCardInvoices_CollapsesDuplicates(t *testing.T) {
	dup := func(id string) domain.LedgerEntry {
		return domain.LedgerEntry{
			ID: id, Description: "Fatura", Day: 5, Month: 1, Year: 2026,
			Kind: domain.EntryKindExpense, Amount: dec("100"),
			IsCreditCardInvoice: true, RelatedCardID: "card-1",
		}
	}

	out, changes := ReconcileCardInvoices(
		[]domain.LedgerEntry{dup("a"), dup("b")},
		[]domain.CardInstallment{inst("card-1", 1, "100")},
		[]domain.CreditCard{testCard()}, jan2026, &SequenceIDs{},
	)

	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, []string{"b"}, changes.Deleted)
}

func TestReconcileCardInvoices_DoesNotMutateInput(t *testing.T) {
	ledger := []domain.LedgerEntry{{
		ID: "x", Description: "Fatura", Day: 5, Month: 1, Year: 2026,
		Kind: domain.EntryKindExpense, Amount: dec("1"),
		IsCreditCardInvoice: true, RelatedCardID: "card-1",
	}}

	_, _ = ReconcileCardInvoices(ledger, []domain.CardInstallment{inst("card-1", 1, "99")}, []domain.CreditCard{testCard()}, jan2026, &SequenceIDs{})

	assert.True(t, ledger[0].Amount.Equal(dec("1")))
}
