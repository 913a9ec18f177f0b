package recurrence

import (
	"time"

	"github.com/iho/finledger/internal/domain"
)

// ToggleResult describes what a completion toggle did.
type ToggleResult struct {
	Changed   bool
	Completed bool
	DebtID    string
}

// ResolveCompletionToggle flips the completed flag of the entry with entryID
// and keeps a linked debt account consistent: completing records a payment
// (newest first) and lowers the balance, reverting raises the balance back and
// removes that payment. Unknown entries and unknown debts leave the debts
// untouched.
func ResolveCompletionToggle(
	ledger []domain.LedgerEntry,
	entryID string,
	debts []domain.DebtAccount,
	now time.Time,
	ids IDGenerator,
) ([]domain.LedgerEntry, []domain.DebtAccount, ToggleResult) {
	idx := FindEntry(ledger, entryID)
	if idx < 0 {
		return ledger, debts, ToggleResult{}
	}

	out := cloneLedger(ledger)
	entry := &out[idx]
	entry.Completed = !entry.Completed
	result := ToggleResult{Changed: true, Completed: entry.Completed}

	if entry.DebtID == "" {
		return out, debts, result
	}

	d := findDebt(debts, entry.DebtID)
	if d < 0 {
		return out, debts, result
	}

	nextDebts := cloneDebts(debts)
	debt := &nextDebts[d]
	if entry.Completed {
		debt.RecordPayment(domain.DebtEvent{
			ID:            ids.Generate(),
			Date:          now,
			Description:   entry.Description,
			Amount:        entry.SettledAmount(),
			LinkedEntryID: entry.ID,
		})
	} else {
		debt.RevertPayment(entry.ID, entry.SettledAmount())
	}
	result.DebtID = debt.ID

	return out, nextDebts, result
}

// ResolveAmountEdit returns the balance correction for a completed
// debt-linked entry whose settled amount changed: a smaller payment raises
// the balance, a larger one lowers it. Partial payments move value from the
// open amount to the paid part and so never change the balance. History is
// not touched.
func ResolveAmountEdit(before, after domain.LedgerEntry) *DebtAdjustment {
	if after.DebtID == "" || !before.Completed || !after.Completed {
		return nil
	}

	delta := before.SettledAmount().Sub(after.SettledAmount())
	if delta.IsZero() {
		return nil
	}

	return &DebtAdjustment{DebtID: after.DebtID, EntryID: after.ID, Delta: delta}
}

// ResolveDeletion returns the correction for deleting a debt-linked entry:
// a completed entry's payment is reverted and its event dropped.
func ResolveDeletion(e domain.LedgerEntry) *DebtAdjustment {
	if e.DebtID == "" || !e.Completed {
		return nil
	}
	return &DebtAdjustment{DebtID: e.DebtID, EntryID: e.ID, Delta: e.SettledAmount(), DropEvent: true}
}

// ApplyDebtAdjustments applies adjustments to a copy of debts and returns it
// with the ids of the accounts that changed. Adjustments for unknown debts
// are skipped.
func ApplyDebtAdjustments(debts []domain.DebtAccount, adjustments []DebtAdjustment) ([]domain.DebtAccount, []string) {
	if len(adjustments) == 0 {
		return debts, nil
	}

	out := cloneDebts(debts)
	var changed []string
	touched := make(map[string]bool)
	for _, adj := range adjustments {
		d := findDebt(out, adj.DebtID)
		if d < 0 {
			continue
		}
		if adj.DropEvent {
			out[d].RevertPayment(adj.EntryID, adj.Delta)
		} else {
			out[d].CurrentBalance = out[d].CurrentBalance.Add(adj.Delta)
		}
		if !touched[adj.DebtID] {
			touched[adj.DebtID] = true
			changed = append(changed, adj.DebtID)
		}
	}

	return out, changed
}

func findDebt(debts []domain.DebtAccount, id string) int {
	for i := range debts {
		if debts[i].ID == id {
			return i
		}
	}
	return -1
}
