package recurrence

import (
	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
)

// InvoiceCategory is the category given to synthetic invoice entries.
const InvoiceCategory = "Cartão de Crédito"

type invoiceKey struct {
	cardID string
	month  int
}

// ReconcileCardInvoices keeps exactly one synthetic invoice entry per card and
// month of the horizon whose amount is the sum of that card's installments.
//
// Missing invoices are created, differing amounts are updated (amount only),
// and invoices whose total dropped to zero are deleted unless completed.
// Invoice entries of cards that no longer exist are removed regardless of
// their status. Entries outside the horizon are left alone.
func ReconcileCardInvoices(
	ledger []domain.LedgerEntry,
	installments []domain.CardInstallment,
	cards []domain.CreditCard,
	h Horizon,
	ids IDGenerator,
) ([]domain.LedgerEntry, Changes) {
	var changes Changes

	live := make(map[string]bool, len(cards))
	for _, c := range cards {
		live[c.ID] = true
	}

	out := make([]domain.LedgerEntry, 0, len(ledger))
	index := make(map[invoiceKey]int)
	for _, e := range ledger {
		if !e.IsCreditCardInvoice {
			out = append(out, e.Clone())
			continue
		}

		if !live[e.RelatedCardID] {
			changes.Deleted = append(changes.Deleted, e.ID)
			continue
		}

		key := invoiceKey{cardID: e.RelatedCardID, month: e.MonthKey()}
		if _, dup := index[key]; dup && !e.Completed {
			changes.Deleted = append(changes.Deleted, e.ID)
			continue
		}

		out = append(out, e.Clone())
		if _, dup := index[key]; !dup {
			index[key] = len(out) - 1
		}
	}

	totals := make(map[invoiceKey]decimal.Decimal)
	for i := range installments {
		inst := &installments[i]
		if !live[inst.CardID] {
			continue
		}
		key := invoiceKey{cardID: inst.CardID, month: inst.MonthKey()}
		totals[key] = totals[key].Add(inst.Amount)
	}

	drop := make(map[int]bool)
	for _, card := range cards {
		for _, ym := range h.Months() {
			key := invoiceKey{cardID: card.ID, month: ym.Key()}
			total := totals[key]
			idx, exists := index[key]

			switch {
			case total.IsPositive() && !exists:
				out = append(out, newInvoiceEntry(ids.Generate(), card, ym, total))
				index[key] = len(out) - 1
				changes.Created = append(changes.Created, out[len(out)-1].ID)
			case total.IsPositive() && !out[idx].Amount.Equal(total):
				out[idx].Amount = total
				changes.Updated = append(changes.Updated, out[idx].ID)
			case !total.IsPositive() && exists && !out[idx].Completed:
				drop[idx] = true
				changes.Deleted = append(changes.Deleted, out[idx].ID)
			}
		}
	}

	if len(drop) == 0 {
		return out, changes
	}

	kept := out[:0]
	for i := range out {
		if !drop[i] {
			kept = append(kept, out[i])
		}
	}

	return kept, changes
}

func newInvoiceEntry(id string, card domain.CreditCard, ym YearMonth, total decimal.Decimal) domain.LedgerEntry {
	return domain.LedgerEntry{
		ID:                  id,
		Description:         "Fatura " + card.Name,
		Day:                 ClampDay(ym.Year, ym.Month, card.DueDay),
		Month:               ym.Month,
		Year:                ym.Year,
		Kind:                domain.EntryKindExpense,
		Category:            InvoiceCategory,
		Amount:              total,
		IsCreditCardInvoice: true,
		RelatedCardID:       card.ID,
	}
}
