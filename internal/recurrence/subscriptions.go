package recurrence

import "github.com/iho/finledger/internal/domain"

type subscriptionKey struct {
	subscriptionID string
	month          int
}

// ForecastSubscriptions makes sure every active subscription has an entry in
// each month of the horizon. Existing entries are never modified or removed,
// so a month the user edited keeps its edit. Inactive subscriptions generate
// nothing.
func ForecastSubscriptions(
	ledger []domain.LedgerEntry,
	subscriptions []domain.Subscription,
	h Horizon,
	ids IDGenerator,
) ([]domain.LedgerEntry, Changes) {
	var changes Changes

	out := cloneLedger(ledger)

	existing := make(map[subscriptionKey]bool)
	for i := range out {
		if out[i].SubscriptionID != "" {
			existing[subscriptionKey{out[i].SubscriptionID, out[i].MonthKey()}] = true
		}
	}

	for _, sub := range subscriptions {
		if !sub.Active {
			continue
		}
		for _, ym := range h.Months() {
			key := subscriptionKey{sub.ID, ym.Key()}
			if existing[key] {
				continue
			}
			existing[key] = true

			e := domain.LedgerEntry{
				ID:             ids.Generate(),
				Description:    sub.Name,
				Day:            ClampDay(ym.Year, ym.Month, sub.BillingDay),
				Month:          ym.Month,
				Year:           ym.Year,
				Kind:           domain.EntryKindExpense,
				Category:       sub.Category,
				Amount:         sub.Amount,
				IsFixed:        true,
				SubscriptionID: sub.ID,
				IsSubscription: true,
			}
			out = append(out, e)
			changes.Created = append(changes.Created, e.ID)
		}
	}

	return out, changes
}
