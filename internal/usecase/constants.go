package usecase

import "time"

const (
	// DefaultForecastMonths is how many months ahead invoices and
	// subscriptions are kept in the ledger.
	DefaultForecastMonths = 12

	// SummaryCacheTTL is how long a cached month summary stays valid.
	SummaryCacheTTL = 10 * time.Minute

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// IdempotencyPending is stored under a key while its first request runs.
	IdempotencyPending = "processing"
)

// Mutation names used for logging, metrics and persistence errors.
const (
	OpCreateEntry            = "create_entry"
	OpUpdateEntry            = "update_entry"
	OpDeleteEntry            = "delete_entry"
	OpToggleEntry            = "toggle_entry"
	OpPartialPayment         = "partial_payment"
	OpCreateCard             = "create_card"
	OpDeleteCard             = "delete_card"
	OpCardPurchase           = "card_purchase"
	OpCreateSubscription     = "create_subscription"
	OpDeactivateSubscription = "deactivate_subscription"
	OpCreateDebt             = "create_debt"
	OpDebtPurchase           = "debt_purchase"
	OpSync                   = "sync"
)
