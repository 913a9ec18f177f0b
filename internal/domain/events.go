package domain

import (
	"encoding/json"
	"time"
)

// Event types
const (
	EventTypeEntryCreated           = "entry.created"
	EventTypeEntryUpdated           = "entry.updated"
	EventTypeEntryDeleted           = "entry.deleted"
	EventTypeEntryToggled           = "entry.toggled"
	EventTypeLedgerSynced           = "ledger.synced"
	EventTypeSubscriptionDeactivate = "subscription.deactivated"
	EventTypeDebtBalanceChanged     = "debt.balance_changed"
	EventTypeCardRemoved            = "card.removed"
)

// Aggregate types
const (
	AggregateTypeEntry        = "entry"
	AggregateTypeLedger       = "ledger"
	AggregateTypeSubscription = "subscription"
	AggregateTypeDebt         = "debt"
	AggregateTypeCard         = "card"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// EntryChangedEvent payload
type EntryChangedEvent struct {
	Op      string   `json:"op"`
	Created []string `json:"created,omitempty"`
	Updated []string `json:"updated,omitempty"`
	Deleted []string `json:"deleted,omitempty"`
}

// LedgerSyncedEvent payload
type LedgerSyncedEvent struct {
	InvoicesCreated  int `json:"invoices_created"`
	InvoicesUpdated  int `json:"invoices_updated"`
	InvoicesDeleted  int `json:"invoices_deleted"`
	ForecastsCreated int `json:"forecasts_created"`
}

// DebtBalanceChangedEvent payload
type DebtBalanceChangedEvent struct {
	DebtID  string `json:"debt_id"`
	Balance string `json:"balance"`
	EntryID string `json:"entry_id"`
}

// MarshalPayload converts an event payload struct into the outbox map form.
func MarshalPayload(v any) map[string]any {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return map[string]any{"error": "failed to marshal payload"}
	}

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		return map[string]any{"error": "failed to unmarshal payload"}
	}

	return result
}
