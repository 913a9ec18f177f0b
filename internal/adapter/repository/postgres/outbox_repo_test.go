package postgres

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/finledger/internal/infrastructure/postgres/generated"
)

func TestRowToOutboxEvent(t *testing.T) {
	created := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	row := generated.OutboxEvent{
		ID:            "ev-1",
		AggregateID:   "toggle_entry",
		AggregateType: "ledger",
		EventType:     "entry.toggled",
		Payload:       []byte(`{"op":"toggle_entry","updated":["e1"]}`),
		CreatedAt:     pgtype.Timestamptz{Time: created, Valid: true},
	}

	event, err := rowToOutboxEvent(row)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.PublishedAt != nil || event.Published {
		t.Fatalf("expected unpublished event, got %+v", event)
	}
	if !event.CreatedAt.Equal(created) || event.Payload["op"] != "toggle_entry" {
		t.Fatalf("unexpected event %+v", event)
	}

	row.PublishedAt = pgtype.Timestamptz{Time: created.Add(time.Second), Valid: true}
	row.Published = true
	event, err = rowToOutboxEvent(row)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.PublishedAt == nil || !event.PublishedAt.Equal(created.Add(time.Second)) {
		t.Fatalf("expected published_at to be set, got %+v", event.PublishedAt)
	}

	row.Payload = []byte(`{not json`)
	if _, err := rowToOutboxEvent(row); err == nil {
		t.Fatal("expected a decode error for a corrupt payload")
	}

	row.Payload = nil
	event, err = rowToOutboxEvent(row)
	if err != nil || event.Payload != nil {
		t.Fatalf("expected empty payload, got %v (%v)", event.Payload, err)
	}
}
