package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

func TestNewIDGenerator(t *testing.T) {
	gen, err := NewIDGenerator("ulid")
	if err != nil {
		t.Fatalf("ulid: %v", err)
	}
	if _, err := ulid.Parse(gen.Generate()); err != nil {
		t.Fatalf("expected a ULID: %v", err)
	}

	gen, err = NewIDGenerator("uuid")
	if err != nil {
		t.Fatalf("uuid: %v", err)
	}
	if _, err := uuid.Parse(gen.Generate()); err != nil {
		t.Fatalf("expected a UUID: %v", err)
	}

	if _, err := NewIDGenerator("serial"); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
}

func TestULIDGeneratorUnique(t *testing.T) {
	gen := NewULIDGenerator()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := gen.Generate()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}
