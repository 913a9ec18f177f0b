package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/domain"
)

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/entries?year=2025", nil)
	if got := parseIntQuery(req, "year", 10); got != 2025 {
		t.Fatalf("expected year=2025, got %d", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/entries?year=invalid", nil)
	if got := parseIntQuery(req, "year", 10); got != 10 {
		t.Fatalf("expected fallback to default, got %d", got)
	}

	req.URL = &url.URL{RawQuery: ""}
	if got := parseIntQuery(req, "year", 25); got != 25 {
		t.Fatalf("expected default when missing, got %d", got)
	}
}

func TestParseMonthQuery(t *testing.T) {
	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	req := httptest.NewRequest(http.MethodGet, "/entries", nil)
	year, month, err := parseMonthQuery(req, now)
	if err != nil || year != 2026 || month != 2 {
		t.Fatalf("expected 2026/2 default, got %d/%d (%v)", year, month, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/entries?year=2025&month=11", nil)
	year, month, err = parseMonthQuery(req, now)
	if err != nil || year != 2025 || month != 11 {
		t.Fatalf("expected 2025/11, got %d/%d (%v)", year, month, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/entries?month=12", nil)
	if _, _, err := parseMonthQuery(req, now); !errors.Is(err, domain.ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}

func TestParseBoolQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/entries/1?future=true", nil)
	if !parseBoolQuery(req, "future") {
		t.Fatalf("expected future=true")
	}

	req = httptest.NewRequest(http.MethodDelete, "/entries/1?future=maybe", nil)
	if parseBoolQuery(req, "future") {
		t.Fatalf("expected unparsable value to be false")
	}
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"entry not found", domain.ErrEntryNotFound, http.StatusNotFound},
		{"card not found", domain.ErrCardNotFound, http.StatusNotFound},
		{"debt not found", domain.ErrDebtNotFound, http.StatusNotFound},
		{"derived entry", domain.ErrDerivedEntry, http.StatusConflict},
		{"partial payment too large", domain.ErrPartialPaymentTooLarge, http.StatusUnprocessableEntity},
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest},
		{"wrapped invalid day", fmt.Errorf("%w: 40", domain.ErrInvalidDay), http.StatusBadRequest},
		{"multiple linkages", domain.ErrMultipleLinkages, http.StatusBadRequest},
		{"persist error", &domain.PersistError{Op: "sync", Err: errors.New("db down")}, http.StatusInternalServerError},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/entries", strings.NewReader(`{"name":"x","bogus":1}`))

	var body dto.CreateDebtRequest
	if err := decodeJSON(req, &body); err == nil {
		t.Fatalf("expected unknown field to be rejected")
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	payload := map[string]string{"status": "ok"}

	writeJSON(rr, http.StatusCreated, payload)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}

	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content-type application/json, got %s", ct)
	}

	var decoded map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if decoded["status"] != "ok" {
		t.Fatalf("expected payload to round-trip, got %+v", decoded)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()

	writeError(rr, http.StatusBadRequest, "bad request", "detail")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if resp.Error != "bad request" {
		t.Fatalf("expected error message to propagate, got %+v", resp)
	}
}
