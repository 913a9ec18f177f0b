package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestRecovery_ReturnsInternalError(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil)
	rr := httptest.NewRecorder()

	Recovery(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if !strings.Contains(buf.String(), "panic recovered") {
		t.Fatalf("expected panic to be logged, got %s", buf.String())
	}
}

func TestLoggingMiddleware_LogsStatus(t *testing.T) {
	var buf bytes.Buffer
	mw := NewLoggingMiddleware(zerolog.New(&buf))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync", nil)
	rr := httptest.NewRecorder()

	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})).ServeHTTP(rr, req)

	out := buf.String()
	if !strings.Contains(out, `"status":202`) || !strings.Contains(out, `"path":"/api/v1/sync"`) {
		t.Fatalf("unexpected log line: %s", out)
	}
}
