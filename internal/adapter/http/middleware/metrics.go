package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iho/finledger/internal/infrastructure/metrics"
)

// Metrics returns a middleware recording request counts and latency.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			path := normalizePath(r.URL.Path)
			m.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
			m.HTTPDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}

// collections whose next path segment is an id
var idCollections = map[string]bool{
	"entries":       true,
	"cards":         true,
	"subscriptions": true,
	"debts":         true,
}

// normalizePath replaces ids with :id to keep label cardinality bounded.
// /api/v1/cards/01ABC/purchases -> /api/v1/cards/:id/purchases
func normalizePath(path string) string {
	if !strings.HasPrefix(path, "/api/v1/") {
		return path
	}

	segments := strings.Split(path, "/")
	for i := 1; i < len(segments); i++ {
		if idCollections[segments[i-1]] && segments[i] != "" {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}
