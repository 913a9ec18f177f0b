package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/finledger/internal/recurrence"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Mutation metrics
	Mutations        *prometheus.CounterVec
	MutationDuration *prometheus.HistogramVec
	PersistErrors    *prometheus.CounterVec

	// Recompute metrics
	InvoiceChanges  *prometheus.CounterVec
	ForecastChanges *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Cache metrics
	CacheLookups *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec

	// Authentication metrics
	AuthFailures *prometheus.CounterVec

	// Realtime metrics
	WebsocketSessions prometheus.Gauge
	EventsPublished   *prometheus.CounterVec
}

// New creates all metrics and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Mutation metrics
		Mutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_mutations_total",
				Help: "Total ledger mutations by operation and outcome",
			},
			[]string{"op", "status"},
		),
		MutationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finledger_mutation_duration_seconds",
				Help:    "Duration of ledger mutations, recompute and persistence included",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),
		PersistErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_persist_errors_total",
				Help: "Total persistence calls that failed mid-mutation",
			},
			[]string{"op"},
		),

		// Recompute metrics
		InvoiceChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_invoice_changes_total",
				Help: "Invoice entries created, updated or deleted by reconciliation",
			},
			[]string{"change"},
		),
		ForecastChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_forecast_changes_total",
				Help: "Subscription forecast entries created, updated or deleted",
			},
			[]string{"change"},
		),

		// API metrics
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Cache metrics
		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_cache_lookups_total",
				Help: "Summary cache lookups by result",
			},
			[]string{"result"},
		),

		// Rate limiting metrics
		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),

		// Authentication metrics
		AuthFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_auth_failures_total",
				Help: "Total authentication failures",
			},
			[]string{"reason"},
		),

		// Realtime metrics
		WebsocketSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "finledger_websocket_sessions",
			Help: "Current number of websocket subscribers",
		}),
		EventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_events_published_total",
				Help: "Outbox events delivered to subscribers",
			},
			[]string{"event_type"},
		),
	}
}

// ObserveMutation records one Store mutation.
func (m *Metrics) ObserveMutation(op string, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.Mutations.WithLabelValues(op, status).Inc()
	m.MutationDuration.WithLabelValues(op).Observe(d.Seconds())
}

// ObserveRecompute records what one recompute pass changed.
func (m *Metrics) ObserveRecompute(report recurrence.Report) {
	addChanges(m.InvoiceChanges, report.Invoices)
	addChanges(m.ForecastChanges, report.Forecasts)
}

// IncPersistError counts a failed persistence call.
func (m *Metrics) IncPersistError(op string) {
	m.PersistErrors.WithLabelValues(op).Inc()
}

func addChanges(vec *prometheus.CounterVec, c recurrence.Changes) {
	if n := len(c.Created); n > 0 {
		vec.WithLabelValues("created").Add(float64(n))
	}
	if n := len(c.Updated); n > 0 {
		vec.WithLabelValues("updated").Add(float64(n))
	}
	if n := len(c.Deleted); n > 0 {
		vec.WithLabelValues("deleted").Add(float64(n))
	}
}
