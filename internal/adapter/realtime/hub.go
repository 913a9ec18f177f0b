// Package realtime streams ledger events to websocket subscribers.
package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/olahol/melody"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/iho/finledger/internal/domain"
)

const typesKey = "types"

// Message is the JSON frame sent for each event.
type Message struct {
	ID            string         `json:"id"`
	Type          string         `json:"type"`
	AggregateType string         `json:"aggregate_type"`
	AggregateID   string         `json:"aggregate_id"`
	Payload       map[string]any `json:"payload,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// Hub fans outbox events out to connected websocket clients. A client may
// pass ?types=entry.,ledger.synced to receive only matching event types.
type Hub struct {
	m        *melody.Melody
	logger   zerolog.Logger
	sessions prometheus.Gauge
}

// NewHub creates a Hub. sessions may be nil.
func NewHub(logger zerolog.Logger, sessions prometheus.Gauge) *Hub {
	m := melody.New()
	m.Config.MaxMessageSize = 4096
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	h := &Hub{
		m:        m,
		logger:   logger.With().Str("component", "realtime").Logger(),
		sessions: sessions,
	}

	m.HandleConnect(func(s *melody.Session) {
		if h.sessions != nil {
			h.sessions.Inc()
		}
		h.logger.Debug().Str("remote", s.Request.RemoteAddr).Msg("subscriber connected")
	})
	m.HandleDisconnect(func(s *melody.Session) {
		if h.sessions != nil {
			h.sessions.Dec()
		}
		h.logger.Debug().Str("remote", s.Request.RemoteAddr).Msg("subscriber disconnected")
	})
	m.HandleError(func(s *melody.Session, err error) {
		h.logger.Warn().Err(err).Msg("websocket error")
	})

	return h
}

// ServeHTTP upgrades the request to a websocket subscription.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	keys := map[string]any{typesKey: parseTypes(r.URL.Query().Get("types"))}
	if err := h.m.HandleRequestWithKeys(w, r, keys); err != nil {
		h.logger.Warn().Err(err).Msg("failed to upgrade websocket")
	}
}

// Publish implements eventpublisher.Publisher.
func (h *Hub) Publish(ctx context.Context, event *domain.OutboxEvent) error {
	msg, err := json.Marshal(Message{
		ID:            event.ID,
		Type:          event.EventType,
		AggregateType: event.AggregateType,
		AggregateID:   event.AggregateID,
		Payload:       event.Payload,
		CreatedAt:     event.CreatedAt,
	})
	if err != nil {
		return err
	}

	return h.m.BroadcastFilter(msg, func(s *melody.Session) bool {
		v, _ := s.Get(typesKey)
		types, _ := v.([]string)
		return matches(types, event.EventType)
	})
}

// Len returns the number of connected subscribers.
func (h *Hub) Len() int {
	return h.m.Len()
}

// Close disconnects every subscriber.
func (h *Hub) Close() error {
	return h.m.Close()
}

func parseTypes(raw string) []string {
	var types []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}
	return types
}

// matches reports whether eventType starts with one of the prefixes. No
// prefixes matches everything.
func matches(prefixes []string, eventType string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, p := range prefixes {
		if strings.HasPrefix(eventType, p) {
			return true
		}
	}
	return false
}
