package eventpublisher

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

// EventPublisher handles publishing events from the outbox.
type EventPublisher struct {
	outboxRepo usecase.OutboxRepository
	publisher  Publisher
	logger     zerolog.Logger
	batchSize  int
	interval   time.Duration
	retention  time.Duration
	published  *prometheus.CounterVec
	now        func() time.Time
}

// Publisher defines the interface for publishing events to external systems.
type Publisher interface {
	Publish(ctx context.Context, event *domain.OutboxEvent) error
}

// Config for EventPublisher.
type Config struct {
	OutboxRepo usecase.OutboxRepository
	Publisher  Publisher
	Logger     zerolog.Logger
	BatchSize  int                    // Number of events to fetch per batch
	Interval   time.Duration          // Polling interval
	Retention  time.Duration          // How long published events are kept
	Published  *prometheus.CounterVec // optional, labelled by event_type
}

// NewEventPublisher creates a new EventPublisher.
func NewEventPublisher(cfg Config) *EventPublisher {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.Interval == 0 {
		cfg.Interval = 5 * time.Second
	}
	if cfg.Retention == 0 {
		cfg.Retention = 7 * 24 * time.Hour
	}

	return &EventPublisher{
		outboxRepo: cfg.OutboxRepo,
		publisher:  cfg.Publisher,
		logger:     cfg.Logger.With().Str("component", "event_publisher").Logger(),
		batchSize:  cfg.BatchSize,
		interval:   cfg.Interval,
		retention:  cfg.Retention,
		published:  cfg.Published,
		now:        time.Now,
	}
}

// Start begins the event publishing worker.
// It runs continuously until the context is cancelled.
func (ep *EventPublisher) Start(ctx context.Context) error {
	ep.logger.Info().
		Int("batch_size", ep.batchSize).
		Dur("interval", ep.interval).
		Msg("event publisher started")

	ticker := time.NewTicker(ep.interval)
	defer ticker.Stop()

	// Process immediately on start
	if err := ep.processEvents(ctx); err != nil {
		ep.logger.Error().Err(err).Msg("error processing events on start")
	}

	lastSweep := ep.now()
	for {
		select {
		case <-ctx.Done():
			ep.logger.Info().Msg("event publisher shutting down")
			return ctx.Err()
		case <-ticker.C:
			if err := ep.processEvents(ctx); err != nil {
				ep.logger.Error().Err(err).Msg("error processing events")
			}
			if ep.now().Sub(lastSweep) >= time.Hour {
				ep.sweep(ctx)
				lastSweep = ep.now()
			}
		}
	}
}

// maxBatchesPerTick bounds how much backlog one tick drains.
const maxBatchesPerTick = 10

// processEvents publishes pending events oldest first. Delivery stops at the
// first failure so subscribers never see an event before its predecessor;
// the failed event is retried on the next tick.
func (ep *EventPublisher) processEvents(ctx context.Context) error {
	for range maxBatchesPerTick {
		events, err := ep.outboxRepo.GetUnpublished(ctx, ep.batchSize)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}

		ep.logger.Debug().Int("count", len(events)).Msg("processing events")

		for _, event := range events {
			if err := ep.publishEvent(ctx, event); err != nil {
				ep.logger.Error().
					Err(err).
					Str("event_id", event.ID).
					Str("event_type", event.EventType).
					Msg("failed to publish event")
				return nil
			}
			if ep.published != nil {
				ep.published.WithLabelValues(event.EventType).Inc()
			}

			if err := ep.outboxRepo.MarkPublished(ctx, event.ID, ep.now()); err != nil {
				ep.logger.Error().
					Err(err).
					Str("event_id", event.ID).
					Msg("failed to mark event as published")
				return nil
			}
		}

		if len(events) < ep.batchSize {
			return nil
		}
	}
	return nil
}

// publishEvent publishes a single event.
func (ep *EventPublisher) publishEvent(ctx context.Context, event *domain.OutboxEvent) error {
	ep.logger.Debug().
		Str("event_id", event.ID).
		Str("event_type", event.EventType).
		Str("aggregate_type", event.AggregateType).
		Str("aggregate_id", event.AggregateID).
		Msg("publishing event")

	return ep.publisher.Publish(ctx, event)
}

// sweep removes published events older than the retention window.
func (ep *EventPublisher) sweep(ctx context.Context) {
	if err := ep.outboxRepo.DeletePublished(ctx, ep.now().Add(-ep.retention)); err != nil {
		ep.logger.Warn().Err(err).Msg("failed to delete published events")
	}
}

// LogPublisher is a simple publisher that logs events.
type LogPublisher struct {
	logger zerolog.Logger
}

// NewLogPublisher creates a new LogPublisher.
func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the event.
func (p *LogPublisher) Publish(ctx context.Context, event *domain.OutboxEvent) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}

	p.logger.Info().
		Str("event_id", event.ID).
		Str("event_type", event.EventType).
		Str("aggregate_type", event.AggregateType).
		Str("aggregate_id", event.AggregateID).
		RawJSON("payload", payload).
		Msg("event published")

	return nil
}

// MultiPublisher delivers every event to each publisher in turn.
type MultiPublisher []Publisher

// Publish calls every publisher and joins their errors.
func (m MultiPublisher) Publish(ctx context.Context, event *domain.OutboxEvent) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
