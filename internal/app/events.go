package app

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"paper-summary-api/internal/model"
	"paper-summary-api/internal/observability"
)

// NopPublisher drops events. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, model.Event) error { return nil }

// eventEmitter publishes after commit. Failures are logged and counted but
// never fail the request, since the write is already durable.
type eventEmitter struct {
	publisher EventPublisher
	metrics   *observability.Metrics
	logger    zerolog.Logger
}

func (e eventEmitter) emit(ctx context.Context, eventType string, payload any) {
	if e.publisher == nil {
		return
	}
	event := model.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
	err := e.publisher.Publish(ctx, event)
	e.metrics.ObserveEvent(eventType, err)
	if err != nil {
		e.logger.Warn().Err(err).Str("event_type", eventType).Str("event_id", event.ID).Msg("publish event failed")
	}
}

// sessionOrNew returns the client session id, or a fresh one when blank.
func sessionOrNew(session string) string {
	if len(session) > 0 {
		return session
	}
	return uuid.NewString()
}

// storableID reports whether id fits a signed 64-bit primary key.
func storableID(id uint) bool {
	return id != 0 && uint64(id) <= math.MaxInt64
}

func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
