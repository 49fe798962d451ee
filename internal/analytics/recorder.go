// Package analytics records portal usage events. Recording is
// best-effort: a failed insert never fails the operation that caused it.
package analytics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gramseva/gramseva-backend/internal/domain"
)

// Sink receives the events.
type Sink interface {
	InsertEvent(ctx context.Context, e *domain.AnalyticsEvent) error
}

// Recorder writes events asynchronously, detached from the caller's
// request context so a cancelled request cannot lose its event.
type Recorder struct {
	sink    Sink
	log     *slog.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewRecorder creates a recorder writing to sink.
func NewRecorder(sink Sink, log *slog.Logger) *Recorder {
	return &Recorder{
		sink:    sink,
		log:     log.With("component", "analytics"),
		timeout: 5 * time.Second,
	}
}

// Record writes one event in its own goroutine. Failures are logged and
// swallowed.
func (r *Recorder) Record(eventType string, citizenID *uuid.UUID, payload map[string]any) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		err := r.sink.InsertEvent(ctx, &domain.AnalyticsEvent{
			EventType: eventType,
			CitizenID: citizenID,
			Payload:   payload,
		})
		if err != nil {
			r.log.Warn("event dropped", "event_type", eventType, "error", err)
		}
	}()
}

// Flush blocks until all in-flight events are written. Called on
// shutdown and from tests.
func (r *Recorder) Flush() {
	r.wg.Wait()
}
