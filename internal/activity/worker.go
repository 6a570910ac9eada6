package activity

import (
	"context"
	"log/slog"
)

// Sink receives drained activity events.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Worker consumes activity events from the publisher's channel and hands them
// to a sink. Sink failures are logged and the event is dropped; telemetry is
// best-effort by design.
type Worker struct {
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

// NewWorker constructs a worker draining inbox into sink.
func NewWorker(sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

// Run drains events until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Append(ctx, event); err != nil {
				w.logger.WarnContext(ctx, "activity sink append failed",
					"kind", event.Kind,
					"request_id", event.RequestID,
					"error", err,
				)
			}
		}
	}
}
