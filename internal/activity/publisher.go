package activity

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var droppedEvents = promauto.NewCounter(prometheus.CounterOpts{
	Name: "tradeintel_activity_events_dropped_total",
	Help: "Activity events dropped because the buffer was full",
})

// Publisher hands events to the background worker through a bounded channel.
// A full channel drops the event and counts the drop; a slow or absent sink
// must never stall a search request.
type Publisher struct {
	inbox chan Event
}

// NewPublisher creates a publisher with the given buffer capacity.
func NewPublisher(capacity int) *Publisher {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Publisher{inbox: make(chan Event, capacity)}
}

// Emit enqueues an event without blocking. Safe to call on a nil publisher,
// which makes activity recording optional at every call site.
func (p *Publisher) Emit(event Event) {
	if p == nil {
		return
	}
	select {
	case p.inbox <- event:
	default:
		droppedEvents.Inc()
	}
}

// Inbox exposes the event channel for the worker.
func (p *Publisher) Inbox() <-chan Event {
	return p.inbox
}
