package activity

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeintel/pkg/requestcontext"
)

func TestPublisherEmit(t *testing.T) {
	t.Run("nil publisher is a no-op", func(t *testing.T) {
		var p *Publisher
		p.Emit(Event{Kind: KindSearch})
	})

	t.Run("full buffer drops instead of blocking", func(t *testing.T) {
		p := NewPublisher(1)
		p.Emit(Event{Kind: KindSearch})

		done := make(chan struct{})
		go func() {
			p.Emit(Event{Kind: KindCountries})
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Emit blocked on a full buffer")
		}
		assert.Len(t, p.Inbox(), 1)
	})
}

func TestWorkerDrainsToSink(t *testing.T) {
	sink := NewMemorySink()
	publisher := NewPublisher(8)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	worker := NewWorker(sink, publisher.Inbox(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = worker.Run(ctx)
		close(done)
	}()

	publisher.Emit(Event{Kind: KindSearch, Query: "coffee", Total: 12, Success: true})
	publisher.Emit(Event{Kind: KindCountries, Total: 48, Success: true})

	require.Eventually(t, func() bool {
		return len(sink.Events()) == 2
	}, time.Second, 10*time.Millisecond)

	events := sink.Events()
	assert.Equal(t, KindSearch, events[0].Kind)
	assert.Equal(t, "coffee", events[0].Query)
	assert.Equal(t, KindCountries, events[1].Kind)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on cancellation")
	}
}

func TestNewEvent(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()
	ctx = requestcontext.WithTime(ctx, now)
	ctx = requestcontext.WithRequestID(ctx, "req-1")
	ctx = requestcontext.WithAPIKeyID(ctx, "key-123")
	ctx = requestcontext.WithClientMetadata(ctx, "203.0.113.9",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")

	event := NewEvent(ctx, KindSearch)

	assert.Equal(t, now, event.Timestamp)
	assert.Equal(t, "req-1", event.RequestID)
	assert.Equal(t, "key-123", event.APIKeyID)
	assert.Equal(t, "203.0.113.9", event.ClientIP)
	assert.Equal(t, "Chrome", event.Browser)
	assert.Equal(t, "Windows 10", event.OS)
}
