// Package activity records search usage events. Events are best-effort
// telemetry: emitting never blocks or fails a request.
package activity

import (
	"context"
	"time"

	"github.com/mssola/useragent"

	"tradeintel/pkg/requestcontext"
)

// Kind identifies which operation produced an event.
type Kind string

const (
	KindSearch    Kind = "search"
	KindCompanies Kind = "companies"
	KindCountries Kind = "countries"
)

// Event is one recorded invocation of a search-surface operation.
type Event struct {
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"request_id,omitempty"`
	APIKeyID   string    `json:"api_key_id,omitempty"`
	Kind       Kind      `json:"kind"`
	Query      string    `json:"query,omitempty"`
	Mode       string    `json:"mode,omitempty"`
	Total      int       `json:"total"`
	Success    bool      `json:"success"`
	DurationMS int64     `json:"duration_ms"`
	ClientIP   string    `json:"client_ip,omitempty"`
	Browser    string    `json:"browser,omitempty"`
	OS         string    `json:"os,omitempty"`
}

// NewEvent seeds an event from request-scoped context values, parsing the
// User-Agent for browser and OS when one was captured.
func NewEvent(ctx context.Context, kind Kind) Event {
	e := Event{
		Timestamp: requestcontext.Now(ctx),
		RequestID: requestcontext.RequestID(ctx),
		APIKeyID:  requestcontext.APIKeyID(ctx),
		Kind:      kind,
		ClientIP:  requestcontext.ClientIP(ctx),
	}
	if ua := requestcontext.UserAgent(ctx); ua != "" {
		parsed := useragent.New(ua)
		e.Browser, _ = parsed.Browser()
		e.OS = parsed.OS()
	}
	return e
}
