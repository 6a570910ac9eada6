// Package service orchestrates the search pipeline: compile-and-run the
// primary query, aggregate the summary, and assemble the uniform response
// shape. The pipeline is stateless; each invocation is independent.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"tradeintel/internal/activity"
	"tradeintel/internal/platform/config"
	"tradeintel/internal/search/metrics"
	"tradeintel/internal/search/models"
	"tradeintel/pkg/requestcontext"
)

// Store is the record-store surface the service depends on.
type Store interface {
	Search(ctx context.Context, c models.FilterCriteria) ([]models.ShipmentRecord, int, error)
	Summarize(ctx context.Context, c models.FilterCriteria) (models.Summary, error)
	Companies(ctx context.Context, q string, limit int) ([]models.Company, error)
	Countries(ctx context.Context) ([]string, error)
}

// Service is the search pipeline entry point.
type Service struct {
	store    Store
	logger   *slog.Logger
	metrics  *metrics.Metrics
	scope    config.SummaryScope
	activity *activity.Publisher
	tracer   trace.Tracer
}

// Option configures the Service.
type Option func(*Service)

// WithMetrics attaches the prometheus collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithSummaryScope selects which population the summary describes. The default
// is the legacy scope: only the free-text filter is reapplied, so the summary
// can describe a broader population than the returned page.
func WithSummaryScope(scope config.SummaryScope) Option {
	return func(s *Service) { s.scope = scope }
}

// WithActivity attaches the activity publisher.
func WithActivity(p *activity.Publisher) Option {
	return func(s *Service) { s.activity = p }
}

// New constructs the search service.
func New(store Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: logger,
		scope:  config.SummaryScopeLegacy,
		tracer: otel.Tracer("tradeintel/search"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search executes the pipeline and always returns a well-formed response.
// Nothing is propagated to the caller as an error: failures terminate in the
// zeroed shape with Success=false, and the cause goes to the log. Callers must
// inspect the Success flag; existing call sites depend on this contract.
func (s *Service) Search(ctx context.Context, criteria models.FilterCriteria) (resp models.SearchResponse) {
	start := time.Now()
	c := criteria.Normalized()
	requestID := requestcontext.RequestID(ctx)

	ctx, span := s.tracer.Start(ctx, "search.Search",
		trace.WithAttributes(attribute.Int("search.limit", c.Limit), attribute.Int("search.offset", c.Offset)))
	defer span.End()

	// Outermost boundary: any panic in the pipeline converts to the same
	// failure shape as a store-reported query failure.
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "search pipeline panic", "request_id", requestID, "panic", r)
			resp = models.FailedSearchResponse(c.Limit, c.Offset)
			s.metrics.ObserveSearch("panic", time.Since(start))
		}
		s.emitSearch(ctx, c, resp, time.Since(start))
	}()

	if err := c.Validate(); err != nil {
		s.logger.WarnContext(ctx, "rejected search criteria", "request_id", requestID, "error", err)
		s.metrics.ObserveSearch("invalid", time.Since(start))
		return models.FailedSearchResponse(c.Limit, c.Offset)
	}

	var (
		page       []models.ShipmentRecord
		total      int
		summary    models.Summary
		summaryErr error
	)

	// The primary and summary queries are independent reads with no ordering
	// dependency, so they run concurrently. Only the primary query can fail
	// the pipeline. errgroup does not forward panics from its goroutines to
	// Wait, so each closure recovers on its own and reports the panic through
	// the same error path as a store-reported failure.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("primary query panic: %v", r)
			}
		}()
		page, total, err = s.store.Search(gctx, c)
		if err != nil {
			return fmt.Errorf("primary query: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				summaryErr = fmt.Errorf("summary query panic: %v", r)
			}
		}()
		summary, summaryErr = s.store.Summarize(gctx, s.summaryCriteria(c))
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "search failed",
			"request_id", requestID,
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		s.metrics.ObserveSearch("failure", time.Since(start))
		return models.FailedSearchResponse(c.Limit, c.Offset)
	}

	if summaryErr != nil {
		// Partial success: the page is good, the summary zeroes out.
		s.logger.WarnContext(ctx, "summary query failed", "request_id", requestID, "error", summaryErr)
		s.metrics.IncrementSummaryFailures()
		summary = models.Summary{}
	}

	if page == nil {
		page = []models.ShipmentRecord{}
	}

	s.logger.InfoContext(ctx, "search completed",
		"request_id", requestID,
		"total", total,
		"returned", len(page),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	s.metrics.ObserveSearch("success", time.Since(start))

	return models.SearchResponse{
		Success: true,
		Data:    page,
		Total:   total,
		Summary: summary,
		Pagination: models.Pagination{
			HasMore: total > c.Offset+len(page),
			Limit:   c.Limit,
			Offset:  c.Offset,
		},
	}
}

// summaryCriteria picks the population the summary describes.
func (s *Service) summaryCriteria(c models.FilterCriteria) models.FilterCriteria {
	if s.scope == config.SummaryScopeFiltered {
		return c
	}
	return c.TextOnly()
}

// Companies looks up company rows by name substring.
func (s *Service) Companies(ctx context.Context, q string, limit int) ([]models.Company, error) {
	if limit <= 0 {
		limit = models.DefaultLimit
	}
	if limit > models.MaxLimit {
		limit = models.MaxLimit
	}

	ctx, span := s.tracer.Start(ctx, "search.Companies")
	defer span.End()
	start := time.Now()

	companies, err := s.store.Companies(ctx, q, limit)

	event := activity.NewEvent(ctx, activity.KindCompanies)
	event.Query = q
	event.Total = len(companies)
	event.Success = err == nil
	event.DurationMS = time.Since(start).Milliseconds()
	s.activity.Emit(event)

	if err != nil {
		return nil, fmt.Errorf("company lookup: %w", err)
	}
	return companies, nil
}

// Countries returns the deduplicated, sorted union of observed countries.
func (s *Service) Countries(ctx context.Context) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "search.Countries")
	defer span.End()
	start := time.Now()

	countries, err := s.store.Countries(ctx)

	event := activity.NewEvent(ctx, activity.KindCountries)
	event.Total = len(countries)
	event.Success = err == nil
	event.DurationMS = time.Since(start).Milliseconds()
	s.activity.Emit(event)

	if err != nil {
		return nil, fmt.Errorf("country lookup: %w", err)
	}
	return countries, nil
}

func (s *Service) emitSearch(ctx context.Context, c models.FilterCriteria, resp models.SearchResponse, elapsed time.Duration) {
	event := activity.NewEvent(ctx, activity.KindSearch)
	event.Query = c.Query
	event.Mode = c.Mode
	event.Total = resp.Total
	event.Success = resp.Success
	event.DurationMS = elapsed.Milliseconds()
	s.activity.Emit(event)
}
