package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"tradeintel/internal/platform/redis"
	"tradeintel/internal/search/metrics"
	"tradeintel/internal/search/models"
)

// Backend is the full record-store surface the cache decorates.
type Backend interface {
	Search(ctx context.Context, c models.FilterCriteria) ([]models.ShipmentRecord, int, error)
	Summarize(ctx context.Context, c models.FilterCriteria) (models.Summary, error)
	Companies(ctx context.Context, q string, limit int) ([]models.Company, error)
	Countries(ctx context.Context) ([]string, error)
}

const countriesCacheKey = "tradeintel:countries"

// CountriesCache is a cache-aside wrapper for the distinct-country lookup,
// which otherwise scans the shipments table on every call. Cache failures
// never block the lookup; the store scan is the fallback.
type CountriesCache struct {
	Backend
	client  *redis.Client
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// WithCountriesCache wraps inner with a Redis cache for Countries. Returns
// inner unchanged when Redis is not configured, preserving the direct-scan
// behavior.
func WithCountriesCache(inner Backend, client *redis.Client, ttl time.Duration, logger *slog.Logger, m *metrics.Metrics) Backend {
	if client == nil {
		return inner
	}
	return &CountriesCache{
		Backend: inner,
		client:  client,
		ttl:     ttl,
		logger:  logger,
		metrics: m,
	}
}

// Countries serves the country list from Redis when fresh, falling back to the
// underlying store and repopulating the cache on a miss.
func (c *CountriesCache) Countries(ctx context.Context) ([]string, error) {
	cached, err := c.client.Get(ctx, countriesCacheKey).Result()
	if err == nil {
		var countries []string
		if jsonErr := json.Unmarshal([]byte(cached), &countries); jsonErr == nil {
			c.metrics.RecordCountriesCache(true)
			return countries, nil
		}
		// Corrupt entry; fall through and overwrite it.
	} else if !errors.Is(err, goredis.Nil) {
		c.logger.WarnContext(ctx, "countries cache read failed", "error", err)
	}
	c.metrics.RecordCountriesCache(false)

	countries, err := c.Backend.Countries(ctx)
	if err != nil {
		return nil, err
	}

	if payload, jsonErr := json.Marshal(countries); jsonErr == nil {
		if setErr := c.client.Set(ctx, countriesCacheKey, payload, c.ttl).Err(); setErr != nil {
			c.logger.WarnContext(ctx, "countries cache write failed", "error", setErr)
		}
	}
	return countries, nil
}
