package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// SummaryScope selects which filter population the search summary describes.
type SummaryScope string

const (
	// SummaryScopeLegacy reapplies only the free-text filter when computing the
	// summary, matching the behavior callers have depended on historically.
	SummaryScopeLegacy SummaryScope = "legacy"
	// SummaryScopeFiltered computes the summary over the same filtered
	// population as the returned page.
	SummaryScopeFiltered SummaryScope = "filtered"
)

// Server captures process level configuration.
type Server struct {
	Addr              string
	DatabaseURL       string
	RedisURL          string
	KafkaBrokers      []string
	KafkaTopic        string
	JWTSigningKey     string
	AdminToken        string
	AuthDisabled      bool
	SummaryScope      SummaryScope
	CountriesCacheTTL time.Duration
	TokenTTL          time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("TRADEINTEL_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	scope := SummaryScopeLegacy
	if SummaryScope(os.Getenv("SUMMARY_SCOPE")) == SummaryScopeFiltered {
		scope = SummaryScopeFiltered
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}
	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		topic = "tradeintel.search-activity"
	}

	return Server{
		Addr:              addr,
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		KafkaBrokers:      brokers,
		KafkaTopic:        topic,
		JWTSigningKey:     jwtSigningKey,
		AdminToken:        os.Getenv("ADMIN_TOKEN"),
		AuthDisabled:      os.Getenv("AUTH_DISABLED") == "true",
		SummaryScope:      scope,
		CountriesCacheTTL: durationEnv("COUNTRIES_CACHE_TTL", 5*time.Minute),
		TokenTTL:          durationEnv("TOKEN_TTL", time.Hour),
	}
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	// Bare integers are treated as seconds.
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
