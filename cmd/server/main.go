package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"tradeintel/internal/activity"
	authhandler "tradeintel/internal/auth/handler"
	authservice "tradeintel/internal/auth/service"
	authstore "tradeintel/internal/auth/store"
	"tradeintel/internal/jwttoken"
	"tradeintel/internal/platform/config"
	"tradeintel/internal/platform/httpserver"
	"tradeintel/internal/platform/logger"
	"tradeintel/internal/platform/middleware"
	"tradeintel/internal/platform/postgres"
	"tradeintel/internal/platform/redis"
	searchhandler "tradeintel/internal/search/handler"
	"tradeintel/internal/search/metrics"
	searchservice "tradeintel/internal/search/service"
	searchstore "tradeintel/internal/search/store"
	httptransport "tradeintel/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal services.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}

	redisClient, err := redis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	searchMetrics := metrics.New()

	// Without a database the service runs against empty in-memory stores,
	// which keeps local development and smoke tests dependency-free.
	var backend searchstore.Backend
	var keyStore authservice.KeyStore
	if db != nil {
		backend = searchstore.NewPostgres(db)
		keyStore = authstore.NewPostgres(db)
	} else {
		log.Warn("no DATABASE_URL configured, using in-memory stores")
		backend = searchstore.NewInMemory()
		keyStore = authstore.NewInMemory()
	}
	backend = searchstore.WithCountriesCache(backend, redisClient, cfg.CountriesCacheTTL, log, searchMetrics)

	publisher, sinkClose := startActivity(ctx, cfg, log)
	defer sinkClose()

	searchSvc := searchservice.New(backend, log,
		searchservice.WithMetrics(searchMetrics),
		searchservice.WithSummaryScope(cfg.SummaryScope),
		searchservice.WithActivity(publisher),
	)

	tokens := jwttoken.New(cfg.JWTSigningKey, "tradeintel", cfg.TokenTTL)
	authSvc := authservice.New(keyStore, tokens, log)

	var validator middleware.TokenValidator
	if !cfg.AuthDisabled {
		validator = tokens
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:         log,
		Search:         searchhandler.New(searchSvc, log),
		Auth:           authhandler.New(authSvc, log),
		TokenValidator: validator,
		AdminToken:     cfg.AdminToken,
		DB:             db,
		Redis:          redisClient,
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting tradeintel", "addr", cfg.Addr, "summary_scope", string(cfg.SummaryScope))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

// startActivity wires the activity pipeline when Kafka is configured.
// Returns a nil publisher otherwise, which every Emit call tolerates.
func startActivity(ctx context.Context, cfg config.Server, log *slog.Logger) (*activity.Publisher, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		return nil, func() {}
	}

	sink, err := activity.NewKafkaSink(ctx, cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		log.Error("kafka sink unavailable, activity disabled", "error", err)
		return nil, func() {}
	}

	publisher := activity.NewPublisher(1024)
	worker := activity.NewWorker(sink, publisher.Inbox(), log)
	go func() {
		_ = worker.Run(ctx)
	}()

	log.Info("activity pipeline started", "topic", cfg.KafkaTopic)
	return publisher, sink.Close
}
