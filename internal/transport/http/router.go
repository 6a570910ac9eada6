// Package httptransport assembles the HTTP surface: middleware chain, health
// and metrics endpoints, and the versioned API routes. Business logic stays in
// the per-module services.
package httptransport

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhandler "tradeintel/internal/auth/handler"
	"tradeintel/internal/platform/middleware"
	"tradeintel/internal/platform/redis"
	searchhandler "tradeintel/internal/search/handler"
	"tradeintel/pkg/platform/httputil"
	"tradeintel/pkg/platform/middleware/metadata"
	"tradeintel/pkg/platform/middleware/requesttime"
)

// Deps carries everything the router mounts.
type Deps struct {
	Logger *slog.Logger
	Search *searchhandler.Handler
	Auth   *authhandler.Handler
	// TokenValidator guards the search routes; nil disables auth (local dev).
	TokenValidator middleware.TokenValidator
	// AdminToken guards /admin routes; empty disables them.
	AdminToken string
	// DB and Redis are probed by /healthz; either may be nil.
	DB    *sql.DB
	Redis *redis.Client
}

// NewRouter wires all endpoints.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(metadata.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)

	r.Get("/healthz", healthHandler(deps))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		deps.Auth.Register(r)

		r.Group(func(r chi.Router) {
			if deps.TokenValidator != nil {
				r.Use(middleware.RequireAuth(deps.TokenValidator, deps.Logger))
			}
			deps.Search.Register(r)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdminToken(deps.AdminToken, deps.Logger))
		deps.Auth.RegisterAdmin(r)
	})

	return r
}

func healthHandler(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		health := map[string]string{"status": "ok"}

		if deps.DB != nil {
			if err := deps.DB.PingContext(ctx); err != nil {
				health["postgres"] = "error"
				health["status"] = "degraded"
				status = http.StatusServiceUnavailable
			} else {
				health["postgres"] = "ok"
			}
		}
		if deps.Redis != nil {
			if err := deps.Redis.Health(ctx); err != nil {
				health["redis"] = "error"
			} else {
				health["redis"] = "ok"
			}
		}

		httputil.WriteJSON(w, status, health)
	}
}
