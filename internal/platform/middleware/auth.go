package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"tradeintel/internal/jwttoken"
	"tradeintel/pkg/platform/httputil"
	"tradeintel/pkg/requestcontext"
)

// TokenValidator defines the interface for validating access tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (*jwttoken.Claims, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// authenticated API key ID in the request context.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(r.Context(), "rejected access token",
					"request_id", requestcontext.RequestID(r.Context()),
					"error", err,
				)
				httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := requestcontext.WithAPIKeyID(r.Context(), claims.APIKeyID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdminToken guards operator endpoints with a shared static token
// supplied in the X-Admin-Token header.
func RequireAdminToken(adminToken string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminToken == "" {
				httputil.WriteError(w, http.StatusForbidden, "forbidden")
				return
			}
			supplied := r.Header.Get("X-Admin-Token")
			if subtle.ConstantTimeCompare([]byte(supplied), []byte(adminToken)) != 1 {
				logger.WarnContext(r.Context(), "rejected admin token",
					"request_id", requestcontext.RequestID(r.Context()),
				)
				httputil.WriteError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
