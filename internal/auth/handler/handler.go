package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"tradeintel/internal/auth"
	"tradeintel/internal/auth/service"
	"tradeintel/pkg/platform/httputil"
	"tradeintel/pkg/requestcontext"
)

// Service defines the interface for auth operations.
type Service interface {
	Authenticate(ctx context.Context, keyID, secret string) (string, time.Duration, error)
	CreateKey(ctx context.Context, name string) (*auth.APIKey, string, error)
}

// Handler wires auth endpoints to the auth service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an auth handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the public token endpoint.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/token", h.HandleToken)
}

// RegisterAdmin mounts the key-minting endpoint; the router guards it with the
// admin token middleware.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/admin/keys", h.HandleCreateKey)
}

type tokenRequest struct {
	KeyID  string `json:"key_id"`
	Secret string `json:"secret"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// HandleToken handles POST /auth/token requests.
func (h *Handler) HandleToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if req.KeyID == "" || req.Secret == "" {
		httputil.WriteError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	token, ttl, err := h.service.Authenticate(ctx, req.KeyID, req.Secret)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		h.logger.ErrorContext(ctx, "token issue failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, http.StatusInternalServerError, "internal")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(ttl.Seconds()),
	})
}

type createKeyRequest struct {
	Name string `json:"name"`
}

type createKeyResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Secret string `json:"secret"`
}

// HandleCreateKey handles POST /admin/keys requests.
func (h *Handler) HandleCreateKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		httputil.WriteError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	key, secret, err := h.service.CreateKey(ctx, req.Name)
	if err != nil {
		h.logger.ErrorContext(ctx, "api key creation failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, http.StatusInternalServerError, "internal")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, createKeyResponse{
		ID:     key.ID,
		Name:   key.Name,
		Secret: secret,
	})
}
