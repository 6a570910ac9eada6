package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tradeintel/internal/search/models"
	"tradeintel/pkg/platform/httputil"
	"tradeintel/pkg/requestcontext"
)

// Service defines the interface for search operations.
type Service interface {
	Search(ctx context.Context, criteria models.FilterCriteria) models.SearchResponse
	Companies(ctx context.Context, q string, limit int) ([]models.Company, error)
	Countries(ctx context.Context) ([]string, error)
}

// Handler wires search endpoints to the search service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a search handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts search endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/search", h.HandleSearch)
	r.Get("/companies", h.HandleCompanies)
	r.Get("/countries", h.HandleCountries)
}

// listResponse is the envelope for the lookup endpoints.
type listResponse[T any] struct {
	Success bool `json:"success"`
	Data    []T  `json:"data"`
}

// HandleSearch handles POST /search. The response is always the uniform
// search shape with HTTP 200; callers inspect the success flag. Only a
// malformed request body is rejected outright.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var criteria models.FilterCriteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil && !errors.Is(err, io.EOF) {
		h.logger.WarnContext(ctx, "malformed search request",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, h.service.Search(ctx, criteria))
}

// HandleCompanies handles GET /companies?q=&limit=.
func (h *Handler) HandleCompanies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query().Get("q")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	companies, err := h.service.Companies(ctx, q, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "company lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"query", q,
			"error", err,
		)
		httputil.WriteJSON(w, http.StatusOK, listResponse[models.Company]{Success: false, Data: []models.Company{}})
		return
	}
	if companies == nil {
		companies = []models.Company{}
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse[models.Company]{Success: true, Data: companies})
}

// HandleCountries handles GET /countries.
func (h *Handler) HandleCountries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	countries, err := h.service.Countries(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "country lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteJSON(w, http.StatusOK, listResponse[string]{Success: false, Data: []string{}})
		return
	}
	if countries == nil {
		countries = []string{}
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse[string]{Success: true, Data: countries})
}
