package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeintel/internal/search/models"
	"tradeintel/internal/search/service"
	"tradeintel/internal/search/store"
)

// lookupFailure makes the lookup endpoints fail while search keeps working.
type lookupFailure struct {
	Service
}

func (lookupFailure) Companies(ctx context.Context, q string, limit int) ([]models.Company, error) {
	return nil, errors.New("record store is down")
}

func (lookupFailure) Countries(ctx context.Context) ([]string, error) {
	return nil, errors.New("record store is down")
}

func newTestRouter(t *testing.T, svc Service) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	New(svc, logger).Register(r)
	return r
}

func newTestService() *service.Service {
	memory := store.NewInMemory()
	memory.SeedShipments([]models.ShipmentRecord{
		{ID: "sh-1", Mode: models.ModeAir, ShipmentDate: "2024-03-10", CompanyName: "Acme Electronics",
			OriginCountry: "China", DestinationCountry: "USA", ValueUSD: 20000, Description: "laptops"},
		{ID: "sh-2", Mode: models.ModeOcean, ShipmentDate: "2024-05-01", CompanyName: "Baltic Traders",
			OriginCountry: "Germany", DestinationCountry: "USA", ValueUSD: 8000, Description: "furniture"},
	})
	memory.SeedCompanies([]models.Company{
		{ID: "co-1", Name: "Acme Electronics", Country: "China"},
		{ID: "co-2", Name: "Baltic Traders", Country: "Germany"},
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.New(memory, logger)
}

func TestHandleSearch(t *testing.T) {
	router := newTestRouter(t, newTestService())

	t.Run("returns the full response shape", func(t *testing.T) {
		body := bytes.NewBufferString(`{"mode": "ocean"}`)
		req := httptest.NewRequest(http.MethodPost, "/search", body)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp models.SearchResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, 1, resp.Total)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "sh-2", resp.Data[0].ID)
		assert.Equal(t, models.DefaultLimit, resp.Pagination.Limit)
		assert.False(t, resp.Pagination.HasMore)
	})

	t.Run("empty body means no filters", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(""))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp models.SearchResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, 2, resp.Total)
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error": "invalid_request"}`, rec.Body.String())
	})

	t.Run("store-level failure still answers 200", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		failing := service.New(failingDownStore{}, logger)
		router := newTestRouter(t, failing)

		req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"limit": 10}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp models.SearchResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.NotNil(t, resp.Data)
		assert.Empty(t, resp.Data)
		assert.Equal(t, 10, resp.Pagination.Limit)
	})
}

func TestHandleCompanies(t *testing.T) {
	router := newTestRouter(t, newTestService())

	t.Run("substring lookup", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/companies?q=baltic", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp listResponse[models.Company]
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "Baltic Traders", resp.Data[0].Name)
	})

	t.Run("non-numeric limit falls back to the default", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/companies?q=a&limit=lots", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp listResponse[models.Company]
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
	})

	t.Run("lookup failure answers 200 with an empty list", func(t *testing.T) {
		router := newTestRouter(t, lookupFailure{Service: newTestService()})

		req := httptest.NewRequest(http.MethodGet, "/companies?q=baltic", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success": false, "data": []}`, rec.Body.String())
	})
}

func TestHandleCountries(t *testing.T) {
	t.Run("sorted deduplicated union", func(t *testing.T) {
		router := newTestRouter(t, newTestService())

		req := httptest.NewRequest(http.MethodGet, "/countries", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp listResponse[string]
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, []string{"China", "Germany", "USA"}, resp.Data)
	})

	t.Run("lookup failure answers 200 with an empty list", func(t *testing.T) {
		router := newTestRouter(t, lookupFailure{Service: newTestService()})

		req := httptest.NewRequest(http.MethodGet, "/countries", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success": false, "data": []}`, rec.Body.String())
	})
}

// failingDownStore fails every store operation.
type failingDownStore struct{}

func (failingDownStore) Search(ctx context.Context, c models.FilterCriteria) ([]models.ShipmentRecord, int, error) {
	return nil, 0, errors.New("record store is down")
}

func (failingDownStore) Summarize(ctx context.Context, c models.FilterCriteria) (models.Summary, error) {
	return models.Summary{}, errors.New("record store is down")
}

func (failingDownStore) Companies(ctx context.Context, q string, limit int) ([]models.Company, error) {
	return nil, errors.New("record store is down")
}

func (failingDownStore) Countries(ctx context.Context) ([]string, error) {
	return nil, errors.New("record store is down")
}
