package suppliers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/khohang/khohang/internal/store"
)

func newSupplierRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, NewService(store.NewMemory[Supplier]()))

	r := chi.NewRouter()
	r.Route("/suppliers", handler.MountRoutes)
	return r
}

func TestSupplierEndpoints(t *testing.T) {
	router := newSupplierRouter(t)

	raw, err := json.Marshal(map[string]string{
		"name": "Công ty TNHH ABC", "contact": "0901234567", "address": "Quận 1, TP.HCM",
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/suppliers", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var created Supplier
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, int64(1), created.ID)

	req = httptest.NewRequest(http.MethodGet, "/suppliers", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []Supplier
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
}

func TestSupplierCreateRejectsMissingFields(t *testing.T) {
	router := newSupplierRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/suppliers", bytes.NewReader([]byte(`{"name":"only name"}`)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
