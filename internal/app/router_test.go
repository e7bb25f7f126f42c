package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/khohang/khohang/internal/ai"
	"github.com/khohang/khohang/internal/auth"
	"github.com/khohang/khohang/internal/dashboard"
	"github.com/khohang/khohang/internal/inventory"
	"github.com/khohang/khohang/internal/observability"
	"github.com/khohang/khohang/internal/store"
	"github.com/khohang/khohang/internal/suppliers"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &Config{AppEnv: "test", CORSAllowOrigins: []string{"*"}}

	inventoryService := inventory.NewService(
		store.NewMemory[inventory.Item](),
		store.NewMemory[inventory.StockTransaction](),
	)

	return NewRouter(RouterParams{
		Logger:           logger,
		Config:           cfg,
		AuthHandler:      auth.NewHandler(logger, auth.NewClient("http://127.0.0.1:1", "test-key")),
		SupplierHandler:  suppliers.NewHandler(logger, suppliers.NewService(store.NewMemory[suppliers.Supplier]())),
		InventoryHandler: inventory.NewHandler(logger, inventoryService),
		DashboardHandler: dashboard.NewHandler(logger, dashboard.NewService(inventoryService)),
		AIHandler:        ai.NewHandler(logger, ai.NewClient("", "", "")),
		Metrics:          observability.NewMetrics(),
	})
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRootBanner(t *testing.T) {
	rec := get(t, newTestRouter(t), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "KhoHang API is running")
}

func TestHealthz(t *testing.T) {
	rec := get(t, newTestRouter(t), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetricsEndpointMounted(t *testing.T) {
	rec := get(t, newTestRouter(t), "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestDashboardStatsEmpty(t *testing.T) {
	rec := get(t, newTestRouter(t), "/dashboard/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t,
		`{"total_items":0,"low_stock_count":0,"total_value":0,"recent_transactions":[]}`,
		rec.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	rec := get(t, newTestRouter(t), "/does-not-exist")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
