package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/khohang/khohang/internal/ai"
	"github.com/khohang/khohang/internal/auth"
	"github.com/khohang/khohang/internal/dashboard"
	"github.com/khohang/khohang/internal/inventory"
	"github.com/khohang/khohang/internal/observability"
	"github.com/khohang/khohang/internal/suppliers"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	AuthHandler      *auth.Handler
	SupplierHandler  *suppliers.Handler
	InventoryHandler *inventory.Handler
	DashboardHandler *dashboard.Handler
	AIHandler        *ai.Handler
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router with KhoHang defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message":"N3T KhoHang API is running"}`))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		params.AuthHandler.MountRoutes(r)
	})
	r.Route("/suppliers", func(r chi.Router) {
		params.SupplierHandler.MountRoutes(r)
	})
	r.Route("/items", func(r chi.Router) {
		params.InventoryHandler.MountItemRoutes(r)
	})
	r.Route("/stock", func(r chi.Router) {
		params.InventoryHandler.MountTransactionRoutes(r)
	})
	r.Route("/dashboard", func(r chi.Router) {
		params.DashboardHandler.MountRoutes(r)
	})
	r.Route("/ai", func(r chi.Router) {
		params.AIHandler.MountRoutes(r)
	})

	return r
}
