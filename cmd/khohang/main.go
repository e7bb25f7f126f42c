package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/khohang/khohang/internal/ai"
	"github.com/khohang/khohang/internal/app"
	"github.com/khohang/khohang/internal/auth"
	"github.com/khohang/khohang/internal/dashboard"
	"github.com/khohang/khohang/internal/inventory"
	"github.com/khohang/khohang/internal/observability"
	"github.com/khohang/khohang/internal/store"
	"github.com/khohang/khohang/internal/suppliers"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	var (
		supplierStore store.Store[suppliers.Supplier]
		itemStore     store.Store[inventory.Item]
		txStore       store.Store[inventory.StockTransaction]
	)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Error("redis ping", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
		supplierStore = store.NewRedis[suppliers.Supplier](redisClient, "khohang:suppliers")
		itemStore = store.NewRedis[inventory.Item](redisClient, "khohang:items")
		txStore = store.NewRedis[inventory.StockTransaction](redisClient, "khohang:transactions")
		logger.Info("using redis store backend", slog.String("addr", cfg.RedisAddr))
	} else {
		supplierStore = store.NewMemory[suppliers.Supplier]()
		itemStore = store.NewMemory[inventory.Item]()
		txStore = store.NewMemory[inventory.StockTransaction]()
	}

	supplierService := suppliers.NewService(supplierStore)
	supplierHandler := suppliers.NewHandler(logger, supplierService)

	inventoryService := inventory.NewService(itemStore, txStore)
	inventoryHandler := inventory.NewHandler(logger, inventoryService)

	dashboardService := dashboard.NewService(inventoryService)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService)

	authClient := auth.NewClient(cfg.FirebaseBaseURL, cfg.FirebaseAPIKey)
	authHandler := auth.NewHandler(logger, authClient)

	aiClient := ai.NewClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel)
	if !aiClient.IsConfigured() {
		logger.Warn("gemini api key is not set, /ai endpoints will return 501")
	}
	aiHandler := ai.NewHandler(logger, aiClient)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		AuthHandler:      authHandler,
		SupplierHandler:  supplierHandler,
		InventoryHandler: inventoryHandler,
		DashboardHandler: dashboardHandler,
		AIHandler:        aiHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
