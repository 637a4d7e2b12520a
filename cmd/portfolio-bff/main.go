package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rmeucci/portfolio-bff-go/internal/config"
	"github.com/rmeucci/portfolio-bff-go/internal/handler"
	"github.com/rmeucci/portfolio-bff-go/internal/infra/cache"
	"github.com/rmeucci/portfolio-bff-go/internal/infra/client"
	"github.com/rmeucci/portfolio-bff-go/internal/infra/observability"
	"github.com/rmeucci/portfolio-bff-go/internal/infra/resilience"
	"github.com/rmeucci/portfolio-bff-go/internal/service"
	"github.com/rmeucci/portfolio-bff-go/internal/settings"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("backend_api_url", cfg.BackendAPIURL),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("wallet_cache_ttl", cfg.WalletCacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Int("default_page_size", cfg.DefaultPageSize),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "portfolio-bff")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Caches ---
	walletNames := cache.New[string](cfg.WalletCacheTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("portfolio-backend")

	// --- Backend client ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	backend := client.NewClient(httpClient, cfg.BackendAPIURL, cb, resilienceCfg, logger)

	// --- Settings store ---
	prefs, err := settings.Open(cfg.SettingsDBPath)
	if err != nil {
		logger.Fatal("failed to open settings store", zap.Error(err))
	}
	defer prefs.Close()

	// --- Services ---
	opsSvc := service.NewOperationsTable(
		backend.Operations(),
		backend.Operations(),
		backend,
		walletNames,
		metrics,
		logger,
	)
	assetsSvc := service.NewAssetsTable(backend.Assets(), metrics, logger)
	entrySvc := service.NewEntryService(backend, backend, backend, backend, opsSvc, metrics, logger)

	// Initial load; a failure leaves empty tables and the refresh
	// endpoint recovers.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.HTTPTimeout)
	if err := opsSvc.Load(loadCtx); err != nil {
		logger.Warn("initial operations load failed", zap.Error(err))
	}
	if err := assetsSvc.Load(loadCtx); err != nil {
		logger.Warn("initial assets load failed", zap.Error(err))
	}
	cancelLoad()

	// --- Router ---
	router := handler.NewRouter(opsSvc, assetsSvc, entrySvc, prefs, metrics, logger, handler.Options{
		DefaultPageSize: cfg.DefaultPageSize,
	})

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
