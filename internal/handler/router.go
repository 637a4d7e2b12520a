// Package handler exposes the record-table controllers and the entry
// flow to the view layer over HTTP.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/rmeucci/portfolio-bff-go/internal/domain"
	"github.com/rmeucci/portfolio-bff-go/internal/infra/observability"
	"github.com/rmeucci/portfolio-bff-go/internal/service"
	"github.com/rmeucci/portfolio-bff-go/internal/settings"
)

// Options tunes router behavior.
type Options struct {
	DefaultPageSize int
}

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(
	ops *service.OperationsTable,
	assets *service.TableService[domain.Asset],
	entry *service.EntryService,
	prefs *settings.Store,
	metrics *observability.Metrics,
	logger *zap.Logger,
	opts Options,
) http.Handler {
	if opts.DefaultPageSize < 1 {
		opts.DefaultPageSize = 15
	}

	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// Operations table
		r.Route("/operations", func(r chi.Router) {
			r.Get("/view", viewHandler(ops.TableService, operationViewParams, opts.DefaultPageSize))
			r.Post("/{id}/edit", startEditHandler(ops.TableService, logger))
			r.Put("/draft", changeDraftHandler(ops.TableService, logger))
			r.Delete("/edit", cancelEditHandler(ops.TableService))
			r.Post("/save", saveHandler(ops.TableService, logger))
			r.Post("/{id}/duplicate", duplicateHandler(ops.TableService, logger))
			r.Delete("/{id}", deleteHandler(ops.TableService, logger))
			r.Post("/refresh", refreshHandler(func(req *http.Request) error {
				return ops.Load(req.Context())
			}, logger))
		})

		// Assets table (no server-side duplication)
		r.Route("/assets", func(r chi.Router) {
			r.Get("/view", viewHandler(assets, assetViewParams, opts.DefaultPageSize))
			r.Post("/{id}/edit", startEditHandler(assets, logger))
			r.Put("/draft", changeDraftHandler(assets, logger))
			r.Delete("/edit", cancelEditHandler(assets))
			r.Post("/save", saveHandler(assets, logger))
			r.Delete("/{id}", deleteHandler(assets, logger))
			r.Post("/refresh", refreshHandler(func(req *http.Request) error {
				return assets.Load(req.Context())
			}, logger))
		})

		// Operation entry flow
		r.Route("/entry", func(r chi.Router) {
			r.Post("/preview", entryPreviewHandler(entry, logger))
			r.Post("/save", entrySaveHandler(entry, logger))
			r.Get("/assets", listVisibleAssetsHandler(entry, logger))
			r.Post("/assets", createAssetHandler(entry, logger))
			r.Get("/assets/guess", guessAssetHandler(entry, logger))
			r.Get("/assets/{symbol}/last-purchase-meta", lastPurchaseMetaHandler(entry, logger))
			r.Get("/wallets", listWalletsHandler(ops, logger))
			r.Post("/wallets", createWalletHandler(entry, logger))
		})

		// UI settings
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", listSettingsHandler(prefs))
			r.Get("/{key}", getSettingHandler(prefs))
			r.Put("/{key}", putSettingHandler(prefs, logger))
		})

		// Metrics snapshot
		r.Get("/metrics/table", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, metrics.GetTableSnapshot([]string{"operations", "assets"}))
		})

		// Reload everything from the backend
		r.Post("/cache/refresh", refreshHandler(func(req *http.Request) error {
			if err := ops.Load(req.Context()); err != nil {
				return err
			}
			return assets.Load(req.Context())
		}, logger))
	})

	return r
}

// readyzHandler reports readiness. The process serves views from its
// cache even when the backend is down, so readiness does not probe it.
func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
