package handler

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rmeucci/portfolio-bff-go/internal/domain"
	"github.com/rmeucci/portfolio-bff-go/internal/service"
)

func entryPreviewHandler(svc *service.EntryService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form domain.EntryForm
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		result, err := svc.Preview(r.Context(), form)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func entrySaveHandler(svc *service.EntryService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form domain.EntryForm
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		result, err := svc.Save(r.Context(), form)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, result)
	}
}

func listVisibleAssetsHandler(svc *service.EntryService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assets, err := svc.ListVisibleAssets(r.Context())
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, assets)
	}
}

func guessAssetHandler(svc *service.EntryService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		symbol := r.URL.Query().Get("symbol")
		if symbol == "" {
			writeError(w, http.StatusBadRequest, "symbol is required")
			return
		}
		guess, err := svc.GuessAsset(r.Context(), symbol)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, guess)
	}
}

func lastPurchaseMetaHandler(svc *service.EntryService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		symbol, err := url.PathUnescape(chi.URLParam(r, "symbol"))
		if err != nil || symbol == "" {
			writeError(w, http.StatusBadRequest, "invalid symbol")
			return
		}
		meta, err := svc.LastPurchaseMeta(r.Context(), symbol)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, meta)
	}
}

func createAssetHandler(svc *service.EntryService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var asset domain.Asset
		if err := json.NewDecoder(r.Body).Decode(&asset); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		saved, err := svc.CreateAsset(r.Context(), asset)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, saved)
	}
}

func listWalletsHandler(ops *service.OperationsTable, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wallets, err := ops.ListWallets(r.Context())
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, wallets)
	}
}

func createWalletHandler(svc *service.EntryService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		wallet, err := svc.CreateWallet(r.Context(), req.Name)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, wallet)
	}
}
