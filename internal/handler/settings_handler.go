package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rmeucci/portfolio-bff-go/internal/settings"
)

func listSettingsHandler(store *settings.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.All())
	}
}

func getSettingHandler(store *settings.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		writeJSON(w, http.StatusOK, map[string]string{
			"key":   key,
			"value": store.Get(key),
		})
	}
}

func putSettingHandler(store *settings.Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		var req struct {
			Value string `json:"value"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := store.Set(key, req.Value); err != nil {
			logger.Error("persist setting failed",
				zap.String("key", key),
				zap.Error(err),
			)
			writeError(w, http.StatusInternalServerError, "failed to persist setting")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"key":   key,
			"value": req.Value,
		})
	}
}
