package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rmeucci/portfolio-bff-go/internal/service"
)

// Filterable columns per table, mapped from query parameters.
var operationViewParams = viewParams{
	text:   []string{"operation_type", "asset_symbol", "wallet_id", "user", "broker", "purchase_currency", "comment"},
	number: []string{"quantity", "fees", "price_manual"},
	date:   []string{"date"},
}

var assetViewParams = viewParams{
	text: []string{"symbol", "name", "currency", "type", "category", "isin"},
}

func viewHandler[T any](svc *service.TableService[T], params viewParams, defaultPageSize int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := parseFilter(r, params)
		sort := parseSort(r)
		page := parsePagination(r, defaultPageSize)

		writeJSON(w, http.StatusOK, svc.View(r.Context(), filter, sort, page))
	}
}

func startEditHandler[T any](svc *service.TableService[T], logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid record id")
			return
		}
		if err := svc.StartEdit(id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		draft, _ := svc.Draft()
		writeJSON(w, http.StatusOK, draft)
	}
}

// draftRequest is one or more field writes against the current draft.
type draftRequest struct {
	Fields map[string]any `json:"fields"`
}

func changeDraftHandler[T any](svc *service.TableService[T], logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req draftRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		for field, value := range req.Fields {
			if err := svc.ChangeField(field, value); err != nil {
				handleServiceError(w, err, logger)
				return
			}
		}
		draft, ok := svc.Draft()
		if !ok {
			writeError(w, http.StatusBadRequest, "no record is being edited")
			return
		}
		writeJSON(w, http.StatusOK, draft)
	}
}

func cancelEditHandler[T any](svc *service.TableService[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.CancelEdit()
		w.WriteHeader(http.StatusNoContent)
	}
}

func saveHandler[T any](svc *service.TableService[T], logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		saved, err := svc.Save(r.Context(), confirmed(r))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, saved)
	}
}

func duplicateHandler[T any](svc *service.TableService[T], logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid record id")
			return
		}
		rec, err := svc.Duplicate(r.Context(), id, confirmed(r))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, rec)
	}
}

func deleteHandler[T any](svc *service.TableService[T], logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid record id")
			return
		}
		if err := svc.Remove(r.Context(), id, confirmed(r)); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// refreshHandler reloads a table from the backend. A failed load left
// the cache empty; this is also how the view recovers from it.
func refreshHandler(load func(r *http.Request) error, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := load(r); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
