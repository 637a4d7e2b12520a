package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/rmeucci/portfolio-bff-go/internal/domain"
)

// ============================================================
// Shared helper functions
// ============================================================

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// confirmed reports whether the request carries the explicit
// confirmation flag every mutation requires.
func confirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}

func parsePagination(r *http.Request, defaultSize int) domain.PageSpec {
	spec := domain.PageSpec{Page: 1, Size: defaultSize}
	if v := r.URL.Query().Get("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			spec.Page = p
		}
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		if ps, err := strconv.Atoi(v); err == nil && ps > 0 && ps <= 500 {
			spec.Size = ps
		}
	}
	return spec
}

func parseSort(r *http.Request) domain.SortSpec {
	spec := domain.SortSpec{
		Key:       r.URL.Query().Get("sort"),
		Direction: domain.SortAsc,
	}
	if r.URL.Query().Get("dir") == domain.SortDesc {
		spec.Direction = domain.SortDesc
	}
	return spec
}

// viewParams names the filterable columns of one table, used to map
// query parameters onto a FilterSpec.
type viewParams struct {
	text   []string
	number []string
	date   []string
}

func parseFilter(r *http.Request, p viewParams) domain.FilterSpec {
	q := r.URL.Query()
	spec := domain.FilterSpec{Global: q.Get("global")}

	for _, field := range p.text {
		if v := q.Get(field); v != "" {
			if spec.Text == nil {
				spec.Text = make(map[string]string)
			}
			spec.Text[field] = v
		}
	}
	for _, field := range p.number {
		var rng domain.NumberRange
		if v := q.Get(field + "_min"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				rng.Min = &f
			}
		}
		if v := q.Get(field + "_max"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				rng.Max = &f
			}
		}
		if rng.Min != nil || rng.Max != nil {
			if spec.Number == nil {
				spec.Number = make(map[string]domain.NumberRange)
			}
			spec.Number[field] = rng
		}
	}
	for _, field := range p.date {
		rng := domain.DateRange{
			From: q.Get(field + "_from"),
			To:   q.Get(field + "_to"),
		}
		if rng.From != "" || rng.To != "" {
			if spec.Date == nil {
				spec.Date = make(map[string]domain.DateRange)
			}
			spec.Date[field] = rng
		}
	}
	return spec
}

// handleServiceError maps domain errors to HTTP responses.
func handleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	var notFound *domain.ErrNotFound
	var alreadyDeleted *domain.ErrAlreadyDeleted
	var validation *domain.ErrValidation
	var formValidation *domain.ErrFormValidation
	var fetch *domain.ErrFetch
	var mutation *domain.ErrMutation
	var external *domain.ErrExternalService
	var circuitOpen *domain.ErrCircuitOpen

	switch {
	case errors.As(err, &notFound):
		logger.Debug("not found", zap.String("error", err.Error()))
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &alreadyDeleted):
		logger.Debug("already deleted", zap.String("error", err.Error()))
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &validation):
		logger.Debug("validation error", zap.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &formValidation):
		logger.Debug("form validation error", zap.Int("fields", len(formValidation.Fields)))
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  err.Error(),
			Fields: formValidation.Fields,
		})
	case errors.As(err, &fetch):
		logger.Error("backend fetch failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.As(err, &mutation):
		logger.Error("backend mutation failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.As(err, &external):
		logger.Error("external service error", zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.As(err, &circuitOpen):
		logger.Error("circuit breaker open", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		logger.Error("unhandled error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
