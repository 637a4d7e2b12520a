// Package service implements the record-table controllers and the
// operation-entry flow on top of the backend client and the table core.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/rmeucci/portfolio-bff-go/internal/domain"
	"github.com/rmeucci/portfolio-bff-go/internal/infra/observability"
	"github.com/rmeucci/portfolio-bff-go/internal/port"
	"github.com/rmeucci/portfolio-bff-go/internal/table"
)

var tracer = otel.Tracer("service")

// TableService is the controller for one record table: it owns the
// cache, the draft editor, and the confirm-gated mutation flow. One
// instance serves the operations table, another the assets table.
type TableService[T any] struct {
	name    string
	store   port.RecordStore[T]
	dup     port.Duplicator[T]
	cache   *table.Cache[T]
	editor  *table.Editor[T]
	schema  table.Schema[T]
	id      func(T) int64
	metrics *observability.Metrics
	logger  *zap.Logger

	// viewSig detects that the filter, sort, page size, or underlying
	// record set changed since the last view, which resets paging to
	// page 1.
	mu      sync.Mutex
	viewSig string
}

// NewTableService builds a controller. dup may be nil for tables the
// backend cannot duplicate.
func NewTableService[T any](
	name string,
	store port.RecordStore[T],
	dup port.Duplicator[T],
	schema table.Schema[T],
	id func(T) int64,
	set func(*T, string, any) error,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *TableService[T] {
	return &TableService[T]{
		name:    name,
		store:   store,
		dup:     dup,
		cache:   table.NewCache(id),
		editor:  table.NewEditor(id, set),
		schema:  schema,
		id:      id,
		metrics: metrics,
		logger:  logger,
	}
}

// Name returns the table name used in logs and metrics.
func (s *TableService[T]) Name() string {
	return s.name
}

// Load replaces the cache with a fresh fetch. On failure the cache is
// cleared so the view shows an empty table, and the error surfaces.
func (s *TableService[T]) Load(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "TableService.Load")
	defer span.End()
	span.SetAttributes(attribute.String("table", s.name))

	recs, err := s.store.List(ctx)
	if err != nil {
		s.cache.Clear()
		s.metrics.IncrCacheLoad(s.name, "error")
		s.metrics.IncrBackendError(s.name)
		s.logger.Error("table load failed",
			zap.String("table", s.name),
			zap.Error(err),
		)
		return err
	}

	s.cache.Replace(recs)
	s.metrics.IncrCacheLoad(s.name, "success")
	s.logger.Info("table loaded",
		zap.String("table", s.name),
		zap.Int("records", len(recs)),
	)
	return nil
}

// View computes one page: snapshot, filter, sort, paginate. When the
// filter, sort, page size, or record set differs from the previous
// call the requested page is reset to 1.
func (s *TableService[T]) View(ctx context.Context, filter domain.FilterSpec, sort domain.SortSpec, page domain.PageSpec) domain.Page[T] {
	_, span := tracer.Start(ctx, "TableService.View")
	defer span.End()
	span.SetAttributes(attribute.String("table", s.name))

	start := time.Now()
	snapshot := s.cache.Snapshot()
	filtered := table.Filter(snapshot, s.schema, filter)
	sorted := table.Sort(filtered, s.schema, sort)

	sig := fmt.Sprintf("%+v|%+v|%d|%d", filter, sort, page.Size, s.cache.Generation())
	s.mu.Lock()
	if sig != s.viewSig {
		s.viewSig = sig
		page.Page = 1
	}
	s.mu.Unlock()

	result := table.Paginate(sorted, page)
	s.metrics.RecordViewDuration(s.name, time.Since(start))
	return result
}

// Insert appends a record created outside the table flow (entry form,
// wallet-side effects) so the view reflects it without a reload.
func (s *TableService[T]) Insert(rec T) {
	s.cache.ApplyInsert(rec)
}

// StartEdit checks a record out for editing.
func (s *TableService[T]) StartEdit(id int64) error {
	for _, rec := range s.cache.Snapshot() {
		if s.id(rec) == id {
			s.editor.StartEdit(rec)
			return nil
		}
	}
	return &domain.ErrNotFound{Resource: s.name, ID: fmt.Sprint(id)}
}

// ChangeField writes one field on the current draft.
func (s *TableService[T]) ChangeField(field string, value any) error {
	return s.editor.ChangeField(field, value)
}

// Draft returns the current draft, ok=false outside an edit.
func (s *TableService[T]) Draft() (T, bool) {
	return s.editor.Draft()
}

// CancelEdit discards the draft unconditionally.
func (s *TableService[T]) CancelEdit() {
	s.editor.Cancel()
}

// Save persists the draft. The call must be explicitly confirmed; on
// backend failure the draft is kept so the user can retry or cancel.
func (s *TableService[T]) Save(ctx context.Context, confirmed bool) (*T, error) {
	ctx, span := tracer.Start(ctx, "TableService.Save")
	defer span.End()
	span.SetAttributes(attribute.String("table", s.name))

	if !confirmed {
		return nil, &domain.ErrValidation{Field: "confirm", Message: "save requires confirmation"}
	}
	draft, ok := s.editor.Draft()
	if !ok {
		return nil, &domain.ErrValidation{Field: "draft", Message: "no record is being edited"}
	}

	saved, err := s.store.Save(ctx, draft)
	if err != nil {
		s.metrics.IncrMutation(s.name, "save", "error")
		s.metrics.IncrBackendError(s.name)
		s.logger.Error("save failed",
			zap.String("table", s.name),
			zap.Int64("id", s.id(draft)),
			zap.Error(err),
		)
		return nil, err
	}

	if !s.cache.ApplyUpdate(*saved) {
		// The record vanished between checkout and save. The remote
		// write already happened; only the local refresh is skipped.
		s.metrics.IncrUnmatchedUpdate(s.name)
		s.logger.Warn("saved record no longer in cache",
			zap.String("table", s.name),
			zap.Int64("id", s.id(*saved)),
		)
	}
	s.editor.Cancel()
	s.metrics.IncrMutation(s.name, "save", "success")
	return saved, nil
}

// Duplicate copies a record server-side and appends the new row to the
// cache.
func (s *TableService[T]) Duplicate(ctx context.Context, id int64, confirmed bool) (*T, error) {
	ctx, span := tracer.Start(ctx, "TableService.Duplicate")
	defer span.End()
	span.SetAttributes(attribute.String("table", s.name), attribute.Int64("id", id))

	if s.dup == nil {
		return nil, &domain.ErrValidation{Field: "duplicate", Message: "table does not support duplication"}
	}
	if !confirmed {
		return nil, &domain.ErrValidation{Field: "confirm", Message: "duplicate requires confirmation"}
	}

	rec, err := s.dup.Duplicate(ctx, id)
	if err != nil {
		s.metrics.IncrMutation(s.name, "duplicate", "error")
		s.metrics.IncrBackendError(s.name)
		return nil, err
	}

	s.cache.ApplyInsert(*rec)
	s.metrics.IncrMutation(s.name, "duplicate", "success")
	return rec, nil
}

// Remove deletes a record. A backend 404 surfaces as ErrAlreadyDeleted
// and leaves the cache untouched; the next reload reconciles. On
// success the record leaves the cache and any edit of it is discarded.
func (s *TableService[T]) Remove(ctx context.Context, id int64, confirmed bool) error {
	ctx, span := tracer.Start(ctx, "TableService.Remove")
	defer span.End()
	span.SetAttributes(attribute.String("table", s.name), attribute.Int64("id", id))

	if !confirmed {
		return &domain.ErrValidation{Field: "confirm", Message: "delete requires confirmation"}
	}

	if err := s.store.Delete(ctx, id); err != nil {
		var stale *domain.ErrAlreadyDeleted
		if errors.As(err, &stale) {
			// Remote row is already gone. The cache keeps its copy
			// until the next reload reconciles.
			s.metrics.IncrMutation(s.name, "delete", "stale")
			s.logger.Warn("record already deleted remotely",
				zap.String("table", s.name),
				zap.Int64("id", id),
			)
			return err
		}
		s.metrics.IncrMutation(s.name, "delete", "error")
		s.metrics.IncrBackendError(s.name)
		return err
	}

	s.cache.ApplyDelete(id)
	s.editor.Discard(id)
	s.metrics.IncrMutation(s.name, "delete", "success")
	return nil
}
