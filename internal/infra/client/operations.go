package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/rmeucci/portfolio-bff-go/internal/domain"
)

// Operations exposes the operations table as a record store.
type Operations struct {
	c *Client
}

// Operations returns the record-store view over /operations.
func (c *Client) Operations() *Operations {
	return &Operations{c: c}
}

// List fetches all operations.
func (s *Operations) List(ctx context.Context) ([]domain.Operation, error) {
	ctx, span := tracer.Start(ctx, "Backend.ListOperations")
	defer span.End()

	body, err := s.c.doRead(ctx, "/operations/")
	if err != nil {
		return nil, fetchError("operations", err)
	}

	var recs []domain.Operation
	if err := json.Unmarshal(body, &recs); err != nil {
		return nil, fetchError("operations", fmt.Errorf("decode operations: %w", err))
	}
	return recs, nil
}

// Save persists an edited operation and returns the stored row.
func (s *Operations) Save(ctx context.Context, rec domain.Operation) (*domain.Operation, error) {
	ctx, span := tracer.Start(ctx, "Backend.SaveOperation")
	defer span.End()
	span.SetAttributes(attribute.Int64("operation.id", rec.ID))

	path := fmt.Sprintf("/operations/%d", rec.ID)
	body, err := s.c.doWrite(ctx, http.MethodPut, path, rec, nil)
	if err != nil {
		return nil, mutationError("operation", "save", fmt.Sprint(rec.ID), err)
	}

	var saved domain.Operation
	if err := json.Unmarshal(body, &saved); err != nil {
		return nil, mutationError("operation", "save", fmt.Sprint(rec.ID), fmt.Errorf("decode response: %w", err))
	}
	return &saved, nil
}

// Duplicate copies an operation server-side and returns the new row.
func (s *Operations) Duplicate(ctx context.Context, id int64) (*domain.Operation, error) {
	ctx, span := tracer.Start(ctx, "Backend.DuplicateOperation")
	defer span.End()
	span.SetAttributes(attribute.Int64("operation.id", id))

	path := fmt.Sprintf("/operations/%d/duplicate", id)
	headers := map[string]string{"Idempotency-Key": uuid.NewString()}
	body, err := s.c.doWrite(ctx, http.MethodPost, path, nil, headers)
	if err != nil {
		return nil, mutationError("operation", "duplicate", fmt.Sprint(id), err)
	}

	var rec domain.Operation
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, mutationError("operation", "duplicate", fmt.Sprint(id), fmt.Errorf("decode response: %w", err))
	}
	return &rec, nil
}

// Delete removes an operation. A backend 404 becomes ErrAlreadyDeleted.
func (s *Operations) Delete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "Backend.DeleteOperation")
	defer span.End()
	span.SetAttributes(attribute.Int64("operation.id", id))

	path := fmt.Sprintf("/operations/%d", id)
	if _, err := s.c.doWrite(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return mutationError("operation", "delete", fmt.Sprint(id), err)
	}
	return nil
}

// CreateOperation persists a new operation from the entry flow.
func (c *Client) CreateOperation(ctx context.Context, input domain.OperationInput) (*domain.Operation, error) {
	ctx, span := tracer.Start(ctx, "Backend.CreateOperation")
	defer span.End()
	span.SetAttributes(attribute.String("asset.symbol", input.AssetSymbol))

	headers := map[string]string{"Idempotency-Key": uuid.NewString()}
	body, err := c.doWrite(ctx, http.MethodPost, "/operations/", input, headers)
	if err != nil {
		return nil, mutationError("operation", "create", input.AssetSymbol, err)
	}

	var rec domain.Operation
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, mutationError("operation", "create", input.AssetSymbol, fmt.Errorf("decode response: %w", err))
	}
	return &rec, nil
}
