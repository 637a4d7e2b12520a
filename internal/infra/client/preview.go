package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/rmeucci/portfolio-bff-go/internal/domain"
)

// PreviewOperation asks the backend to price a prospective operation.
// Pricing stays server-side; this client never computes money figures.
func (c *Client) PreviewOperation(ctx context.Context, input domain.OperationInput) (*domain.OperationPreview, error) {
	ctx, span := tracer.Start(ctx, "Backend.PreviewOperation")
	defer span.End()
	span.SetAttributes(
		attribute.String("asset.symbol", input.AssetSymbol),
		attribute.Float64("operation.quantity", input.Quantity),
	)

	body, err := c.doWrite(ctx, http.MethodPost, "/operations/preview", input, nil)
	if err != nil {
		return nil, fetchError("preview", err)
	}

	var preview domain.OperationPreview
	if err := json.Unmarshal(body, &preview); err != nil {
		return nil, fetchError("preview", fmt.Errorf("decode preview: %w", err))
	}
	return &preview, nil
}
