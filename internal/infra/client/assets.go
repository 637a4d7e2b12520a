package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.opentelemetry.io/otel/attribute"

	"github.com/rmeucci/portfolio-bff-go/internal/domain"
)

// Assets exposes the assets table as a record store.
type Assets struct {
	c *Client
}

// Assets returns the record-store view over /assets.
func (c *Client) Assets() *Assets {
	return &Assets{c: c}
}

// List fetches all assets, hidden ones included.
func (s *Assets) List(ctx context.Context) ([]domain.Asset, error) {
	ctx, span := tracer.Start(ctx, "Backend.ListAssets")
	defer span.End()

	body, err := s.c.doRead(ctx, "/assets/")
	if err != nil {
		return nil, fetchError("assets", err)
	}

	var recs []domain.Asset
	if err := json.Unmarshal(body, &recs); err != nil {
		return nil, fetchError("assets", fmt.Errorf("decode assets: %w", err))
	}
	return recs, nil
}

// Save upserts an asset by symbol and returns the stored row.
func (s *Assets) Save(ctx context.Context, rec domain.Asset) (*domain.Asset, error) {
	ctx, span := tracer.Start(ctx, "Backend.SaveAsset")
	defer span.End()
	span.SetAttributes(attribute.String("asset.symbol", rec.Symbol))

	body, err := s.c.doWrite(ctx, http.MethodPost, "/assets", rec, nil)
	if err != nil {
		return nil, mutationError("asset", "save", rec.Symbol, err)
	}

	var saved domain.Asset
	if err := json.Unmarshal(body, &saved); err != nil {
		return nil, mutationError("asset", "save", rec.Symbol, fmt.Errorf("decode response: %w", err))
	}
	return &saved, nil
}

// Delete removes an asset. A backend 404 becomes ErrAlreadyDeleted.
func (s *Assets) Delete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "Backend.DeleteAsset")
	defer span.End()
	span.SetAttributes(attribute.Int64("asset.id", id))

	path := fmt.Sprintf("/assets/%d", id)
	if _, err := s.c.doWrite(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return mutationError("asset", "delete", fmt.Sprint(id), err)
	}
	return nil
}

// ListVisibleAssets fetches the assets shown in entry-form pickers.
func (c *Client) ListVisibleAssets(ctx context.Context) ([]domain.Asset, error) {
	ctx, span := tracer.Start(ctx, "Backend.ListVisibleAssets")
	defer span.End()

	body, err := c.doRead(ctx, "/assets/visible")
	if err != nil {
		return nil, fetchError("assets", err)
	}

	var recs []domain.Asset
	if err := json.Unmarshal(body, &recs); err != nil {
		return nil, fetchError("assets", fmt.Errorf("decode assets: %w", err))
	}
	return recs, nil
}

// CreateAsset upserts an asset from the entry flow.
func (c *Client) CreateAsset(ctx context.Context, asset domain.Asset) (*domain.Asset, error) {
	return c.Assets().Save(ctx, asset)
}

// GuessAsset asks the backend for metadata matching a symbol.
func (c *Client) GuessAsset(ctx context.Context, symbol string) (*domain.AssetGuess, error) {
	ctx, span := tracer.Start(ctx, "Backend.GuessAsset")
	defer span.End()
	span.SetAttributes(attribute.String("asset.symbol", symbol))

	path := "/assets/guess?symbol=" + url.QueryEscape(symbol)
	body, err := c.doRead(ctx, path)
	if err != nil {
		return nil, fetchError("assets", err)
	}

	var guess domain.AssetGuess
	if err := json.Unmarshal(body, &guess); err != nil {
		return nil, fetchError("assets", fmt.Errorf("decode guess: %w", err))
	}
	return &guess, nil
}

// LastPurchaseMeta fetches wallet/user/broker of the latest purchase of
// the symbol, used to prefill the entry form.
func (c *Client) LastPurchaseMeta(ctx context.Context, symbol string) (*domain.LastPurchaseMeta, error) {
	ctx, span := tracer.Start(ctx, "Backend.LastPurchaseMeta")
	defer span.End()
	span.SetAttributes(attribute.String("asset.symbol", symbol))

	path := fmt.Sprintf("/assets/%s/last-purchase-meta", url.PathEscape(symbol))
	body, err := c.doRead(ctx, path)
	if err != nil {
		return nil, fetchError("assets", err)
	}

	var meta domain.LastPurchaseMeta
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, fetchError("assets", fmt.Errorf("decode purchase meta: %w", err))
	}
	return &meta, nil
}
