package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/rmeucci/portfolio-bff-go/internal/domain"
)

// ListWallets fetches all wallets.
func (c *Client) ListWallets(ctx context.Context) ([]domain.Wallet, error) {
	ctx, span := tracer.Start(ctx, "Backend.ListWallets")
	defer span.End()

	body, err := c.doRead(ctx, "/wallets")
	if err != nil {
		return nil, fetchError("wallets", err)
	}

	var recs []domain.Wallet
	if err := json.Unmarshal(body, &recs); err != nil {
		return nil, fetchError("wallets", fmt.Errorf("decode wallets: %w", err))
	}
	return recs, nil
}

// CreateWallet creates a wallet by name and returns the stored row.
func (c *Client) CreateWallet(ctx context.Context, name string) (*domain.Wallet, error) {
	ctx, span := tracer.Start(ctx, "Backend.CreateWallet")
	defer span.End()
	span.SetAttributes(attribute.String("wallet.name", name))

	payload := map[string]string{"name": name}
	body, err := c.doWrite(ctx, http.MethodPost, "/wallets", payload, nil)
	if err != nil {
		return nil, mutationError("wallet", "create", name, err)
	}

	var rec domain.Wallet
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, mutationError("wallet", "create", name, fmt.Errorf("decode response: %w", err))
	}
	return &rec, nil
}
