// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the service
// layer from the concrete backend client.
package port

import (
	"context"

	"github.com/rmeucci/portfolio-bff-go/internal/domain"
)

// RecordStore is the remote store behind one record table.
type RecordStore[T any] interface {
	List(ctx context.Context) ([]T, error)
	Save(ctx context.Context, rec T) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// Duplicator copies a record server-side and returns the new row.
// Only implemented for record types the backend can duplicate.
type Duplicator[T any] interface {
	Duplicate(ctx context.Context, id int64) (*T, error)
}

// WalletStore handles wallet data operations.
type WalletStore interface {
	ListWallets(ctx context.Context) ([]domain.Wallet, error)
	CreateWallet(ctx context.Context, name string) (*domain.Wallet, error)
}

// AssetCatalog serves the asset pickers and creation flow of the
// entry form.
type AssetCatalog interface {
	ListVisibleAssets(ctx context.Context) ([]domain.Asset, error)
	CreateAsset(ctx context.Context, asset domain.Asset) (*domain.Asset, error)
	GuessAsset(ctx context.Context, symbol string) (*domain.AssetGuess, error)
	LastPurchaseMeta(ctx context.Context, symbol string) (*domain.LastPurchaseMeta, error)
}

// PricingService computes the price preview for a prospective
// operation.
type PricingService interface {
	PreviewOperation(ctx context.Context, input domain.OperationInput) (*domain.OperationPreview, error)
}

// OperationCreator persists a new operation from the entry flow.
type OperationCreator interface {
	CreateOperation(ctx context.Context, input domain.OperationInput) (*domain.Operation, error)
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
