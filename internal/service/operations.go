package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rmeucci/portfolio-bff-go/internal/domain"
	"github.com/rmeucci/portfolio-bff-go/internal/infra/observability"
	"github.com/rmeucci/portfolio-bff-go/internal/port"
	"github.com/rmeucci/portfolio-bff-go/internal/table"
)

// OperationsTable is the operations controller. On top of the generic
// table service it keeps a TTL cache of wallet display names so the
// wallet_id column filters and sorts by wallet name.
type OperationsTable struct {
	*TableService[domain.Operation]
	wallets port.WalletStore
	names   port.Cache[string]
}

// NewOperationsTable wires the operations controller.
func NewOperationsTable(
	store port.RecordStore[domain.Operation],
	dup port.Duplicator[domain.Operation],
	wallets port.WalletStore,
	names port.Cache[string],
	metrics *observability.Metrics,
	logger *zap.Logger,
) *OperationsTable {
	t := &OperationsTable{
		wallets: wallets,
		names:   names,
	}

	schema := table.Schema[domain.Operation]{
		Field: func(rec domain.Operation, name string) any {
			return rec.Field(name)
		},
		Display: func(rec domain.Operation, name string) (string, bool) {
			if name != "wallet_id" {
				return "", false
			}
			if label, ok := t.WalletName(rec.WalletID); ok {
				return label, true
			}
			// Unknown wallet falls back to the raw id.
			return "", false
		},
		GlobalFields: domain.OperationGlobalFields,
		DateFields:   map[string]bool{"date": true},
	}

	t.TableService = NewTableService(
		"operations",
		store,
		dup,
		schema,
		func(rec domain.Operation) int64 { return rec.ID },
		(*domain.Operation).SetField,
		metrics,
		logger,
	)
	return t
}

// Load fetches operations and wallets concurrently. A wallet failure
// only degrades display-name substitution and is logged, not surfaced.
func (t *OperationsTable) Load(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return t.TableService.Load(ctx)
	})
	g.Go(func() error {
		if err := t.RefreshWallets(ctx); err != nil {
			t.logger.Warn("wallet refresh failed, wallet names degrade to ids",
				zap.Error(err),
			)
		}
		return nil
	})

	return g.Wait()
}

// RefreshWallets reloads the wallet display-name cache.
func (t *OperationsTable) RefreshWallets(ctx context.Context) error {
	wallets, err := t.wallets.ListWallets(ctx)
	if err != nil {
		return err
	}
	for _, w := range wallets {
		t.names.Set(walletKey(w.ID), w.Name)
	}
	return nil
}

// WalletName resolves a wallet id to its display name.
func (t *OperationsTable) WalletName(id int64) (string, bool) {
	name, ok := t.names.Get(walletKey(id))
	if ok {
		t.metrics.IncrWalletCacheLookup("hit")
	} else {
		t.metrics.IncrWalletCacheLookup("miss")
	}
	return name, ok
}

// ListWallets passes the wallet list through for the entry form picker.
func (t *OperationsTable) ListWallets(ctx context.Context) ([]domain.Wallet, error) {
	return t.wallets.ListWallets(ctx)
}

func walletKey(id int64) string {
	return fmt.Sprintf("wallet:%d", id)
}

// NewAssetsTable wires the assets controller. Assets cannot be
// duplicated server-side and have no foreign-key columns.
func NewAssetsTable(
	store port.RecordStore[domain.Asset],
	metrics *observability.Metrics,
	logger *zap.Logger,
) *TableService[domain.Asset] {
	schema := table.Schema[domain.Asset]{
		Field: func(rec domain.Asset, name string) any {
			return rec.Field(name)
		},
		GlobalFields: domain.AssetGlobalFields,
	}

	return NewTableService(
		"assets",
		store,
		nil,
		schema,
		func(rec domain.Asset) int64 { return rec.ID },
		(*domain.Asset).SetField,
		metrics,
		logger,
	)
}
