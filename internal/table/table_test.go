package table_test

import (
	"errors"

	"github.com/rmeucci/portfolio-bff-go/internal/domain"
	"github.com/rmeucci/portfolio-bff-go/internal/table"
)

func asErr(err error, target any) bool {
	return errors.As(err, target)
}

// walletNames mimics the display-name substitution the operations
// controller provides for the wallet_id column.
var walletNames = map[int64]string{
	1: "Long Term",
	2: "Trading",
}

func opSchema() table.Schema[domain.Operation] {
	return table.Schema[domain.Operation]{
		Field: func(rec domain.Operation, name string) any {
			return rec.Field(name)
		},
		Display: func(rec domain.Operation, name string) (string, bool) {
			if name != "wallet_id" {
				return "", false
			}
			label, ok := walletNames[rec.WalletID]
			return label, ok
		},
		GlobalFields: domain.OperationGlobalFields,
		DateFields:   map[string]bool{"date": true},
	}
}

func sampleOps() []domain.Operation {
	return []domain.Operation{
		{ID: 1, Date: "2024-03-01", Type: "buy", AssetSymbol: "VWCE", Quantity: 1.5, WalletID: 1, Broker: "Degiro", Currency: "EUR", Fees: 2.0},
		{ID: 2, Date: "2024-01-15", Type: "sell", AssetSymbol: "AAPL", Quantity: -2.0, WalletID: 2, Broker: "IBKR", Currency: "USD", Fees: 1.0},
		{ID: 3, Date: "2024-02-20", Type: "buy", AssetSymbol: "BTC", Quantity: 0.3, WalletID: 1, Broker: "Kraken", Currency: "EUR", Fees: 0.5},
	}
}

func ids(recs []domain.Operation) []int64 {
	out := make([]int64, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
