// Package domain holds the core types shared across the BFF:
// records, table specs, entry-form types, and error types.
package domain

import "fmt"

// Operation is a single portfolio movement (buy, sell, dividend, ...).
// It mirrors the backend's operation resource. Columns the backend adds
// beyond the fixed schema land in Extra and survive a round trip.
type Operation struct {
	ID          int64          `json:"id"`
	Date        string         `json:"date"`
	Type        string         `json:"operation_type"`
	AssetID     int64          `json:"asset_id,omitempty"`
	AssetSymbol string         `json:"asset_symbol"`
	Quantity    float64        `json:"quantity"`
	WalletID    int64          `json:"wallet_id"`
	User        string         `json:"user,omitempty"`
	Broker      string         `json:"broker,omitempty"`
	Currency    string         `json:"purchase_currency,omitempty"`
	PriceManual *float64       `json:"price_manual,omitempty"`
	Fees        float64        `json:"fees"`
	Comment     string         `json:"comment,omitempty"`
	Accounting  bool           `json:"accounting"`
	Extra       map[string]any `json:"extra,omitempty"`
}

// Asset is a tradable instrument (or a currency held as liquidity).
type Asset struct {
	ID       int64          `json:"id"`
	Symbol   string         `json:"symbol"`
	Name     string         `json:"name,omitempty"`
	Currency string         `json:"currency,omitempty"`
	Type     string         `json:"type,omitempty"`
	Category string         `json:"category,omitempty"`
	ISIN     string         `json:"isin,omitempty"`
	Visible  bool           `json:"visible"`
	Extra    map[string]any `json:"extra,omitempty"`
}

// Wallet is a named container referenced by operations via WalletID.
type Wallet struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// OperationGlobalFields is the canonical column set scanned by the "global"
// filter on the operations view. wallet_id is substituted with the wallet's
// display name when a resolver is available.
var OperationGlobalFields = []string{
	"date", "operation_type", "asset_symbol", "wallet_id",
	"user", "broker", "purchase_currency", "comment",
}

// AssetGlobalFields is the canonical column set for the assets view.
var AssetGlobalFields = []string{
	"symbol", "name", "currency", "type", "category", "isin",
}

// Field returns the value of the named column, or the Extra entry for
// names outside the fixed schema. Unknown names yield nil.
func (o Operation) Field(name string) any {
	switch name {
	case "id":
		return o.ID
	case "date":
		return o.Date
	case "operation_type":
		return o.Type
	case "asset_id":
		return o.AssetID
	case "asset_symbol":
		return o.AssetSymbol
	case "quantity":
		return o.Quantity
	case "wallet_id":
		return o.WalletID
	case "user":
		return o.User
	case "broker":
		return o.Broker
	case "purchase_currency":
		return o.Currency
	case "price_manual":
		if o.PriceManual == nil {
			return nil
		}
		return *o.PriceManual
	case "fees":
		return o.Fees
	case "comment":
		return o.Comment
	case "accounting":
		return o.Accounting
	default:
		return o.Extra[name]
	}
}

// SetField writes the named column on the operation. Names outside the
// fixed schema go to Extra. Type mismatches are validation errors.
func (o *Operation) SetField(name string, value any) error {
	switch name {
	case "id":
		return &ErrValidation{Field: name, Message: "id is immutable"}
	case "date":
		return setString(&o.Date, name, value)
	case "operation_type":
		return setString(&o.Type, name, value)
	case "asset_id":
		return setInt(&o.AssetID, name, value)
	case "asset_symbol":
		return setString(&o.AssetSymbol, name, value)
	case "quantity":
		return setFloat(&o.Quantity, name, value)
	case "wallet_id":
		return setInt(&o.WalletID, name, value)
	case "user":
		return setString(&o.User, name, value)
	case "broker":
		return setString(&o.Broker, name, value)
	case "purchase_currency":
		return setString(&o.Currency, name, value)
	case "price_manual":
		if value == nil {
			o.PriceManual = nil
			return nil
		}
		var f float64
		if err := setFloat(&f, name, value); err != nil {
			return err
		}
		o.PriceManual = &f
		return nil
	case "fees":
		return setFloat(&o.Fees, name, value)
	case "comment":
		return setString(&o.Comment, name, value)
	case "accounting":
		return setBool(&o.Accounting, name, value)
	default:
		// Extra may be shared with other copies of the record, so
		// writes go to a fresh map.
		extra := make(map[string]any, len(o.Extra)+1)
		for k, v := range o.Extra {
			extra[k] = v
		}
		extra[name] = value
		o.Extra = extra
		return nil
	}
}

// Field returns the value of the named column, or the Extra entry for
// names outside the fixed schema.
func (a Asset) Field(name string) any {
	switch name {
	case "id":
		return a.ID
	case "symbol":
		return a.Symbol
	case "name":
		return a.Name
	case "currency":
		return a.Currency
	case "type":
		return a.Type
	case "category":
		return a.Category
	case "isin":
		return a.ISIN
	case "visible":
		return a.Visible
	default:
		return a.Extra[name]
	}
}

// SetField writes the named column on the asset.
func (a *Asset) SetField(name string, value any) error {
	switch name {
	case "id":
		return &ErrValidation{Field: name, Message: "id is immutable"}
	case "symbol":
		return setString(&a.Symbol, name, value)
	case "name":
		return setString(&a.Name, name, value)
	case "currency":
		return setString(&a.Currency, name, value)
	case "type":
		return setString(&a.Type, name, value)
	case "category":
		return setString(&a.Category, name, value)
	case "isin":
		return setString(&a.ISIN, name, value)
	case "visible":
		return setBool(&a.Visible, name, value)
	default:
		// Extra may be shared with other copies of the record, so
		// writes go to a fresh map.
		extra := make(map[string]any, len(a.Extra)+1)
		for k, v := range a.Extra {
			extra[k] = v
		}
		extra[name] = value
		a.Extra = extra
		return nil
	}
}

func setString(dst *string, field string, value any) error {
	s, ok := value.(string)
	if !ok {
		return &ErrValidation{Field: field, Message: fmt.Sprintf("expected string, got %T", value)}
	}
	*dst = s
	return nil
}

func setFloat(dst *float64, field string, value any) error {
	switch v := value.(type) {
	case float64:
		*dst = v
	case float32:
		*dst = float64(v)
	case int:
		*dst = float64(v)
	case int64:
		*dst = float64(v)
	default:
		return &ErrValidation{Field: field, Message: fmt.Sprintf("expected number, got %T", value)}
	}
	return nil
}

func setInt(dst *int64, field string, value any) error {
	switch v := value.(type) {
	case int64:
		*dst = v
	case int:
		*dst = int64(v)
	case float64:
		// JSON numbers decode as float64.
		*dst = int64(v)
	default:
		return &ErrValidation{Field: field, Message: fmt.Sprintf("expected integer, got %T", value)}
	}
	return nil
}

func setBool(dst *bool, field string, value any) error {
	b, ok := value.(bool)
	if !ok {
		return &ErrValidation{Field: field, Message: fmt.Sprintf("expected bool, got %T", value)}
	}
	*dst = b
	return nil
}
