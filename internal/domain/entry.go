package domain

// EntryForm is the operation-entry form as submitted by the view layer.
// Numeric fields arrive as raw text so that locale input (comma or dot
// decimal separator) can be parsed and validated server-side.
type EntryForm struct {
	Date        string `json:"date"`
	Type        string `json:"operation_type"`
	AssetSymbol string `json:"asset_symbol"`
	Quantity    string `json:"quantity"`
	WalletID    int64  `json:"wallet_id"`
	User        string `json:"user,omitempty"`
	Broker      string `json:"broker,omitempty"`
	Currency    string `json:"purchase_currency,omitempty"`
	PriceManual string `json:"price_manual,omitempty"`
	Fees        string `json:"fees,omitempty"`
	Comment     string `json:"comment,omitempty"`
	Accounting  bool   `json:"accounting"`
}

// OperationInput is the validated, normalized form sent to the backend
// for preview and save.
type OperationInput struct {
	Date        string   `json:"date"`
	Type        string   `json:"operation_type"`
	AssetSymbol string   `json:"asset_symbol"`
	Quantity    float64  `json:"quantity"`
	WalletID    int64    `json:"wallet_id"`
	User        string   `json:"user,omitempty"`
	Broker      string   `json:"broker,omitempty"`
	Currency    string   `json:"purchase_currency,omitempty"`
	PriceManual *float64 `json:"price_manual,omitempty"`
	Fees        float64  `json:"fees"`
	Comment     string   `json:"comment,omitempty"`
	Accounting  bool     `json:"accounting"`
}

// OperationPreview is the backend's pricing answer for a prospective
// operation.
type OperationPreview struct {
	Price    float64 `json:"price"`
	High     float64 `json:"high,omitempty"`
	Low      float64 `json:"low,omitempty"`
	Close    float64 `json:"close,omitempty"`
	FxRate   float64 `json:"fx_rate,omitempty"`
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
}

// PreviewResult pairs the raw preview figures with display strings
// formatted in the preview currency.
type PreviewResult struct {
	Preview      OperationPreview `json:"preview"`
	PriceDisplay string           `json:"price_display"`
	TotalDisplay string           `json:"total_display"`
}

// SaveResult is the entry-flow save response: the persisted operation
// and the next form with sticky fields carried over.
type SaveResult struct {
	Saved    Operation `json:"saved"`
	NextForm EntryForm `json:"next_form"`
}

// AssetGuess is the backend's best-effort metadata lookup for a symbol,
// used to prefill the asset-creation form.
type AssetGuess struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name,omitempty"`
	Currency string `json:"currency,omitempty"`
	Type     string `json:"type,omitempty"`
	ISIN     string `json:"isin,omitempty"`
}

// LastPurchaseMeta prefills wallet/user/broker from the most recent
// purchase of the same asset.
type LastPurchaseMeta struct {
	WalletID int64  `json:"wallet_id,omitempty"`
	User     string `json:"user,omitempty"`
	Broker   string `json:"broker,omitempty"`
	Currency string `json:"purchase_currency,omitempty"`
}
