package service

import (
	"context"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rmeucci/portfolio-bff-go/internal/domain"
	"github.com/rmeucci/portfolio-bff-go/internal/infra/observability"
	"github.com/rmeucci/portfolio-bff-go/internal/port"
)

// quantityScale clamps user-entered quantities and prices to six
// decimal places before anything leaves the form.
const quantityScale = 6

// EntryService runs the operation-entry flow: validate and normalize
// the form, preview pricing against the backend, and persist.
type EntryService struct {
	pricing port.PricingService
	creator port.OperationCreator
	catalog port.AssetCatalog
	wallets port.WalletStore
	ops     *OperationsTable
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewEntryService wires the entry flow. ops receives saved operations
// so the table view reflects them without a reload.
func NewEntryService(
	pricing port.PricingService,
	creator port.OperationCreator,
	catalog port.AssetCatalog,
	wallets port.WalletStore,
	ops *OperationsTable,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *EntryService {
	return &EntryService{
		pricing: pricing,
		creator: creator,
		catalog: catalog,
		wallets: wallets,
		ops:     ops,
		metrics: metrics,
		logger:  logger,
	}
}

// BuildInput validates the form and normalizes its numeric fields.
// Violations come back as one ErrFormValidation carrying every bad
// field; nothing is sent to the backend and the form keeps its input.
func (s *EntryService) BuildInput(form domain.EntryForm) (*domain.OperationInput, error) {
	fields := make(map[string]string)

	if strings.TrimSpace(form.AssetSymbol) == "" {
		fields["asset_symbol"] = "asset is required"
	}

	qty, err := parseAmount(form.Quantity)
	if err != nil {
		fields["quantity"] = "not a valid number"
	} else if qty == 0 {
		fields["quantity"] = "must be non-zero"
	}

	var priceManual *float64
	if strings.TrimSpace(form.PriceManual) != "" {
		p, err := parseAmount(form.PriceManual)
		if err != nil {
			fields["price_manual"] = "not a valid number"
		} else {
			priceManual = &p
		}
	}

	fees := 0.0
	if strings.TrimSpace(form.Fees) != "" {
		fees, err = parseAmount(form.Fees)
		if err != nil {
			fields["fees"] = "not a valid number"
		}
	}

	if len(fields) > 0 {
		return nil, &domain.ErrFormValidation{Fields: fields}
	}

	return &domain.OperationInput{
		Date:        form.Date,
		Type:        form.Type,
		AssetSymbol: strings.TrimSpace(form.AssetSymbol),
		Quantity:    qty,
		WalletID:    form.WalletID,
		User:        form.User,
		Broker:      form.Broker,
		Currency:    form.Currency,
		PriceManual: priceManual,
		Fees:        fees,
		Comment:     form.Comment,
		Accounting:  form.Accounting,
	}, nil
}

// Preview validates the form and asks the backend to price it. The
// response carries display strings formatted in the preview currency.
func (s *EntryService) Preview(ctx context.Context, form domain.EntryForm) (*domain.PreviewResult, error) {
	ctx, span := tracer.Start(ctx, "EntryService.Preview")
	defer span.End()

	input, err := s.BuildInput(form)
	if err != nil {
		return nil, err
	}

	preview, err := s.pricing.PreviewOperation(ctx, *input)
	if err != nil {
		s.metrics.IncrBackendError("preview")
		return nil, err
	}

	code := preview.Currency
	if code == "" {
		code = input.Currency
	}
	return &domain.PreviewResult{
		Preview:      *preview,
		PriceDisplay: formatMoney(preview.Price, code),
		TotalDisplay: formatMoney(preview.Total, code),
	}, nil
}

// Save validates, persists the operation, pushes it into the
// operations table, and returns the next form with sticky fields
// carried over.
func (s *EntryService) Save(ctx context.Context, form domain.EntryForm) (*domain.SaveResult, error) {
	ctx, span := tracer.Start(ctx, "EntryService.Save")
	defer span.End()

	input, err := s.BuildInput(form)
	if err != nil {
		return nil, err
	}

	saved, err := s.creator.CreateOperation(ctx, *input)
	if err != nil {
		s.metrics.IncrBackendError("operations")
		s.logger.Error("entry save failed",
			zap.String("asset", input.AssetSymbol),
			zap.Error(err),
		)
		return nil, err
	}

	if s.ops != nil {
		s.ops.Insert(*saved)
	}
	s.logger.Info("operation saved",
		zap.Int64("id", saved.ID),
		zap.String("asset", saved.AssetSymbol),
	)

	return &domain.SaveResult{
		Saved: *saved,
		NextForm: domain.EntryForm{
			AssetSymbol: form.AssetSymbol,
			WalletID:    form.WalletID,
			User:        form.User,
			Broker:      form.Broker,
			Currency:    form.Currency,
		},
	}, nil
}

// GuessAsset proxies the symbol metadata lookup for the asset form.
func (s *EntryService) GuessAsset(ctx context.Context, symbol string) (*domain.AssetGuess, error) {
	return s.catalog.GuessAsset(ctx, symbol)
}

// LastPurchaseMeta proxies the prefill lookup for a symbol.
func (s *EntryService) LastPurchaseMeta(ctx context.Context, symbol string) (*domain.LastPurchaseMeta, error) {
	return s.catalog.LastPurchaseMeta(ctx, symbol)
}

// ListVisibleAssets proxies the asset picker list.
func (s *EntryService) ListVisibleAssets(ctx context.Context) ([]domain.Asset, error) {
	return s.catalog.ListVisibleAssets(ctx)
}

// CreateAsset upserts an asset from the entry flow.
func (s *EntryService) CreateAsset(ctx context.Context, asset domain.Asset) (*domain.Asset, error) {
	if strings.TrimSpace(asset.Symbol) == "" {
		return nil, &domain.ErrValidation{Field: "symbol", Message: "symbol is required"}
	}
	return s.catalog.CreateAsset(ctx, asset)
}

// CreateWallet creates a wallet from the entry form and refreshes the
// wallet name cache.
func (s *EntryService) CreateWallet(ctx context.Context, name string) (*domain.Wallet, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "name is required"}
	}
	w, err := s.wallets.CreateWallet(ctx, name)
	if err != nil {
		return nil, err
	}
	if s.ops != nil {
		s.ops.names.Set(walletKey(w.ID), w.Name)
	}
	return w, nil
}

// parseAmount accepts comma or dot as the decimal separator and clamps
// to six decimal places.
func parseAmount(raw string) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if normalized == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return 0, err
	}
	f, _ := d.Round(quantityScale).Float64()
	return f, nil
}

// formatMoney renders an amount in the given currency for display.
// Unknown or empty codes fall back to EUR.
func formatMoney(amount float64, code string) string {
	if money.GetCurrency(code) == nil {
		code = money.EUR
	}
	return money.NewFromFloat(amount, code).Display()
}
