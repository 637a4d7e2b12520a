package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/rmeucci/portfolio-bff-go/internal/domain"
	"github.com/rmeucci/portfolio-bff-go/internal/infra/cache"
	"github.com/rmeucci/portfolio-bff-go/internal/infra/observability"
	"github.com/rmeucci/portfolio-bff-go/internal/service"
)

type mockPricing struct {
	preview *domain.OperationPreview
	err     error
	got     *domain.OperationInput
}

func (m *mockPricing) PreviewOperation(_ context.Context, input domain.OperationInput) (*domain.OperationPreview, error) {
	m.got = &input
	if m.err != nil {
		return nil, m.err
	}
	return m.preview, nil
}

type mockCreator struct {
	created *domain.Operation
	err     error
	got     *domain.OperationInput
}

func (m *mockCreator) CreateOperation(_ context.Context, input domain.OperationInput) (*domain.Operation, error) {
	m.got = &input
	if m.err != nil {
		return nil, m.err
	}
	return m.created, nil
}

type mockCatalog struct {
	assets []domain.Asset
	guess  *domain.AssetGuess
	meta   *domain.LastPurchaseMeta
}

func (m *mockCatalog) ListVisibleAssets(context.Context) ([]domain.Asset, error) {
	return m.assets, nil
}

func (m *mockCatalog) CreateAsset(_ context.Context, asset domain.Asset) (*domain.Asset, error) {
	asset.ID = 42
	return &asset, nil
}

func (m *mockCatalog) GuessAsset(context.Context, string) (*domain.AssetGuess, error) {
	return m.guess, nil
}

func (m *mockCatalog) LastPurchaseMeta(context.Context, string) (*domain.LastPurchaseMeta, error) {
	return m.meta, nil
}

func validForm() domain.EntryForm {
	return domain.EntryForm{
		Date:        "2024-03-01",
		Type:        "buy",
		AssetSymbol: "VWCE",
		Quantity:    "1,5",
		WalletID:    1,
		User:        "riccardo",
		Broker:      "Degiro",
		Currency:    "EUR",
	}
}

func newEntryService(pricing *mockPricing, creator *mockCreator) (*service.EntryService, *service.OperationsTable) {
	store := &mockOpStore{}
	ops := service.NewOperationsTable(
		store,
		nil,
		&mockWallets{},
		cache.New[string](time.Minute),
		observability.NewMetrics(),
		zap.NewNop(),
	)
	svc := service.NewEntryService(
		pricing,
		creator,
		&mockCatalog{},
		&mockWallets{},
		ops,
		observability.NewMetrics(),
		zap.NewNop(),
	)
	return svc, ops
}

func TestEntryService_BuildInputValidation(t *testing.T) {
	svc, _ := newEntryService(&mockPricing{}, &mockCreator{})

	tests := []struct {
		name     string
		mutate   func(*domain.EntryForm)
		badField string
	}{
		{"empty asset", func(f *domain.EntryForm) { f.AssetSymbol = " " }, "asset_symbol"},
		{"zero quantity", func(f *domain.EntryForm) { f.Quantity = "0" }, "quantity"},
		{"empty quantity", func(f *domain.EntryForm) { f.Quantity = "" }, "quantity"},
		{"garbage quantity", func(f *domain.EntryForm) { f.Quantity = "1.2.3" }, "quantity"},
		{"garbage fees", func(f *domain.EntryForm) { f.Fees = "abc" }, "fees"},
		{"garbage manual price", func(f *domain.EntryForm) { f.PriceManual = "x" }, "price_manual"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			_, err := svc.BuildInput(form)

			var formErr *domain.ErrFormValidation
			if !errors.As(err, &formErr) {
				t.Fatalf("expected ErrFormValidation, got %v", err)
			}
			if _, ok := formErr.Fields[tt.badField]; !ok {
				t.Errorf("expected field %q flagged, got %v", tt.badField, formErr.Fields)
			}
		})
	}
}

func TestEntryService_BuildInputParsesCommaDecimal(t *testing.T) {
	svc, _ := newEntryService(&mockPricing{}, &mockCreator{})

	form := validForm()
	form.Quantity = "2,75"
	form.Fees = "1,25"

	input, err := svc.BuildInput(form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if input.Quantity != 2.75 {
		t.Errorf("expected 2.75, got %v", input.Quantity)
	}
	if input.Fees != 1.25 {
		t.Errorf("expected 1.25, got %v", input.Fees)
	}
}

func TestEntryService_BuildInputClampsToSixDecimals(t *testing.T) {
	svc, _ := newEntryService(&mockPricing{}, &mockCreator{})

	form := validForm()
	form.Quantity = "0.123456789"

	input, err := svc.BuildInput(form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if input.Quantity != 0.123457 {
		t.Errorf("expected quantity rounded to 6 decimals, got %v", input.Quantity)
	}
}

func TestEntryService_PreviewFormatsMoney(t *testing.T) {
	pricing := &mockPricing{preview: &domain.OperationPreview{
		Price:    105.42,
		Total:    158.13,
		Currency: "EUR",
	}}
	svc, _ := newEntryService(pricing, &mockCreator{})

	result, err := svc.Preview(context.Background(), validForm())
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	if pricing.got == nil || pricing.got.Quantity != 1.5 {
		t.Errorf("expected normalized input sent to pricing, got %+v", pricing.got)
	}
	if result.PriceDisplay == "" || !strings.Contains(result.PriceDisplay, "105") {
		t.Errorf("expected formatted price, got %q", result.PriceDisplay)
	}
	if result.TotalDisplay == "" || !strings.Contains(result.TotalDisplay, "158") {
		t.Errorf("expected formatted total, got %q", result.TotalDisplay)
	}
}

func TestEntryService_PreviewValidationSkipsBackend(t *testing.T) {
	pricing := &mockPricing{preview: &domain.OperationPreview{}}
	svc, _ := newEntryService(pricing, &mockCreator{})

	form := validForm()
	form.Quantity = "0"

	if _, err := svc.Preview(context.Background(), form); err == nil {
		t.Fatal("expected validation error")
	}
	if pricing.got != nil {
		t.Error("invalid form must not reach the pricing backend")
	}
}

func TestEntryService_SaveCarriesOverStickyFields(t *testing.T) {
	creator := &mockCreator{created: &domain.Operation{
		ID:          10,
		Date:        "2024-03-01",
		Type:        "buy",
		AssetSymbol: "VWCE",
		Quantity:    1.5,
		WalletID:    1,
	}}
	svc, ops := newEntryService(&mockPricing{}, creator)

	result, err := svc.Save(context.Background(), validForm())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	next := result.NextForm
	if next.AssetSymbol != "VWCE" || next.WalletID != 1 || next.User != "riccardo" ||
		next.Broker != "Degiro" || next.Currency != "EUR" {
		t.Errorf("sticky fields not carried over: %+v", next)
	}
	if next.Quantity != "" || next.Comment != "" || next.Date != "" {
		t.Errorf("volatile fields must reset: %+v", next)
	}

	// The saved operation lands in the operations table.
	page := viewAll(ops)
	if page.TotalRows != 1 || page.Records[0].ID != 10 {
		t.Errorf("expected saved operation in the table, got %+v", page.Records)
	}
}

func TestEntryService_SaveFailurePreservesNothingLocally(t *testing.T) {
	creator := &mockCreator{err: &domain.ErrMutation{Resource: "operation", Op: "create", Status: 500}}
	svc, ops := newEntryService(&mockPricing{}, creator)

	if _, err := svc.Save(context.Background(), validForm()); err == nil {
		t.Fatal("expected save error")
	}
	if page := viewAll(ops); page.TotalRows != 0 {
		t.Errorf("failed save must not touch the table, got %d rows", page.TotalRows)
	}
}

func TestEntryService_CreateWalletRefreshesNameCache(t *testing.T) {
	svc, ops := newEntryService(&mockPricing{}, &mockCreator{})

	w, err := svc.CreateWallet(context.Background(), "Crypto")
	if err != nil {
		t.Fatalf("create wallet failed: %v", err)
	}

	name, ok := ops.WalletName(w.ID)
	if !ok || name != "Crypto" {
		t.Errorf("expected wallet name cached, got %q (%v)", name, ok)
	}
}
