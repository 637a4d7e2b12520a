package table_test

import (
	"testing"

	"github.com/rmeucci/portfolio-bff-go/internal/domain"
	"github.com/rmeucci/portfolio-bff-go/internal/table"
)

func TestFilter_EmptySpecIsIdentity(t *testing.T) {
	recs := sampleOps()

	got := table.Filter(recs, opSchema(), domain.FilterSpec{})

	if !equalIDs(ids(got), ids(recs)) {
		t.Errorf("expected identical set in order, got %v", ids(got))
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	recs := sampleOps()
	spec := domain.FilterSpec{Text: map[string]string{"asset_symbol": "vwce"}}

	table.Filter(recs, opSchema(), spec)

	if !equalIDs(ids(recs), []int64{1, 2, 3}) {
		t.Error("input slice was modified")
	}
}

func TestFilter_TextSubstringCaseInsensitive(t *testing.T) {
	tests := []struct {
		name   string
		field  string
		needle string
		want   []int64
	}{
		{"lowercase match", "asset_symbol", "vwce", []int64{1}},
		{"partial match across records", "broker", "kr", []int64{2, 3}},
		{"partial match single record", "broker", "krak", []int64{3}},
		{"no match", "asset_symbol", "tsla", []int64{}},
		{"empty is inactive", "asset_symbol", "", []int64{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := domain.FilterSpec{Text: map[string]string{tt.field: tt.needle}}
			got := table.Filter(sampleOps(), opSchema(), spec)
			if !equalIDs(ids(got), tt.want) {
				t.Errorf("expected %v, got %v", tt.want, ids(got))
			}
		})
	}
}

func TestFilter_QuantityMinZeroKeepsPositives(t *testing.T) {
	// Quantities are 1.5, -2.0, 0.3; min 0 keeps the non-negative ones.
	min := 0.0
	spec := domain.FilterSpec{
		Number: map[string]domain.NumberRange{"quantity": {Min: &min}},
	}

	got := table.Filter(sampleOps(), opSchema(), spec)

	if !equalIDs(ids(got), []int64{1, 3}) {
		t.Errorf("expected [1 3], got %v", ids(got))
	}
}

func TestFilter_NumberRangeBothBounds(t *testing.T) {
	min, max := 0.6, 1.5
	spec := domain.FilterSpec{
		Number: map[string]domain.NumberRange{"fees": {Min: &min, Max: &max}},
	}

	got := table.Filter(sampleOps(), opSchema(), spec)

	if !equalIDs(ids(got), []int64{2}) {
		t.Errorf("expected [2], got %v", ids(got))
	}
}

func TestFilter_MissingNumericCountsAsZero(t *testing.T) {
	// price_manual is unset everywhere, so a max bound of 0 keeps all
	// records and a min bound above 0 drops them all.
	max := 0.0
	spec := domain.FilterSpec{
		Number: map[string]domain.NumberRange{"price_manual": {Max: &max}},
	}
	got := table.Filter(sampleOps(), opSchema(), spec)
	if len(got) != 3 {
		t.Errorf("expected all records with max 0, got %d", len(got))
	}

	min := 0.01
	spec = domain.FilterSpec{
		Number: map[string]domain.NumberRange{"price_manual": {Min: &min}},
	}
	got = table.Filter(sampleOps(), opSchema(), spec)
	if len(got) != 0 {
		t.Errorf("expected no records with min 0.01, got %d", len(got))
	}
}

func TestFilter_DateRangeInclusive(t *testing.T) {
	spec := domain.FilterSpec{
		Date: map[string]domain.DateRange{
			"date": {From: "2024-01-15", To: "2024-02-20"},
		},
	}

	got := table.Filter(sampleOps(), opSchema(), spec)

	if !equalIDs(ids(got), []int64{2, 3}) {
		t.Errorf("expected boundary dates included [2 3], got %v", ids(got))
	}
}

func TestFilter_GlobalScansWalletDisplayName(t *testing.T) {
	spec := domain.FilterSpec{Global: "trading"}

	got := table.Filter(sampleOps(), opSchema(), spec)

	if !equalIDs(ids(got), []int64{2}) {
		t.Errorf("expected wallet name match [2], got %v", ids(got))
	}
}

func TestFilter_PredicatesCombineWithAnd(t *testing.T) {
	min := 0.0
	spec := domain.FilterSpec{
		Text:   map[string]string{"operation_type": "buy"},
		Number: map[string]domain.NumberRange{"quantity": {Min: &min}},
		Date:   map[string]domain.DateRange{"date": {From: "2024-03-01"}},
	}

	got := table.Filter(sampleOps(), opSchema(), spec)

	if !equalIDs(ids(got), []int64{1}) {
		t.Errorf("expected [1], got %v", ids(got))
	}
}

func TestFilter_ResultIsSubset(t *testing.T) {
	spec := domain.FilterSpec{Global: "eur"}
	all := sampleOps()
	got := table.Filter(all, opSchema(), spec)

	known := make(map[int64]bool)
	for _, r := range all {
		known[r.ID] = true
	}
	for _, r := range got {
		if !known[r.ID] {
			t.Errorf("record %d not in the input set", r.ID)
		}
	}
}
