package table

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rmeucci/portfolio-bff-go/internal/domain"
)

// Sort returns the records ordered by spec. It is pure and stable: the
// input slice is never modified and equal records keep their relative
// order, so repeated sorts are idempotent. An empty key returns a copy
// in the input order.
func Sort[T any](recs []T, schema Schema[T], spec domain.SortSpec) []T {
	out := make([]T, len(recs))
	copy(out, recs)
	if spec.Key == "" {
		return out
	}

	cmp := comparator(schema, spec.Key)
	desc := spec.Direction == domain.SortDesc
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			i, j = j, i
		}
		return cmp(out[i], out[j]) < 0
	})
	return out
}

// comparator builds the ascending compare function for one column.
// Date columns compare by parsed timestamp, numeric columns by value
// with missing values counted as 0, everything else by locale-aware
// string comparison on the display value.
func comparator[T any](schema Schema[T], key string) func(a, b T) int {
	coll := collate.New(language.Und)
	byDate := schema.DateFields[key]

	return func(a, b T) int {
		if byDate {
			ta := DateValue(schema.displayString(a, key))
			tb := DateValue(schema.displayString(b, key))
			switch {
			case ta.Before(tb):
				return -1
			case ta.After(tb):
				return 1
			default:
				return 0
			}
		}

		av, aok := numericOrDisplay(schema, a, key)
		bv, bok := numericOrDisplay(schema, b, key)
		if aok && bok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			default:
				return 0
			}
		}
		return coll.CompareString(schema.displayString(a, key), schema.displayString(b, key))
	}
}

// numericOrDisplay resolves the numeric value of a column when the
// column has no display substitution. A nil value in a column counts
// as numeric 0 so sparse numeric columns stay comparable.
func numericOrDisplay[T any](schema Schema[T], rec T, key string) (float64, bool) {
	if schema.Display != nil {
		if _, ok := schema.Display(rec, key); ok {
			return 0, false
		}
	}
	v := schema.Field(rec, key)
	if v == nil {
		return 0, true
	}
	return Numeric(v)
}
