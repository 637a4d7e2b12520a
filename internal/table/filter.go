package table

import (
	"strings"
	"time"

	"github.com/rmeucci/portfolio-bff-go/internal/domain"
)

// Filter returns the records matching every active predicate in spec.
// It is pure: the input slice is never modified and the result keeps
// the input order. An empty spec returns a copy of the full set.
func Filter[T any](recs []T, schema Schema[T], spec domain.FilterSpec) []T {
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		if matches(rec, schema, spec) {
			out = append(out, rec)
		}
	}
	return out
}

func matches[T any](rec T, schema Schema[T], spec domain.FilterSpec) bool {
	for field, needle := range spec.Text {
		if needle == "" {
			continue
		}
		hay := strings.ToLower(schema.displayString(rec, field))
		if !strings.Contains(hay, strings.ToLower(needle)) {
			return false
		}
	}
	for field, rng := range spec.Number {
		if rng.Min == nil && rng.Max == nil {
			continue
		}
		// A record with no numeric value in the column counts as 0.
		v, _ := Numeric(schema.Field(rec, field))
		if rng.Min != nil && v < *rng.Min {
			return false
		}
		if rng.Max != nil && v > *rng.Max {
			return false
		}
	}
	for field, rng := range spec.Date {
		if rng.From == "" && rng.To == "" {
			continue
		}
		day := DateValue(Stringify(schema.Field(rec, field)))
		if rng.From != "" && day.Before(DateValue(rng.From)) {
			return false
		}
		if rng.To != "" && day.After(DateValue(rng.To)) {
			return false
		}
	}
	if spec.Global != "" {
		needle := strings.ToLower(spec.Global)
		parts := make([]string, 0, len(schema.GlobalFields))
		for _, field := range schema.GlobalFields {
			parts = append(parts, schema.displayString(rec, field))
		}
		if !strings.Contains(strings.ToLower(strings.Join(parts, " ")), needle) {
			return false
		}
	}
	return true
}

// DateValue parses the date component of a value. Time-of-day is
// truncated so range comparison is whole-day inclusive. Unparseable
// input yields the zero time, which sorts and filters below any real
// date.
func DateValue(s string) time.Time {
	if len(s) > 10 {
		s = s[:10]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}
