package domain

// NumberRange bounds a numeric column. A nil bound is unbounded.
type NumberRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// DateRange bounds a date column, inclusive on both ends. Values are
// date strings (YYYY-MM-DD); empty means unbounded.
type DateRange struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// FilterSpec describes the active filters on a view. Empty text values
// and nil bounds are inactive; active predicates combine with AND.
type FilterSpec struct {
	Global string                 `json:"global,omitempty"`
	Text   map[string]string      `json:"text,omitempty"`
	Number map[string]NumberRange `json:"number,omitempty"`
	Date   map[string]DateRange   `json:"date,omitempty"`
}

// IsZero reports whether no predicate is active.
func (f FilterSpec) IsZero() bool {
	if f.Global != "" {
		return false
	}
	for _, v := range f.Text {
		if v != "" {
			return false
		}
	}
	for _, r := range f.Number {
		if r.Min != nil || r.Max != nil {
			return false
		}
	}
	for _, r := range f.Date {
		if r.From != "" || r.To != "" {
			return false
		}
	}
	return true
}

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// SortSpec names the active sort column and direction. An empty Key
// means no sort is applied.
type SortSpec struct {
	Key       string `json:"key,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// PageSpec selects a page of the filtered, sorted set.
type PageSpec struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// Page is one computed page of a view plus its pagination envelope.
// StartIndex is the 0-based offset of the page within the filtered
// set and EndIndex is exclusive, so Records covers [StartIndex,
// EndIndex); both are 0 when the set is empty.
type Page[T any] struct {
	Records    []T `json:"records"`
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
	TotalRows  int `json:"total_rows"`
	StartIndex int `json:"start_index"`
	EndIndex   int `json:"end_index"`
}

// TableMetrics is the JSON snapshot returned by the table metrics
// endpoint, read back from the prometheus registry.
type TableMetrics struct {
	CacheLoads       map[string]float64 `json:"cache_loads"`
	Mutations        map[string]float64 `json:"mutations"`
	UnmatchedUpdates float64            `json:"unmatched_updates"`
	BackendErrors    float64            `json:"backend_errors"`
}
