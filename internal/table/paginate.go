package table

import "github.com/rmeucci/portfolio-bff-go/internal/domain"

// Paginate slices one page out of the filtered, sorted set. Page
// requests outside [1, totalPages] are clamped, never rejected; a page
// size below 1 is treated as 1. An empty set yields one empty page
// with indices 0/0.
func Paginate[T any](recs []T, spec domain.PageSpec) domain.Page[T] {
	size := spec.Size
	if size < 1 {
		size = 1
	}

	total := len(recs)
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	page := spec.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	if total == 0 {
		return domain.Page[T]{
			Records:    []T{},
			Page:       page,
			TotalPages: totalPages,
			TotalRows:  0,
		}
	}

	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}

	out := make([]T, end-start)
	copy(out, recs[start:end])
	return domain.Page[T]{
		Records:    out,
		Page:       page,
		TotalPages: totalPages,
		TotalRows:  total,
		StartIndex: start,
		EndIndex:   end,
	}
}
