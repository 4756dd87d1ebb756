package shared

import "github.com/dentara/dentara/internal/shared"

// ListFilters represents standard list page filters.
type ListFilters struct {
	Page    int
	Limit   int
	Search  string
	SortBy  string
	SortDir string
}

// Pagination turns the filters plus a row count into page metadata for the
// list response envelope.
func (f ListFilters) Pagination(total int) shared.Pagination {
	return shared.NewPagination(f.Page, f.Limit, total)
}
