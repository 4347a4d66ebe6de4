package listview

import "slices"

// PageSizes are the page sizes a list view offers.
var PageSizes = []int{10, 20, 50, 100}

// DefaultPageSize is used when no valid size is configured.
const DefaultPageSize = 20

// ValidPageSize reports whether n is one of PageSizes.
func ValidPageSize(n int) bool {
	return slices.Contains(PageSizes, n)
}

// NextPageSize returns the page size after n in PageSizes, wrapping around.
func NextPageSize(n int) int {
	i := slices.Index(PageSizes, n)
	if i < 0 {
		return DefaultPageSize
	}
	return PageSizes[(i+1)%len(PageSizes)]
}

// Pagination describes one page of a larger collection.
type Pagination struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	TotalItems      int  `json:"totalItems"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// Normalize recomputes the navigation flags from the page counters so that
// HasNextPage ⇔ CurrentPage < TotalPages and HasPreviousPage ⇔ CurrentPage > 1.
func (p Pagination) Normalize() Pagination {
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
	if p.TotalPages < 0 {
		p.TotalPages = 0
	}
	if p.TotalItems < 0 {
		p.TotalItems = 0
	}
	p.HasNextPage = p.CurrentPage < p.TotalPages
	p.HasPreviousPage = p.CurrentPage > 1
	return p
}

// Paginate returns page (1-based) of rows. A page past the end yields no rows
// and HasNextPage=false.
func Paginate[E any](rows []E, page, size int) ([]E, Pagination) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	total := len(rows)
	pages := (total + size - 1) / size
	info := Pagination{CurrentPage: page, TotalPages: pages, TotalItems: total}.Normalize()

	start := (page - 1) * size
	if start >= total {
		return nil, info
	}
	end := min(start+size, total)
	return slices.Clone(rows[start:end]), info
}
