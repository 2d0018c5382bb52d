// Package listutil provides pagination helpers for list endpoints.
// Pagination is opt-in: endpoints return the full result set unless the
// request carries a page parameter.
package listutil

import (
	"net/url"
	"strconv"
)

// DefaultPerPage is the page size used when per_page is absent or invalid.
const DefaultPerPage = 50

// PerPageOptions are the allowed per_page values.
var PerPageOptions = []int{10, 20, 50, 100, 200}

// PageParams carries pagination parameters parsed from a request.
type PageParams struct {
	Page    int // 1-indexed page number
	PerPage int // rows per page
}

// Requested reports whether the query asked for pagination at all.
func Requested(q url.Values) bool {
	return q.Get("page") != ""
}

// ParsePageParams extracts page and per_page from URL query values.
// PRE: none
// POST: returns valid PageParams with defaults applied
func ParsePageParams(q url.Values) PageParams {
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	if !isValidPerPage(perPage) {
		perPage = DefaultPerPage
	}
	return PageParams{Page: page, PerPage: perPage}
}

// PageInfo carries pagination metadata for a response.
type PageInfo struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPageInfo computes pagination metadata.
// PRE: total >= 0
// POST: returns PageInfo with TotalPages computed; Page clamped to valid range
func NewPageInfo(p PageParams, total int) PageInfo {
	perPage := p.PerPage
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	page := p.Page
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return PageInfo{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Bounds returns the half-open [start, end) slice window for the current page.
// PRE: PageInfo is valid
// POST: 0 <= start <= end <= Total
func (p PageInfo) Bounds() (start, end int) {
	start = (p.Page - 1) * p.PerPage
	end = start + p.PerPage
	if end > p.Total {
		end = p.Total
	}
	if start > end {
		start = end
	}
	return start, end
}

// Paginate slices rows to the requested page and returns the metadata.
func Paginate[T any](rows []T, params PageParams) ([]T, PageInfo) {
	info := NewPageInfo(params, len(rows))
	start, end := info.Bounds()
	return rows[start:end], info
}

func isValidPerPage(n int) bool {
	for _, opt := range PerPageOptions {
		if n == opt {
			return true
		}
	}
	return false
}
