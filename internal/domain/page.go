package domain

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// PageSize is the fixed number of trips returned per search page.
const PageSize = 12

// maxPage is the largest page whose offset still fits in an int. Any page
// that large lies past the end of every result set.
const maxPage = math.MaxInt/PageSize + 1

// PaginationParams carries the page number and page size of a search.
// Page is 1-indexed. Limit is always PageSize for trip search.
type PaginationParams struct {
	// Page is the current page number, starting at 1.
	Page int
	// Limit is the maximum number of items to return.
	Limit int
}

// NewPaginationParams builds PaginationParams from the raw ?page= value.
// Anything that is not a positive integer falls back to page 1; pages
// beyond maxPage are clamped to it.
func NewPaginationParams(page string) PaginationParams {
	p := PaginationParams{Page: 1, Limit: PageSize}
	n, err := strconv.Atoi(page)
	switch {
	case err == nil && n >= 1:
		p.Page = min(n, maxPage)
	case errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(page, "-"):
		p.Page = maxPage
	}
	return p
}

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is one page of results plus the number of pages the full match set
// spans.
type Page[T any] struct {
	Items     []T
	PageCount int
}

// PageCount returns ceil(total / size). Zero matches yield zero pages.
func PageCount(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	s := int64(size)
	return int((total + s - 1) / s)
}
