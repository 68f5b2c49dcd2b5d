// internal/app/system/paging/paging.go

// Package paging provides page/limit pagination for list endpoints.
// Build is pure arithmetic over (page, limit, total); it never touches
// the data store, so the metadata is always internally consistent.
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultLimit is the page size used when the request does not specify one.
const DefaultLimit = 20

// MaxLimit caps the page size a single request may ask for.
const MaxLimit = 100

// Pagination is the wire-format pagination block in list envelopes.
type Pagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	Pages   int64 `json:"pages"`
	HasMore bool  `json:"hasMore"`
}

// Build computes pagination metadata. pages = ceil(total/limit), 0 when
// total is 0; hasMore = page < pages. page <= 0, limit <= 0 and total < 0
// are rejected as invalid input rather than clamped.
func Build(page, limit int, total int64) (Pagination, error) {
	if page <= 0 {
		return Pagination{}, apierr.Invalid("page must be a positive integer")
	}
	if limit <= 0 {
		return Pagination{}, apierr.Invalid("limit must be a positive integer")
	}
	if total < 0 {
		return Pagination{}, apierr.Invalid("total must not be negative")
	}
	pages := (total + int64(limit) - 1) / int64(limit)
	return Pagination{
		Page:    page,
		Limit:   limit,
		Total:   total,
		Pages:   pages,
		HasMore: int64(page) < pages,
	}, nil
}

// Params are the list parameters parsed from a request.
type Params struct {
	Page   int
	Limit  int
	Search string
}

// ParseParams extracts page, limit and search from the query string.
// Missing values default to page 1 / DefaultLimit; non-numeric or
// non-positive values are invalid; limit is capped at MaxLimit.
func ParseParams(r *http.Request) (Params, error) {
	p := Params{Page: 1, Limit: DefaultLimit, Search: query.Get(r, "search")}

	if s := query.Get(r, "page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return Params{}, apierr.Invalid("page must be a positive integer")
		}
		p.Page = n
	}
	if s := query.Get(r, "limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return Params{}, apierr.Invalid("limit must be a positive integer")
		}
		if n > MaxLimit {
			n = MaxLimit
		}
		p.Limit = n
	}
	return p, nil
}

// Skip is the number of rows to skip for the current page.
func (p Params) Skip() int64 { return int64(p.Page-1) * int64(p.Limit) }

// Take is the number of rows to fetch for the current page.
func (p Params) Take() int64 { return int64(p.Limit) }
