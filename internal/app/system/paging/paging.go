// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultLimit is the page size used when the caller does not ask for one.
const DefaultLimit = 50

// MaxLimit caps the page size a caller may request.
const MaxLimit = 200

// Params holds the parsed page/limit pair. Page is 1-based.
type Params struct {
	Page  int
	Limit int
}

// Skip returns the number of documents to skip for this page.
func (p Params) Skip() int64 { return int64((p.Page - 1) * p.Limit) }

// Parse extracts "page" and "limit" query parameters, falling back to
// page 1 and defaultLimit (or DefaultLimit when defaultLimit <= 0) on
// missing or invalid values.
func Parse(r *http.Request, defaultLimit int) Params {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	p := Params{Page: 1, Limit: defaultLimit}

	if s := query.Get(r, "page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			p.Page = n
		}
	}
	if s := query.Get(r, "limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			if n > MaxLimit {
				n = MaxLimit
			}
			p.Limit = n
		}
	}
	return p
}

// Meta is the pagination block returned alongside paged lists.
type Meta struct {
	Page      int   `json:"page"`
	Limit     int   `json:"limit"`
	Total     int64 `json:"total"`
	PageCount int   `json:"pages"`
}

// NewMeta computes the response metadata for a page over total matches.
func NewMeta(p Params, total int64) Meta {
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Meta{Page: p.Page, Limit: p.Limit, Total: total, PageCount: pages}
}
