// Package pagination parses page requests and shapes paged results.
package pagination

import (
	"math"
	"net/url"
	"strconv"

	"github.com/JaimeStill/palmer/pkg/query"
)

// PageRequest is a client request for one page of data.
type PageRequest struct {
	Page     int
	PageSize int
	Sort     []query.SortField
}

// Normalize clamps the request to valid values for cfg. Page is capped so
// the row offset (Page-1)*PageSize cannot overflow.
func (r *PageRequest) Normalize(cfg Config) {
	if r.PageSize < 1 {
		r.PageSize = cfg.DefaultPageSize
	}
	r.PageSize = min(r.PageSize, cfg.MaxPageSize)

	r.Page = max(r.Page, 1)
	r.Page = min(r.Page, math.MaxInt/r.PageSize)
}

// PageRequestFromQuery parses the page, page_size and sort query parameters.
// Unparseable numbers fall back to the configured defaults.
func PageRequestFromQuery(values url.Values, cfg Config) PageRequest {
	page, _ := strconv.Atoi(values.Get("page"))
	pageSize, _ := strconv.Atoi(values.Get("page_size"))

	req := PageRequest{
		Page:     page,
		PageSize: pageSize,
		Sort:     query.ParseSortFields(values.Get("sort")),
	}

	req.Normalize(cfg)
	return req
}

// PageResult holds a page of data along with pagination metadata.
type PageResult[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// NewPageResult creates a PageResult with calculated total pages.
// An empty result still reports one page.
func NewPageResult[T any](data []T, total int, req PageRequest) PageResult[T] {
	totalPages := max((total+req.PageSize-1)/req.PageSize, 1)

	if data == nil {
		data = []T{}
	}

	return PageResult[T]{
		Data:       data,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}
}
