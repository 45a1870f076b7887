package pagination

import "math"

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params are the page-based query parameters shared by every list endpoint
type Params struct {
	Page  int `form:"page" json:"page"`
	Limit int `form:"limit" json:"limit"`
}

// Default returns the first page with the default size
func Default() *Params {
	return &Params{Page: 1, Limit: DefaultLimit}
}

// Validate clamps the parameters into range
func (p *Params) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

// Offset calculates the offset for SQL queries
func (p *Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination is the metadata returned alongside a page of items
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// New builds pagination metadata for a page of a result set of size total
func New(page, limit int, total int64) *Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}

	return &Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// Result is a page of items with its metadata
type Result[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

// NewResult wraps items and metadata. A nil slice is replaced with an empty one.
func NewResult[T any](items []T, p *Pagination) *Result[T] {
	if items == nil {
		items = []T{}
	}
	return &Result[T]{Items: items, Pagination: p}
}
