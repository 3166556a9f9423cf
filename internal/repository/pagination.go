package repository

import "math"

// MaxPageSize bounds how many rows a single page may ask for.
const MaxPageSize = 1000

// PageRequest is a zero-based page window: page N of the given size.
type PageRequest struct {
	Page int
	Size int
}

// Limit and Offset translate the page window into SQL terms.
func (p PageRequest) Limit() int  { return p.Size }
func (p PageRequest) Offset() int { return p.Page * p.Size }

// OffsetFits reports whether Page*Size is representable as an int.
// Callers must reject the request otherwise; Offset would wrap.
func (p PageRequest) OffsetFits() bool {
	if p.Page <= 0 || p.Size <= 0 {
		return true
	}
	return p.Page <= math.MaxInt/p.Size
}

// PageResult carries a slice of items and the total count matching the query.
// I return the total so clients can compute pagination without an extra round trip.
type PageResult[T any] struct {
	Items []T
	Total int
}

// Page is the response envelope for one page of a larger ordered result set.
type Page[T any] struct {
	Content          []T  `json:"content"`
	TotalElements    int  `json:"totalElements"`
	TotalPages       int  `json:"totalPages"`
	Number           int  `json:"number"`
	Size             int  `json:"size"`
	NumberOfElements int  `json:"numberOfElements"`
	First            bool `json:"first"`
	Last             bool `json:"last"`
	Empty            bool `json:"empty"`
}

// NewPage builds the envelope for res as the result of request p.
func NewPage[T any](res PageResult[T], p PageRequest) Page[T] {
	items := res.Items
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if p.Size > 0 {
		totalPages = (res.Total + p.Size - 1) / p.Size
	}
	return Page[T]{
		Content:          items,
		TotalElements:    res.Total,
		TotalPages:       totalPages,
		Number:           p.Page,
		Size:             p.Size,
		NumberOfElements: len(items),
		First:            p.Page == 0,
		Last:             p.Page >= totalPages-1,
		Empty:            len(items) == 0,
	}
}
