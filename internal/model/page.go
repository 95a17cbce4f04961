package model

import (
	"math"
	"strconv"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// PageRequest is a 1-based page number and a page size.
type PageRequest struct {
	Page  int
	Limit int
}

// Offset is the number of rows to skip for this page. A page so far out
// that the product overflows saturates at math.MaxInt, which no store can
// reach, so the page reads as empty.
func (p PageRequest) Offset() int {
	if p.Limit > 0 && p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// ParsePageRequest reads the raw "page" and "limit" query values.
// Missing, non-numeric and non-positive values fall back to the defaults.
// maxLimit caps the page size when positive; zero leaves it unbounded.
func ParsePageRequest(page, limit string, maxLimit int) PageRequest {
	req := PageRequest{
		Page:  parsePositive(page, DefaultPage),
		Limit: parsePositive(limit, DefaultPageSize),
	}
	if maxLimit > 0 && req.Limit > maxLimit {
		req.Limit = maxLimit
	}
	return req
}

func parsePositive(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// Pagination is the metadata block returned with every list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// Page is one page of T plus its pagination metadata.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

// NewPage computes the page count as ceil(total / limit).
func NewPage[T any](items []T, req PageRequest, total int) *Page[T] {
	pages := 0
	if req.Limit > 0 {
		pages = (total + req.Limit - 1) / req.Limit
	}
	return &Page[T]{
		Items: items,
		Pagination: Pagination{
			Page:  req.Page,
			Limit: req.Limit,
			Total: total,
			Pages: pages,
		},
	}
}
