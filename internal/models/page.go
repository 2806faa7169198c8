package models

import "strconv"

// Page is one page of a listing.
type Page[T any] struct {
	Items      []T `json:"items"`
	Number     int `json:"page"`
	TotalPages int `json:"total_pages"`
	TotalItems int `json:"total_items"`
}

// NewPage wraps page n of a listing with total items. Items is never nil
// so an empty page encodes as [].
func NewPage[T any](items []T, n, total, perPage int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Number:     n,
		TotalPages: TotalPages(total, perPage),
		TotalItems: total,
	}
}

// ClampPage parses a page parameter. Garbage yields page 1, a page past the
// end yields the last page.
func ClampPage(raw string, total, perPage int) int {
	pages := TotalPages(total, perPage)
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	if n > pages {
		return pages
	}
	return n
}

// TotalPages is never below 1 so an empty listing still has a first page.
func TotalPages(total, perPage int) int {
	if perPage <= 0 {
		perPage = DefaultPageSize
	}
	if total <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}
