package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrStockLimit is returned by presentation layers when the add control is disabled.
	ErrStockLimit = errors.New("stock limit reached")
	// ErrInvalidPaging indicates a negative offset or page size.
	ErrInvalidPaging = errors.New("invalid paging")
)
