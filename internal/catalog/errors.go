package catalog

import "errors"

var (
	ErrNotFound    = errors.New("product not found")
	ErrUnavailable = errors.New("product api unavailable")
)
