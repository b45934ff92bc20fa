package catalog

import "errors"

var (
	ErrInvalidFilter     = errors.New("invalid filter")
	ErrInvalidPriceRange = errors.New("minimum price is greater than maximum price")
)
