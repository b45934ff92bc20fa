package cart

import "errors"

var (
	// -- Programmer errors --
	ErrInvalidQuantity = errors.New("invalid cart quantity")
	ErrInvalidLine     = errors.New("invalid cart line")

	// -- Resource State --
	ErrProductNotFound = errors.New("product not found")

	// -- Persistence --
	ErrCorruptCart = errors.New("corrupt stored cart")
)
