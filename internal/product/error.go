package product

import "errors"

var (
	ErrNotFound         = errors.New("product not found")
	ErrUnexpectedStatus = errors.New("unexpected catalog response status")
	ErrInvalidPayload   = errors.New("invalid catalog payload")
)

// Reasons a raw catalog entry is dropped at the boundary.
const (
	RejectMissingID    = "missing id"
	RejectMissingName  = "missing name"
	RejectInvalidPrice = "missing or negative price"
	RejectDuplicateID  = "duplicate id"
	RejectMalformed    = "malformed entry"
)
