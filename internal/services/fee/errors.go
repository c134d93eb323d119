package fee

import "errors"

// Engine errors
var (
	ErrInvalidInput = errors.New("invalid fee calculation input")
	ErrEmptyBatch   = errors.New("batch requires at least one item")
)
