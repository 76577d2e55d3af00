package statecraft

import "errors"

var (
	// Routing errors.
	ErrActionNotFound = errors.New("statecraft: action not found")

	// Registry errors.
	ErrModelNotFound = errors.New("statecraft: model not found")

	// Schema errors.
	ErrInvalidSchema     = errors.New("statecraft: invalid schema")
	ErrDuplicateProperty = errors.New("statecraft: duplicate property")
	ErrDuplicateAction   = errors.New("statecraft: duplicate action name")

	// Batch errors.
	ErrBatchLimit = errors.New("statecraft: batch limit exceeded")
)
