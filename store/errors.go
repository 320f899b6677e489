package store

import "errors"

// Common store errors.
var (
	// ErrNotFound is returned when an entity is not found in the graph.
	ErrNotFound = errors.New("entity not found")

	// ErrUnsupportedFormat is returned for an unrecognized serialization format.
	ErrUnsupportedFormat = errors.New("unsupported format")
)
