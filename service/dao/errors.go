package dao

import "errors"

// Common loader errors. Using sentinel variables allows callers to detect
// error conditions via errors.Is instead of string comparisons.

var (
	// ErrNotFound is returned when the requested file does not exist.
	ErrNotFound = errors.New("dao: not found")

	// ErrShortRead indicates a file with fewer lines than required.
	ErrShortRead = errors.New("dao: short read")

	// ErrInvalidRecord indicates content that cannot be decoded.
	ErrInvalidRecord = errors.New("dao: invalid record")
)
