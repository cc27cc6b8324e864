package storage

import "errors"

// Sentinel errors for storage operations.
var (
	// ErrNotFound is returned when a record does not exist, or when it exists
	// but the owner predicate does not match. Callers cannot tell the two
	// apart, and must not try.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a uniqueness constraint is violated,
	// such as registering a username that is already taken.
	ErrConflict = errors.New("record already exists")
)
