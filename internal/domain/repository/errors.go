package repository

import "errors"

var (
	// ErrNotFound is returned by lookups and updates that match no record.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert violates a unique index.
	ErrDuplicate = errors.New("duplicate key")
)
