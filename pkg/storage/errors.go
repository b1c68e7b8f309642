package storage

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCancelled is returned by iterators when the caller's context ended
	// before the sequence was exhausted.
	ErrCancelled = errors.New("request has been cancelled")
)
