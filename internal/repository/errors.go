package repository

import "errors"

var (
	// ErrNotFound is returned when a requested record doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrCorruptRecord is returned when a stored record fails to decode
	ErrCorruptRecord = errors.New("corrupt record")
)
