package storage

import "errors"

// Common storage errors
var (
	// ErrRecordNotFound indicates that a record with the given ID does not exist
	ErrRecordNotFound = errors.New("record not found")

	// ErrInvalidRecord indicates that a record is missing required fields
	ErrInvalidRecord = errors.New("invalid record")
)
