package storage

import "errors"

// Common client storage errors
var (
	// ErrStorageFault indicates a local persistence failure (I/O or serialization).
	// The sync service wraps every store error with it; a pass that hits it is aborted.
	ErrStorageFault = errors.New("storage fault")

	// ErrRecordNotFound indicates that a record with the given ID is not in the local replica
	ErrRecordNotFound = errors.New("record not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
