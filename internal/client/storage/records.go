package storage

import (
	"context"

	"github.com/iudanet/quotesync/internal/models"
)

//go:generate moq -out records_mock.go . RecordStorage

// RecordStorage defines the local replica persistence.
// The replica is loaded and saved as a whole.
type RecordStorage interface {
	// LoadRecords returns the full local collection.
	// An empty store yields an empty, non-nil collection.
	LoadRecords(ctx context.Context) (models.Collection, error)

	// SaveRecords replaces the full local collection atomically
	SaveRecords(ctx context.Context, records models.Collection) error
}
