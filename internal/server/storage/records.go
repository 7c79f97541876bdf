package storage

import (
	"context"

	"github.com/iudanet/quotesync/internal/models"
)

//go:generate moq -out records_mock.go . RecordStorage

// RecordStorage defines the authoritative replica persistence
type RecordStorage interface {
	// ListRecords returns every record ordered by ID.
	// Returns empty slice if no records found
	ListRecords(ctx context.Context) ([]models.Record, error)

	// GetRecord retrieves a single record by ID.
	// Returns ErrRecordNotFound if the record doesn't exist
	GetRecord(ctx context.Context, id string) (*models.Record, error)

	// UpsertRecord creates or replaces a record unconditionally.
	// The record's UpdatedAt is stored as sent by the client.
	UpsertRecord(ctx context.Context, record models.Record) error
}
