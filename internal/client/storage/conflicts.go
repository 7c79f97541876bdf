package storage

import (
	"context"

	"github.com/iudanet/quotesync/internal/models"
)

//go:generate moq -out conflicts_mock.go . ConflictStorage

// ConflictStorage persists the conflict queue between CLI invocations
type ConflictStorage interface {
	// LoadConflicts returns the pending conflicts in queue order
	LoadConflicts(ctx context.Context) ([]models.Conflict, error)

	// SaveConflicts replaces the persisted queue with the given list
	SaveConflicts(ctx context.Context, conflicts []models.Conflict) error
}
