package storage

import (
	"context"

	"github.com/iudanet/quotesync/internal/models"
)

// PassCommit локальный итог одного прохода синхронизации
type PassCommit struct {
	// Records новая локальная реплика; nil, если проход ее не менял
	Records models.Collection
	// Conflicts очередь конфликтов после прохода, записывается при QueueChanged
	Conflicts    []models.Conflict
	QueueChanged bool
	// SyncedAt время прохода (unix ms)
	SyncedAt int64
}

//go:generate moq -out pass_mock.go . PassStorage

// PassStorage сохраняет итог прохода целиком: либо все, либо ничего
type PassStorage interface {
	// CommitPass writes the replica, the conflict queue and the sync time
	// in one transaction
	CommitPass(ctx context.Context, commit PassCommit) error

	// LastSyncAt returns the time (unix ms) of the last committed pass,
	// 0 if there was none
	LastSyncAt(ctx context.Context) (int64, error)
}
