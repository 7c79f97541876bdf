package boltdb

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/quotesync/internal/client/storage"
)

var keyLastSyncAt = []byte("last_sync_at")

var errMetadataBucketMissing = errors.New("metadata bucket not found")

// CommitPass сохраняет итог прохода в одной транзакции bbolt.
// Очередь пишется первой, затем реплика и время прохода; при любой ошибке
// транзакция откатывается и файл остается в состоянии до прохода.
func (s *Storage) CommitPass(ctx context.Context, commit storage.PassCommit) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		if commit.QueueChanged {
			if err := putConflicts(tx, commit.Conflicts); err != nil {
				return err
			}
		}
		if commit.Records != nil {
			if err := putRecords(tx, commit.Records); err != nil {
				return err
			}
		}

		meta := tx.Bucket(bucketMetadata)
		if meta == nil {
			return errMetadataBucketMissing
		}
		var ts [8]byte
		binary.BigEndian.PutUint64(ts[:], uint64(commit.SyncedAt))
		return meta.Put(keyLastSyncAt, ts[:])
	})

	if err != nil {
		return fmt.Errorf("failed to commit pass: %w", err)
	}

	return nil
}

// LastSyncAt returns the time of the last committed pass, 0 before the first one
func (s *Storage) LastSyncAt(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	var ts int64
	err := s.db.View(func(tx *bbolt.Tx) error {
		meta := tx.Bucket(bucketMetadata)
		if meta == nil {
			return errMetadataBucketMissing
		}
		if v := meta.Get(keyLastSyncAt); len(v) == 8 {
			ts = int64(binary.BigEndian.Uint64(v))
		}
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to read last sync time: %w", err)
	}

	return ts, nil
}
