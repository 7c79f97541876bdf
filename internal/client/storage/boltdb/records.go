package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/quotesync/internal/client/storage"
	"github.com/iudanet/quotesync/internal/models"
)

// LoadRecords reads the full local replica
func (s *Storage) LoadRecords(ctx context.Context) (models.Collection, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	records := make(models.Collection)

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRecords)
		if bucket == nil {
			return fmt.Errorf("records bucket not found")
		}

		return bucket.ForEach(func(k, v []byte) error {
			var r models.Record
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("failed to unmarshal record %s: %w", k, err)
			}
			records[r.ID] = r
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	return records, nil
}

// SaveRecords replaces the local replica in a single transaction
func (s *Storage) SaveRecords(ctx context.Context, records models.Collection) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		return putRecords(tx, records)
	})

	if err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}

	return nil
}

// putRecords заменяет содержимое bucket records внутри транзакции tx
func putRecords(tx *bbolt.Tx, records models.Collection) error {
	bucket, err := resetBucket(tx, bucketRecords)
	if err != nil {
		return err
	}

	for id, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to marshal record %s: %w", id, err)
		}
		if err := bucket.Put([]byte(id), data); err != nil {
			return fmt.Errorf("failed to save record %q: %w", id, err)
		}
	}

	return nil
}
