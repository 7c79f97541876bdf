package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/quotesync/internal/client/storage"
	"github.com/iudanet/quotesync/internal/models"
)

// LoadConflicts reads the persisted conflict queue in queue order.
// Ключи - позиции в big-endian, поэтому ForEach обходит их по порядку.
func (s *Storage) LoadConflicts(ctx context.Context) ([]models.Conflict, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var conflicts []models.Conflict

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketConflicts)
		if bucket == nil {
			return fmt.Errorf("conflicts bucket not found")
		}

		return bucket.ForEach(func(_, v []byte) error {
			var c models.Conflict
			if err := json.Unmarshal(v, &c); err != nil {
				return fmt.Errorf("failed to unmarshal conflict: %w", err)
			}
			conflicts = append(conflicts, c)
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to load conflicts: %w", err)
	}

	return conflicts, nil
}

// SaveConflicts replaces the persisted conflict queue
func (s *Storage) SaveConflicts(ctx context.Context, conflicts []models.Conflict) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		return putConflicts(tx, conflicts)
	})

	if err != nil {
		return fmt.Errorf("failed to save conflicts: %w", err)
	}

	return nil
}

// putConflicts заменяет очередь внутри транзакции tx, ключ - позиция в очереди
func putConflicts(tx *bbolt.Tx, conflicts []models.Conflict) error {
	bucket, err := resetBucket(tx, bucketConflicts)
	if err != nil {
		return err
	}

	for i, c := range conflicts {
		data, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to marshal conflict %s: %w", c.ID(), err)
		}
		if err := bucket.Put(positionKey(i), data); err != nil {
			return fmt.Errorf("failed to save conflict %s: %w", c.ID(), err)
		}
	}

	return nil
}

func positionKey(i int) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(i))
	return key
}
