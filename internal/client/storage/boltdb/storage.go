package boltdb

import (
	"context"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

var (
	// BoltDB bucket names
	bucketRecords   = []byte("records")
	bucketConflicts = []byte("conflicts")
	bucketMetadata  = []byte("metadata")
)

// DefaultLockTimeout ограничивает ожидание файловой блокировки BoltDB.
// Пока запущен daemon, другие процессы не могут открыть ту же базу.
const DefaultLockTimeout = time.Second

// Storage represents BoltDB storage implementation for client
type Storage struct {
	db *bbolt.DB
}

// Option настраивает открытие хранилища
type Option func(*bbolt.Options)

// WithLockTimeout задает время ожидания файловой блокировки
func WithLockTimeout(d time.Duration) Option {
	return func(o *bbolt.Options) {
		o.Timeout = d
	}
}

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string, opts ...Option) (*Storage, error) {
	options := &bbolt.Options{Timeout: DefaultLockTimeout}
	for _, opt := range opts {
		opt(options)
	}

	// Открываем BoltDB
	db, err := bbolt.Open(dbPath, 0600, options)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb %s (is another quotesync process running?): %w", dbPath, err)
	}

	storage := &Storage{db: db}

	// Инициализируем buckets
	if err := storage.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return storage, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Path returns the database file path
func (s *Storage) Path() string {
	if s.db == nil {
		return ""
	}
	return s.db.Path()
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketRecords, bucketConflicts, bucketMetadata} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}

// resetBucket удаляет bucket вместе с содержимым и создает его заново
// внутри той же транзакции
func resetBucket(tx *bbolt.Tx, name []byte) (*bbolt.Bucket, error) {
	if tx.Bucket(name) != nil {
		if err := tx.DeleteBucket(name); err != nil {
			return nil, fmt.Errorf("failed to delete %s bucket: %w", name, err)
		}
	}
	bucket, err := tx.CreateBucket(name)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s bucket: %w", name, err)
	}
	return bucket, nil
}
