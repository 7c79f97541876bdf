package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/quotesync/internal/models"
	"github.com/iudanet/quotesync/internal/server/storage"
)

// ListRecords returns every record ordered by ID
func (s *Storage) ListRecords(ctx context.Context) ([]models.Record, error) {
	query := `SELECT id, text, category, updated_at FROM records ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]models.Record, 0)
	for rows.Next() {
		var r models.Record
		if err := rows.Scan(&r.ID, &r.Text, &r.Category, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}

	return records, nil
}

// GetRecord retrieves a single record by ID
func (s *Storage) GetRecord(ctx context.Context, id string) (*models.Record, error) {
	query := `SELECT id, text, category, updated_at FROM records WHERE id = ?`

	var r models.Record
	err := s.db.QueryRowContext(ctx, query, id).Scan(&r.ID, &r.Text, &r.Category, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	return &r, nil
}

// UpsertRecord creates or replaces a record. Content always comes from the
// incoming record; updated_at never moves backwards, so an older snapshot
// pushed by KeepLocal still reads as the newest write on the next pass.
func (s *Storage) UpsertRecord(ctx context.Context, record models.Record) error {
	if record.ID == "" {
		return fmt.Errorf("%w: empty id", storage.ErrInvalidRecord)
	}
	if record.Category == "" {
		record.Category = models.DefaultCategory
	}

	query := `
		INSERT INTO records (id, text, category, updated_at, stored_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text       = excluded.text,
			category   = excluded.category,
			updated_at = MAX(records.updated_at, excluded.updated_at),
			stored_at  = excluded.stored_at
	`

	_, err := s.db.ExecContext(ctx, query,
		record.ID,
		record.Text,
		record.Category,
		record.UpdatedAt,
		s.now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert record: %w", err)
	}

	return nil
}
