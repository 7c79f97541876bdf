package boltdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/quotesync/internal/client/storage"
	"github.com/iudanet/quotesync/internal/models"
)

func testConflict(id string) models.Conflict {
	return models.Conflict{
		Local:  models.Record{ID: id, Text: "local " + id, UpdatedAt: 100},
		Remote: models.Record{ID: id, Text: "remote " + id, UpdatedAt: 200},
	}
}

func TestLoadConflicts_Empty(t *testing.T) {
	store := newTestStorage(t)

	got, err := store.LoadConflicts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSaveConflicts_PreservesQueueOrder(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	// Порядок очереди не совпадает с алфавитным порядком ID
	want := make([]models.Conflict, 0, 12)
	for _, id := range []string{"z", "b", "m", "a", "k", "c", "y", "d", "x", "e", "w", "f"} {
		want = append(want, testConflict(id))
	}
	require.NoError(t, store.SaveConflicts(ctx, want))

	got, err := store.LoadConflicts(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSaveConflicts_Replaces(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	require.NoError(t, store.SaveConflicts(ctx, []models.Conflict{testConflict("a"), testConflict("b")}))
	require.NoError(t, store.SaveConflicts(ctx, []models.Conflict{testConflict("c")}))

	got, err := store.LoadConflicts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Conflict{testConflict("c")}, got)

	require.NoError(t, store.SaveConflicts(ctx, nil))
	got, err = store.LoadConflicts(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestConflicts_IndependentOfRecords(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	require.NoError(t, store.SaveConflicts(ctx, []models.Conflict{testConflict("a")}))
	require.NoError(t, store.SaveRecords(ctx, models.Collection{}))

	got, err := store.LoadConflicts(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestConflicts_Closed(t *testing.T) {
	store := &Storage{}

	_, err := store.LoadConflicts(context.Background())
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	assert.ErrorIs(t, store.SaveConflicts(context.Background(), nil), storage.ErrStorageClosed)
}
