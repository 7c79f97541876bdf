package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/quotesync/internal/models"
	"github.com/iudanet/quotesync/internal/server/storage"
	"github.com/iudanet/quotesync/pkg/api"
)

func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError, // Only show errors in tests
	}
	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}

// newTestRouter монтирует handler так же, как это делает сервер, чтобы chi заполнил {id}
func newTestRouter(h *RecordsHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/v1/records", h.List)
	r.Put("/api/v1/records/{id}", h.Upsert)
	return r
}

func TestRecordsHandler_List(t *testing.T) {
	store := &storage.RecordStorageMock{
		ListRecordsFunc: func(ctx context.Context) ([]models.Record, error) {
			return []models.Record{
				{ID: "a", Text: "X", Category: "Design", UpdatedAt: 100},
				{ID: "b", Text: "Y", Category: "Motivation", UpdatedAt: 200},
			}, nil
		},
	}
	router := newTestRouter(NewRecordsHandler(setupTestLogger(), store))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/records", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp api.RecordsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Records, 2)
	assert.Equal(t, api.Record{ID: "a", Text: "X", Category: "Design", UpdatedAt: 100}, resp.Records[0])
	assert.Equal(t, int64(200), resp.Records[1].UpdatedAt)
}

func TestRecordsHandler_List_Empty(t *testing.T) {
	store := &storage.RecordStorageMock{
		ListRecordsFunc: func(ctx context.Context) ([]models.Record, error) {
			return nil, nil
		},
	}
	router := newTestRouter(NewRecordsHandler(setupTestLogger(), store))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/records", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	// пустая коллекция отдается как [], а не null
	assert.JSONEq(t, `{"records":[]}`, rec.Body.String())
}

func TestRecordsHandler_List_StorageError(t *testing.T) {
	store := &storage.RecordStorageMock{
		ListRecordsFunc: func(ctx context.Context) ([]models.Record, error) {
			return nil, errors.New("disk on fire")
		},
	}
	router := newTestRouter(NewRecordsHandler(setupTestLogger(), store))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/records", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "failed to list records", resp.Message)
	assert.NotContains(t, rec.Body.String(), "disk on fire")
}

func TestRecordsHandler_Upsert(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		body           string
		storeErr       error
		expectedStatus int
		expectedMsg    string
		expectStored   *models.Record
	}{
		{
			name:           "stores record with client timestamp",
			path:           "/api/v1/records/a",
			body:           `{"id":"a","text":"X","category":"Design","updated_at":1234}`,
			expectedStatus: http.StatusOK,
			expectStored:   &models.Record{ID: "a", Text: "X", Category: "Design", UpdatedAt: 1234},
		},
		{
			name:           "id taken from path when body omits it",
			path:           "/api/v1/records/b",
			body:           `{"text":"Y","updated_at":7}`,
			expectedStatus: http.StatusOK,
			expectStored:   &models.Record{ID: "b", Text: "Y", UpdatedAt: 7},
		},
		{
			name:           "id mismatch",
			path:           "/api/v1/records/a",
			body:           `{"id":"b","text":"X","updated_at":1}`,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "record id does not match path",
		},
		{
			name:           "empty text",
			path:           "/api/v1/records/a",
			body:           `{"id":"a","text":"   ","updated_at":1}`,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid input: text cannot be empty",
		},
		{
			name:           "category with control characters",
			path:           "/api/v1/records/a",
			body:           `{"id":"a","text":"X","category":"a\nb","updated_at":1}`,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid input: category cannot contain control characters",
		},
		{
			name:           "malformed json",
			path:           "/api/v1/records/a",
			body:           `{"id":`,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request body",
		},
		{
			name:           "storage rejects record",
			path:           "/api/v1/records/a",
			body:           `{"id":"a","text":"X","updated_at":1}`,
			storeErr:       fmt.Errorf("%w: empty id", storage.ErrInvalidRecord),
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid record: empty id",
		},
		{
			name:           "storage failure",
			path:           "/api/v1/records/a",
			body:           `{"id":"a","text":"X","updated_at":1}`,
			storeErr:       errors.New("locked"),
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "failed to save record",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &storage.RecordStorageMock{
				UpsertRecordFunc: func(ctx context.Context, record models.Record) error {
					return tt.storeErr
				},
			}
			router := newTestRouter(NewRecordsHandler(setupTestLogger(), store))

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, tt.path, strings.NewReader(tt.body))
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedStatus == http.StatusOK {
				var ack api.Ack
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&ack))
				assert.True(t, ack.Success)
				assert.Equal(t, tt.expectStored.ID, ack.ID)

				calls := store.UpsertRecordCalls()
				require.Len(t, calls, 1)
				assert.Equal(t, *tt.expectStored, calls[0].Record)
				return
			}

			var resp api.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, http.StatusText(tt.expectedStatus), resp.Error)
			assert.Equal(t, tt.expectedMsg, resp.Message)
		})
	}
}
