package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/quotesync/internal/models"
	"github.com/iudanet/quotesync/internal/server/storage"
	"github.com/iudanet/quotesync/internal/validation"
	"github.com/iudanet/quotesync/pkg/api"
)

// maxRecordBody ограничивает размер тела PUT запроса
const maxRecordBody = 1 << 20

// RecordsHandler обрабатывает запросы к коллекции цитат
type RecordsHandler struct {
	logger  *slog.Logger
	storage storage.RecordStorage
}

// NewRecordsHandler создает новый handler для записей
func NewRecordsHandler(logger *slog.Logger, storage storage.RecordStorage) *RecordsHandler {
	return &RecordsHandler{
		logger:  logger,
		storage: storage,
	}
}

// List обрабатывает GET /api/v1/records
// Возвращает полный снимок коллекции
func (h *RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.storage.ListRecords(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list records", slog.Any("error", err))
		sendError(w, h.logger, "failed to list records", http.StatusInternalServerError)
		return
	}

	resp := api.RecordsResponse{Records: make([]api.Record, 0, len(records))}
	for _, rec := range records {
		resp.Records = append(resp.Records, api.Record{
			ID:        rec.ID,
			Text:      rec.Text,
			Category:  rec.Category,
			UpdatedAt: rec.UpdatedAt,
		})
	}

	h.logger.DebugContext(ctx, "records listed", slog.Int("count", len(resp.Records)))
	sendJSON(w, h.logger, http.StatusOK, resp)
}

// Upsert обрабатывает PUT /api/v1/records/{id}
// Содержимое сохраняется безусловно, updated_at на сервере не уменьшается
func (h *RecordsHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var req api.Record
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRecordBody)).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode record", slog.Any("error", err))
		sendError(w, h.logger, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.ID != "" && req.ID != id {
		sendError(w, h.logger, "record id does not match path", http.StatusBadRequest)
		return
	}
	if err := validation.ValidateText(req.Text); err != nil {
		sendError(w, h.logger, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateCategory(req.Category); err != nil {
		sendError(w, h.logger, err.Error(), http.StatusBadRequest)
		return
	}

	record := models.Record{
		ID:        id,
		Text:      req.Text,
		Category:  req.Category,
		UpdatedAt: req.UpdatedAt,
	}

	if err := h.storage.UpsertRecord(ctx, record); err != nil {
		if errors.Is(err, storage.ErrInvalidRecord) {
			sendError(w, h.logger, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to upsert record", slog.String("id", id), slog.Any("error", err))
		sendError(w, h.logger, "failed to save record", http.StatusInternalServerError)
		return
	}

	h.logger.DebugContext(ctx, "record upserted", slog.String("id", id), slog.Int64("updated_at", record.UpdatedAt))
	sendJSON(w, h.logger, http.StatusOK, api.Ack{ID: id, Success: true})
}
