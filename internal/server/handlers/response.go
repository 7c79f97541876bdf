package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/quotesync/pkg/api"
)

// sendJSON отправляет JSON ответ
func sendJSON(w http.ResponseWriter, logger *slog.Logger, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}

// sendError отправляет ошибку в JSON формате
func sendError(w http.ResponseWriter, logger *slog.Logger, message string, statusCode int) {
	sendJSON(w, logger, statusCode, api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
