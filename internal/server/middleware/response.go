package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/iudanet/quotesync/pkg/api"
)

// writeError отправляет JSON ответ с ошибкой в формате api.ErrorResponse
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
