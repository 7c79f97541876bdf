package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/quotesync/pkg/api"
)

// pingTimeout ограничивает проверку хранилища в health check
const pingTimeout = 2 * time.Second

// Pinger проверяет доступность хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	logger  *slog.Logger
	pinger  Pinger
	version string
}

// NewHealthHandler создает новый handler для health check.
// pinger может быть nil, тогда хранилище не проверяется.
func NewHealthHandler(logger *slog.Logger, version string, pinger Pinger) *HealthHandler {
	return &HealthHandler{
		logger:  logger,
		pinger:  pinger,
		version: version,
	}
}

// Health обрабатывает GET /api/v1/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		if err := h.pinger.Ping(ctx); err != nil {
			h.logger.ErrorContext(r.Context(), "storage unavailable", slog.Any("error", err))
			sendJSON(w, h.logger, http.StatusServiceUnavailable, api.HealthResponse{
				Status:  "unavailable",
				Version: h.version,
			})
			return
		}
	}

	sendJSON(w, h.logger, http.StatusOK, api.HealthResponse{
		Status:  "ok",
		Version: h.version,
	})
}
