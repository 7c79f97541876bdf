package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
)

func TestLogging(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		contains []string
	}{
		{
			name:     "success is info",
			status:   http.StatusOK,
			contains: []string{"level=INFO", "status=200", "method=GET", "path=/api/v1/records", "bytes_written=2"},
		},
		{
			name:     "client error is warn",
			status:   http.StatusBadRequest,
			contains: []string{"level=WARN", "status=400"},
		},
		{
			name:     "server error is error",
			status:   http.StatusInternalServerError,
			contains: []string{"level=ERROR", "status=500"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			handler := chimw.RequestID(Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("ok"))
			})))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/records", nil)
			req.Header.Set("Authorization", "Bearer secret-token")
			handler.ServeHTTP(httptest.NewRecorder(), req)

			out := buf.String()
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			assert.Contains(t, out, "request_id=")
			assert.NotContains(t, out, "secret-token")
		})
	}
}

func TestLogging_SkipPaths(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := Logging(logger, "/health")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, buf.String())
}

func TestResponseWriter_DefaultStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	// обработчик не вызывает WriteHeader явно
	handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hello"))
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Contains(t, buf.String(), "status=200")
	assert.Contains(t, buf.String(), "bytes_written=5")
}
