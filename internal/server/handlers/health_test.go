package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/quotesync/pkg/api"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler_Health(t *testing.T) {
	tests := []struct {
		name           string
		pinger         Pinger
		expectedStatus int
		expectedState  string
	}{
		{
			name:           "no storage check",
			expectedStatus: http.StatusOK,
			expectedState:  "ok",
		},
		{
			name:           "storage reachable",
			pinger:         pingerFunc(func(ctx context.Context) error { return nil }),
			expectedStatus: http.StatusOK,
			expectedState:  "ok",
		},
		{
			name:           "storage unreachable",
			pinger:         pingerFunc(func(ctx context.Context) error { return errors.New("closed") }),
			expectedStatus: http.StatusServiceUnavailable,
			expectedState:  "unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(setupTestLogger(), "1.2.3", tt.pinger)

			w := httptest.NewRecorder()
			handler.Health(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

			resp := w.Result()
			defer func() {
				assert.NoError(t, resp.Body.Close())
			}()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

			var health api.HealthResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
			assert.Equal(t, tt.expectedState, health.Status)
			assert.Equal(t, "1.2.3", health.Version)
		})
	}
}
