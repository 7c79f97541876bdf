package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, rate int, window time.Duration) (*RateLimiter, *time.Time) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	limiter := NewRateLimiter(rate, window, logger)
	t.Cleanup(limiter.Stop)

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	return limiter, &now
}

func TestRateLimiter_Allow(t *testing.T) {
	t.Run("requests within limit are allowed", func(t *testing.T) {
		limiter, _ := newTestLimiter(t, 3, time.Minute)

		for i := 0; i < 3; i++ {
			allowed, _ := limiter.Allow("10.0.0.1")
			assert.True(t, allowed, "request %d should be allowed", i+1)
		}
	})

	t.Run("request over limit is denied with retry delay", func(t *testing.T) {
		limiter, now := newTestLimiter(t, 2, time.Minute)

		limiter.Allow("10.0.0.1")
		limiter.Allow("10.0.0.1")

		*now = now.Add(20 * time.Second)
		allowed, retryAfter := limiter.Allow("10.0.0.1")
		assert.False(t, allowed)
		assert.Equal(t, 40*time.Second, retryAfter)
	})

	t.Run("keys are tracked separately", func(t *testing.T) {
		limiter, _ := newTestLimiter(t, 1, time.Minute)

		allowed, _ := limiter.Allow("10.0.0.1")
		assert.True(t, allowed)
		allowed, _ = limiter.Allow("10.0.0.1")
		assert.False(t, allowed)

		allowed, _ = limiter.Allow("10.0.0.2")
		assert.True(t, allowed)
	})

	t.Run("tokens refill after window", func(t *testing.T) {
		limiter, now := newTestLimiter(t, 1, time.Minute)

		limiter.Allow("10.0.0.1")
		allowed, _ := limiter.Allow("10.0.0.1")
		require.False(t, allowed)

		*now = now.Add(time.Minute)
		allowed, _ = limiter.Allow("10.0.0.1")
		assert.True(t, allowed)
	})
}

func TestRateLimiter_Evict(t *testing.T) {
	limiter, now := newTestLimiter(t, 1, time.Minute)

	limiter.Allow("10.0.0.1")
	*now = now.Add(3 * time.Minute)
	limiter.Allow("10.0.0.2")

	limiter.evict()

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.NotContains(t, limiter.buckets, "10.0.0.1")
	assert.Contains(t, limiter.buckets, "10.0.0.2")
}

func TestRateLimiter_StopTwice(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1, time.Minute)
	assert.NotPanics(t, func() {
		limiter.Stop()
		limiter.Stop()
	})
}

func TestRateLimiter_Middleware(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1, time.Minute)

	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/records", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1234").Code)

	// другой порт того же клиента расходует тот же бакет
	rec := send("10.0.0.1:5678")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "rate limit exceeded")

	assert.Equal(t, http.StatusOK, send("10.0.0.2:1234").Code)
}

func TestClientKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	req.RemoteAddr = "192.168.1.10:4000"
	assert.Equal(t, "192.168.1.10", clientKey(req))

	req.RemoteAddr = "192.168.1.10"
	assert.Equal(t, "192.168.1.10", clientKey(req))
}
