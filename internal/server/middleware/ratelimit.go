package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimiter ограничивает число запросов от одного клиента в окне времени.
// Окно фиксированное: по истечении window бакет пополняется целиком.
type RateLimiter struct {
	now     func() time.Time
	buckets map[string]*bucket
	logger  *slog.Logger
	stopC   chan struct{}
	rate    int
	window  time.Duration
	mu      sync.Mutex
	once    sync.Once
}

type bucket struct {
	windowStart time.Time
	tokens      int
}

// NewRateLimiter создает rate limiter и запускает очистку неактивных бакетов.
// Вызывающий обязан вызвать Stop.
func NewRateLimiter(rate int, window time.Duration, logger *slog.Logger) *RateLimiter {
	rl := &RateLimiter{
		now:     time.Now,
		buckets: make(map[string]*bucket),
		logger:  logger,
		stopC:   make(chan struct{}),
		rate:    rate,
		window:  window,
	}

	go rl.cleanup()

	return rl
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evict()
		case <-rl.stopC:
			return
		}
	}
}

// evict удаляет бакеты, окно которых давно закончилось
func (rl *RateLimiter) evict() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, b := range rl.buckets {
		if now.Sub(b.windowStart) > rl.window*2 {
			delete(rl.buckets, key)
		}
	}
}

// Stop останавливает горутину очистки. Повторный вызов безопасен.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stopC) })
}

// Allow расходует токен для key. Если токенов нет, возвращает false
// и время до начала следующего окна.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok || now.Sub(b.windowStart) >= rl.window {
		b = &bucket{windowStart: now, tokens: rl.rate}
		rl.buckets[key] = b
	}

	if b.tokens > 0 {
		b.tokens--
		return true, 0
	}

	return false, b.windowStart.Add(rl.window).Sub(now)
}

// Middleware возвращает 429 с заголовком Retry-After, когда клиент исчерпал лимит
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)

		allowed, retryAfter := rl.Allow(key)
		if !allowed {
			rl.logger.Warn("Rate limit exceeded",
				"client", key,
				"method", r.Method,
				"path", r.URL.Path,
			)

			seconds := int(math.Ceil(retryAfter.Seconds()))
			w.Header().Set("Retry-After", strconv.Itoa(max(seconds, 1)))
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientKey возвращает адрес клиента без порта.
// Заголовки прокси уже разобраны chi middleware.RealIP.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
