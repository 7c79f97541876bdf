package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/iudanet/quotesync/internal/server/jwt"
)

// contextKey тип для ключей контекста
type contextKey string

// subjectKey ключ для хранения subject токена в контексте
const subjectKey contextKey = "subject"

// TokenValidator проверяет bearer токен
type TokenValidator interface {
	Validate(token string) (*jwt.Claims, error)
}

// Subject извлекает subject токена из контекста запроса
func Subject(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectKey).(string)
	return subject, ok
}

// BearerAuth создает middleware для проверки JWT токена
func BearerAuth(logger *slog.Logger, validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimw.GetReqID(r.Context())

			// Извлекаем токен из заголовка Authorization
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("Missing Authorization header", "request_id", reqID)
				writeError(w, http.StatusUnauthorized, "missing token")
				return
			}

			// Ожидаем формат: "Bearer <token>"
			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				logger.Warn("Invalid Authorization header format", "request_id", reqID)
				writeError(w, http.StatusUnauthorized, "invalid token format")
				return
			}

			claims, err := validator.Validate(token)
			if err != nil {
				logger.Warn("Invalid access token", "request_id", reqID, "error", err)
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey, claims.Subject)
			logger.Debug("Client authenticated", "request_id", reqID, "subject", claims.Subject)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
