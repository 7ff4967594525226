package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/noteful/internal/server/auth"
	"github.com/iudanet/noteful/internal/server/handlers"
)

// TokenValidator проверяет подпись и срок действия токена
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// AuthMiddleware создает middleware для проверки JWT токена
func AuthMiddleware(logger *slog.Logger, validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Извлекаем токен из заголовка Authorization
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.WarnContext(r.Context(), "missing Authorization header")
				handlers.SendError(logger, w, "", http.StatusUnauthorized)
				return
			}

			// Ожидаем формат: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
				// сам заголовок не логируем, в нем может быть токен
				logger.WarnContext(r.Context(), "invalid Authorization header format")
				handlers.SendError(logger, w, "", http.StatusUnauthorized)
				return
			}

			claims, err := validator.ValidateToken(strings.TrimSpace(parts[1]))
			if err != nil {
				logger.WarnContext(r.Context(), "invalid auth token", slog.Any("error", err))
				handlers.SendError(logger, w, "", http.StatusUnauthorized)
				return
			}

			logger.DebugContext(r.Context(), "user authenticated",
				slog.String("user_id", claims.User.ID),
				slog.String("username", claims.User.Username))

			// Передаем запрос дальше с claims в контексте
			next.ServeHTTP(w, r.WithContext(handlers.WithClaims(r.Context(), claims)))
		})
	}
}
