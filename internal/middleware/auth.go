package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"boardTracker/internal/auth"
	"boardTracker/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const userIDKey contextKey = "user_id"

// Auth проверяет bearer-токен и кладёт id пользователя в контекст запроса
func Auth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				logger.Warn("HTTP: Запрос без токена",
					zap.String("path", r.URL.Path),
					zap.String("client_ip", r.RemoteAddr))
				unauthorized(w, "Токен не передан")
				return
			}

			tokenString := strings.TrimPrefix(h, "Bearer ")
			userID, err := auth.ParseToken(secret, tokenString)
			if err != nil {
				logger.Warn("HTTP: Невалидный токен",
					zap.String("path", r.URL.Path),
					zap.String("client_ip", r.RemoteAddr))
				unauthorized(w, "Невалидный токен")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID кладёт id авторизованного пользователя в контекст
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{"error": message})
}
