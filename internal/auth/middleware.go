package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"snowrent/internal/dto"
)

type contextKey string

const userIDKey contextKey = "user_id"

func WithUserID(ctx context.Context, id uint) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromContext returns the id stored by Middleware.
func UserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(userIDKey).(uint)
	return id, ok && id != 0
}

// Middleware rejects requests without a valid bearer token.
func Middleware(tokens *TokenManager, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(raw) == "" {
				unauthorized(w, "missing bearer token", logger)
				return
			}

			claims, err := tokens.Validate(strings.TrimSpace(raw))
			if err != nil {
				logger.Debug("rejected token", zap.Error(err))
				unauthorized(w, err.Error(), logger)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.UserID)))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	resp := dto.NewErrorResponse("", http.StatusUnauthorized, "UNAUTHORIZED", message)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}
