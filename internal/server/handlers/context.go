package handlers

import (
	"context"

	"github.com/iudanet/noteful/internal/server/auth"
)

type contextKey string

// ClaimsKey ключ для хранения claims токена в контексте
const ClaimsKey contextKey = "claims"

// WithClaims кладет claims проверенного токена в контекст
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}

// GetClaims извлекает claims из контекста запроса
func GetClaims(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}
