package auth

import (
	"context"
)

// contextKey is the type for context keys in this package.
type contextKey string

const (
	claimsKey contextKey = "auth:claims"
	tokenKey  contextKey = "auth:token"
)

// ClaimsFromContext returns the claims from the context, or nil.
func ClaimsFromContext(ctx context.Context) *Claims {
	if claims, ok := ctx.Value(claimsKey).(*Claims); ok {
		return claims
	}
	return nil
}

// SubjectFromContext returns the subject (user ID) from the context.
// Returns empty string if no claims are present.
func SubjectFromContext(ctx context.Context) string {
	if claims := ClaimsFromContext(ctx); claims != nil {
		return claims.Subject
	}
	return ""
}

// TokenFromContext returns the raw token string from the context.
func TokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(tokenKey).(string); ok {
		return token
	}
	return ""
}

// InjectAuth stores the verified claims and the raw token in ctx.
func InjectAuth(ctx context.Context, claims *Claims, token string) context.Context {
	ctx = context.WithValue(ctx, claimsKey, claims)
	return context.WithValue(ctx, tokenKey, token)
}
