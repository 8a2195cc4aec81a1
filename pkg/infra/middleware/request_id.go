// Package middleware provides the gin middlewares shared by HTTP services.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/datanikah/pkg/utils/id"
)

// HeaderXRequestID is the header carrying the request ID.
const HeaderXRequestID = "X-Request-ID"

// ContextKeyRequestID is the gin context key for the request ID.
const ContextKeyRequestID = "request_id"

type requestIDKey struct{}

// RequestID assigns every request an ID, reusing an inbound X-Request-ID.
// The ID is echoed in the response header and stored in both the gin
// context and the request context.
func RequestID() gin.HandlerFunc {
	return RequestIDWithGenerator(id.NewULID)
}

// RequestIDWithGenerator is RequestID with a custom ID generator.
func RequestIDWithGenerator(generate func() string) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderXRequestID)
		if requestID == "" {
			requestID = generate()
		}

		c.Header(HeaderXRequestID, requestID)
		c.Set(ContextKeyRequestID, requestID)
		c.Request = c.Request.WithContext(WithRequestID(c.Request.Context(), requestID))

		c.Next()
	}
}

// WithRequestID stores the request ID in ctx.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// GetRequestID returns the request ID from ctx, or "".
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}
