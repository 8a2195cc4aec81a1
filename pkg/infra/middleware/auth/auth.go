// Package auth provides the bearer-token authentication middleware.
package auth

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/kart-io/datanikah/pkg/infra/middleware"
	"github.com/kart-io/datanikah/pkg/security/auth"
	"github.com/kart-io/datanikah/pkg/utils/errors"
	"github.com/kart-io/datanikah/pkg/utils/response"
)

// ContextKeyClaims is the gin context key holding *auth.Claims.
const ContextKeyClaims = "auth_claims"

// Verifier verifies a raw token.
type Verifier interface {
	Verify(ctx context.Context, token string) (*auth.Claims, error)
}

// Authn rejects requests without a valid bearer token.
//
// The token is read from "Authorization: Bearer <token>" and, for clients
// that cannot set headers (EventSource), from the access_token query
// parameter. Verified claims are injected into the request context.
func Authn(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abort(c, errors.ErrUnauthorized)
			return
		}

		claims, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			logger.Warnw("authentication failed",
				"path", c.Request.URL.Path,
				"request_id", middleware.GetRequestID(c.Request.Context()),
				"error", err.Error(),
			)
			abort(c, errors.FromError(err))
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Request = c.Request.WithContext(auth.InjectAuth(c.Request.Context(), claims, token))
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return c.Query("access_token")
}

func abort(c *gin.Context, e *errors.Errno) {
	resp := response.ErrWithLang(e, middleware.Language(c)).
		WithRequestID(middleware.GetRequestID(c.Request.Context()))
	c.AbortWithStatusJSON(resp.HTTPStatus(), resp)
}
