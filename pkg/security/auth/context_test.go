package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInjectAuth(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, ClaimsFromContext(ctx))
	assert.Empty(t, SubjectFromContext(ctx))
	assert.Empty(t, TokenFromContext(ctx))

	claims := &Claims{Subject: "u-1", Extra: map[string]interface{}{"email": "admin@kua.go.id"}}
	ctx = InjectAuth(ctx, claims, "raw-token")

	assert.Same(t, claims, ClaimsFromContext(ctx))
	assert.Equal(t, "u-1", SubjectFromContext(ctx))
	assert.Equal(t, "raw-token", TokenFromContext(ctx))
	assert.Equal(t, "admin@kua.go.id", claims.GetExtraString("email"))
	assert.Empty(t, claims.GetExtraString("missing"))
}

func TestSignOptions(t *testing.T) {
	exp := time.Unix(1700000000, 0)
	o := &SignOptions{}
	for _, opt := range []SignOption{
		WithExpiresAt(exp),
		WithTokenID("jti-1"),
		WithAudience("admin"),
		WithExtra(map[string]interface{}{"name": "Admin"}),
	} {
		opt(o)
	}

	assert.Equal(t, exp, *o.ExpiresAt)
	assert.Equal(t, "jti-1", o.TokenID)
	assert.Equal(t, []string{"admin"}, o.Audience)
	assert.Equal(t, "Admin", o.Extra["name"])
}
