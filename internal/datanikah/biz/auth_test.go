package biz

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/datanikah/internal/datanikah/store"
	"github.com/kart-io/datanikah/internal/model"
	"github.com/kart-io/datanikah/pkg/security/auth/jwt"
	"github.com/kart-io/datanikah/pkg/utils/errors"
)

const testKey = "test-signing-key-with-at-least-32-bytes"

func newTestAuth(t *testing.T) (*AuthService, *jwt.JWT) {
	t.Helper()
	j, err := jwt.New(jwt.WithKey(testKey), jwt.WithStore(jwt.NewMemoryStore(time.Minute)))
	require.NoError(t, err)

	svc := NewAuthService(j, store.NewMemoryFactory().Users())
	require.NoError(t, svc.SeedAdmin(context.Background(), "admin@kua.go.id", "rahasia123", "Admin KUA"))
	return svc, j
}

func TestAuthService_Login(t *testing.T) {
	svc, j := newTestAuth(t)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{Email: "Admin@KUA.go.id", Password: "rahasia123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "admin@kua.go.id", resp.User.Email)

	claims, err := j.Verify(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin@kua.go.id", claims.Subject)
	assert.Equal(t, "Admin KUA", claims.GetExtraString("name"))
}

func TestAuthService_LoginRejects(t *testing.T) {
	svc, _ := newTestAuth(t)

	tests := []struct {
		name string
		req  model.LoginRequest
	}{
		{"密码错误", model.LoginRequest{Email: "admin@kua.go.id", Password: "salah123"}},
		{"用户不存在", model.LoginRequest{Email: "lain@kua.go.id", Password: "rahasia123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &tt.req)
			assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
		})
	}
}

func TestAuthService_LogoutRevokes(t *testing.T) {
	svc, j := newTestAuth(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, &model.LoginRequest{Email: "admin@kua.go.id", Password: "rahasia123"})
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, resp.Token))

	_, err = j.Verify(ctx, resp.Token)
	assert.ErrorIs(t, err, errors.ErrTokenRevoked)
}

func TestAuthService_Me(t *testing.T) {
	svc, _ := newTestAuth(t)

	user, err := svc.Me(context.Background(), "admin@kua.go.id")
	require.NoError(t, err)
	assert.Equal(t, "Admin KUA", user.Name)
	assert.NotEmpty(t, user.PasswordHash)

	_, err = svc.Me(context.Background(), "hilang@kua.go.id")
	assert.ErrorIs(t, err, errors.ErrUnauthorized)
}

func TestAuthService_SeedAdminIsIdempotent(t *testing.T) {
	svc, _ := newTestAuth(t)

	assert.NoError(t, svc.SeedAdmin(context.Background(), "admin@kua.go.id", "lainnya123", "Lain"))
	assert.NoError(t, svc.SeedAdmin(context.Background(), "", "", ""))

	// 原密码仍然有效
	_, err := svc.Login(context.Background(), &model.LoginRequest{Email: "admin@kua.go.id", Password: "rahasia123"})
	assert.NoError(t, err)
}
