package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/kart-io/datanikah/pkg/security/auth"
	"github.com/kart-io/datanikah/pkg/utils/errors"
)

type fakeVerifier struct{}

func (fakeVerifier) Verify(_ context.Context, token string) (*auth.Claims, error) {
	if token == "good" {
		return &auth.Claims{Subject: "user-1"}, nil
	}
	return nil, errors.ErrInvalidToken
}

func TestAuthn(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		header string
		query  string
		want   int
	}{
		{name: "缺少令牌", want: http.StatusUnauthorized},
		{name: "Bearer令牌有效", header: "Bearer good", want: http.StatusOK},
		{name: "查询参数令牌有效", query: "?access_token=good", want: http.StatusOK},
		{name: "令牌无效", header: "Bearer bad", want: http.StatusUnauthorized},
		{name: "错误的认证方案", header: "Basic good", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/me", Authn(fakeVerifier{}), func(c *gin.Context) {
				c.String(http.StatusOK, auth.SubjectFromContext(c.Request.Context()))
			})

			req := httptest.NewRequest(http.MethodGet, "/me"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, "user-1", w.Body.String())
			}
		})
	}
}
