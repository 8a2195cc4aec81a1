// Package auth defines the token and claims types shared by the JWT
// authenticator and the HTTP middleware.
package auth

import "time"

// Claims is the verified content of an access token.
type Claims struct {
	Subject   string                 `json:"sub"`
	Issuer    string                 `json:"iss,omitempty"`
	Audience  []string               `json:"aud,omitempty"`
	ExpiresAt int64                  `json:"exp"`
	IssuedAt  int64                  `json:"iat"`
	NotBefore int64                  `json:"nbf,omitempty"`
	ID        string                 `json:"jti,omitempty"`
	Extra     map[string]interface{} `json:"extra,omitempty"`
}

// GetExtraString returns Extra[key] when it is a string.
func (c *Claims) GetExtraString(key string) string {
	if c == nil || c.Extra == nil {
		return ""
	}
	s, _ := c.Extra[key].(string)
	return s
}

// Token is an issued access token.
type Token interface {
	GetAccessToken() string
	GetTokenType() string
	GetExpiresAt() int64
}

// BaseToken is the default Token implementation.
type BaseToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (t *BaseToken) GetAccessToken() string { return t.AccessToken }
func (t *BaseToken) GetTokenType() string   { return t.TokenType }
func (t *BaseToken) GetExpiresAt() int64    { return t.ExpiresAt }

// SignOptions customizes a single Sign call.
type SignOptions struct {
	ExpiresAt *time.Time
	TokenID   string
	Audience  []string
	Extra     map[string]interface{}
}

// SignOption is a functional option for Sign.
type SignOption func(*SignOptions)

// WithExpiresAt overrides the configured expiration.
func WithExpiresAt(t time.Time) SignOption {
	return func(o *SignOptions) { o.ExpiresAt = &t }
}

// WithTokenID sets the jti claim.
func WithTokenID(id string) SignOption {
	return func(o *SignOptions) { o.TokenID = id }
}

// WithAudience overrides the configured audience.
func WithAudience(aud ...string) SignOption {
	return func(o *SignOptions) { o.Audience = aud }
}

// WithExtra attaches custom claims.
func WithExtra(extra map[string]interface{}) SignOption {
	return func(o *SignOptions) { o.Extra = extra }
}
