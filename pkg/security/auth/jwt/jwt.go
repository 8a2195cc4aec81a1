// Package jwt signs and verifies HMAC JSON Web Tokens for admin sessions.
//
// Usage:
//
//	j, err := jwt.New(jwt.WithOptions(opts), jwt.WithStore(jwt.NewMemoryStore()))
//	token, err := j.Sign(ctx, user.ID, auth.WithExtra(map[string]interface{}{"email": user.Email}))
//	claims, err := j.Verify(ctx, token.GetAccessToken())
package jwt

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/kart-io/datanikah/pkg/security/auth"
	"github.com/kart-io/datanikah/pkg/utils/errors"
)

// JWT issues and verifies tokens.
type JWT struct {
	opts   *Options
	store  Store
	method jwt.SigningMethod
}

// Option is a functional option for JWT.
type Option func(*JWT)

// New creates a new JWT authenticator.
func New(opts ...Option) (*JWT, error) {
	j := &JWT{opts: NewOptions()}
	for _, opt := range opts {
		opt(j)
	}

	if err := j.opts.Complete(); err != nil {
		return nil, fmt.Errorf("complete options: %w", err)
	}
	if errs := j.opts.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("validate options: %v", errs)
	}

	j.method = jwt.GetSigningMethod(j.opts.SigningMethod)
	if j.method == nil {
		return nil, fmt.Errorf("unsupported signing method: %s", j.opts.SigningMethod)
	}
	if j.store == nil {
		j.store = NewNoopStore()
	}
	return j, nil
}

// WithOptions sets the JWT options.
func WithOptions(opts *Options) Option {
	return func(j *JWT) {
		if opts != nil {
			j.opts = opts
		}
	}
}

// WithKey sets the signing key.
func WithKey(key string) Option {
	return func(j *JWT) { j.opts.Key = key }
}

// WithExpired sets the token expiration duration.
func WithExpired(d time.Duration) Option {
	return func(j *JWT) { j.opts.Expired = d }
}

// WithStore sets the token store for revocation support.
func WithStore(store Store) Option {
	return func(j *JWT) { j.store = store }
}

// Sign creates a new token for the given subject.
func (j *JWT) Sign(ctx context.Context, subject string, opts ...auth.SignOption) (auth.Token, error) {
	signOpts := &auth.SignOptions{}
	for _, opt := range opts {
		opt(signOpts)
	}

	now := time.Now()
	expiresAt := now.Add(j.opts.Expired)
	if signOpts.ExpiresAt != nil {
		expiresAt = *signOpts.ExpiresAt
	}

	tokenID := signOpts.TokenID
	if tokenID == "" {
		var err error
		if tokenID, err = generateTokenID(); err != nil {
			return nil, err
		}
	}

	audience := j.opts.Audience
	if len(signOpts.Audience) > 0 {
		audience = signOpts.Audience
	}

	claims := &customClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    j.opts.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			ID:        tokenID,
		},
		Extra: signOpts.Extra,
	}
	if len(audience) > 0 {
		claims.Audience = audience
	}

	tokenString, err := jwt.NewWithClaims(j.method, claims).SignedString([]byte(j.opts.Key))
	if err != nil {
		return nil, errors.ErrInternal.WithCause(err).WithMessage("failed to sign token")
	}

	return &auth.BaseToken{
		AccessToken: tokenString,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt.Unix(),
		ExpiresIn:   int64(expiresAt.Sub(now).Seconds()),
	}, nil
}

// Verify validates the token signature, lifetime and revocation state.
func (j *JWT) Verify(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if tokenString == "" {
		return nil, errors.ErrInvalidToken.WithMessage("token is empty")
	}

	claims, err := j.parse(tokenString, true)
	if err != nil {
		return nil, err
	}

	revoked, err := j.store.IsRevoked(ctx, tokenString)
	if err != nil {
		return nil, errors.ErrCache.WithCause(err)
	}
	if revoked {
		return nil, errors.ErrTokenRevoked
	}

	return claims.toAuthClaims(), nil
}

// Revoke blacklists the token until it would have expired anyway.
func (j *JWT) Revoke(ctx context.Context, tokenString string) error {
	if tokenString == "" {
		return errors.ErrInvalidToken.WithMessage("token is empty")
	}

	claims, err := j.parse(tokenString, false)
	if err != nil {
		return err
	}
	if claims.ExpiresAt == nil {
		return errors.ErrInvalidToken.WithMessage("missing expiration claim")
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := j.store.Revoke(ctx, tokenString, ttl); err != nil {
		return errors.ErrCache.WithCause(err)
	}
	return nil
}

func (j *JWT) parse(tokenString string, validate bool) (*customClaims, error) {
	var parserOpts []jwt.ParserOption
	if !validate {
		parserOpts = append(parserOpts, jwt.WithoutClaimsValidation())
	}

	token, err := jwt.NewParser(parserOpts...).ParseWithClaims(tokenString, &customClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != j.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(j.opts.Key), nil
	})
	if err != nil {
		return nil, mapParseError(err)
	}

	claims, ok := token.Claims.(*customClaims)
	if !ok || !token.Valid {
		return nil, errors.ErrInvalidToken.WithMessage("invalid claims")
	}
	return claims, nil
}

// mapParseError maps jwt parse errors to errno values.
func mapParseError(err error) *errors.Errno {
	var ve *jwt.ValidationError
	if !stderrors.As(err, &ve) {
		return errors.ErrInvalidToken.WithCause(err)
	}

	switch {
	case ve.Errors&jwt.ValidationErrorExpired != 0:
		return errors.ErrTokenExpired
	case ve.Errors&jwt.ValidationErrorSignatureInvalid != 0:
		return errors.ErrInvalidToken.WithMessage("invalid signature")
	case ve.Errors&jwt.ValidationErrorMalformed != 0:
		return errors.ErrInvalidToken.WithMessage("malformed token")
	case ve.Errors&jwt.ValidationErrorNotValidYet != 0:
		return errors.ErrInvalidToken.WithMessage("token not valid yet")
	default:
		return errors.ErrInvalidToken.WithCause(err)
	}
}

// customClaims extends jwt.RegisteredClaims with extra fields.
type customClaims struct {
	jwt.RegisteredClaims
	Extra map[string]interface{} `json:"extra,omitempty"`
}

func (c *customClaims) toAuthClaims() *auth.Claims {
	out := &auth.Claims{
		Subject:  c.Subject,
		Issuer:   c.Issuer,
		Audience: c.Audience,
		ID:       c.ID,
		Extra:    c.Extra,
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Unix()
	}
	if c.IssuedAt != nil {
		out.IssuedAt = c.IssuedAt.Unix()
	}
	if c.NotBefore != nil {
		out.NotBefore = c.NotBefore.Unix()
	}
	return out
}

// generateTokenID generates a random token ID.
func generateTokenID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", errors.ErrInternal.WithCause(err).WithMessage("failed to generate token ID")
	}
	return hex.EncodeToString(b), nil
}
