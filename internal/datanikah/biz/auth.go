package biz

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/kart-io/logger"
	"golang.org/x/crypto/bcrypt"

	"github.com/kart-io/datanikah/internal/datanikah/store"
	"github.com/kart-io/datanikah/internal/model"
	"github.com/kart-io/datanikah/pkg/security/auth"
	"github.com/kart-io/datanikah/pkg/security/auth/jwt"
	"github.com/kart-io/datanikah/pkg/utils/errors"
)

// AuthService handles administrator authentication.
type AuthService struct {
	jwtAuth *jwt.JWT
	users   store.UserStore
}

// NewAuthService creates a new AuthService.
func NewAuthService(jwtAuth *jwt.JWT, users store.UserStore) *AuthService {
	return &AuthService{
		jwtAuth: jwtAuth,
		users:   users,
	}
}

// Login checks the credentials and issues a token whose subject is the email.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.ErrInvalidCredentials
		}
		logger.Errorw("load user failed", "email", req.Email, "error", err.Error())
		return nil, errors.ErrDatabase.WithCause(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	token, err := s.jwtAuth.Sign(ctx, user.Email, auth.WithExtra(map[string]interface{}{
		"id":   user.ID.Hex(),
		"name": user.Name,
	}))
	if err != nil {
		return nil, err
	}

	logger.Infow("admin logged in", "email", user.Email)

	return &model.LoginResponse{
		Token:     token.GetAccessToken(),
		TokenType: token.GetTokenType(),
		ExpiresAt: token.GetExpiresAt(),
		User:      user,
	}, nil
}

// Logout revokes a token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.jwtAuth.Revoke(ctx, token)
}

// Me returns the user named by the token subject.
func (s *AuthService) Me(ctx context.Context, email string) (*model.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.ErrUnauthorized
		}
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return user, nil
}

// SeedAdmin creates the configured administrator unless the email exists.
func (s *AuthService) SeedAdmin(ctx context.Context, email, password, name string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	err = s.users.Create(ctx, &model.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
	})
	switch {
	case err == nil:
		logger.Infow("admin user created", "email", email)
		return nil
	case stderrors.Is(err, store.ErrDuplicate):
		return nil
	default:
		return err
	}
}
