package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/kart-io/datanikah/internal/datanikah/biz"
	"github.com/kart-io/datanikah/internal/model"
	"github.com/kart-io/datanikah/internal/pkg/httputils"
	"github.com/kart-io/datanikah/pkg/security/auth"
	"github.com/kart-io/datanikah/pkg/utils/errors"
)

// AuthHandler handles administrator authentication requests.
type AuthHandler struct {
	svc *biz.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *biz.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), &req)
	if err != nil {
		logger.Warnw("login failed", "email", req.Email, "error", err.Error())
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, resp)
}

// Logout handles POST /v1/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := auth.TokenFromContext(c.Request.Context())
	if token == "" {
		httputils.WriteResponse(c, errors.ErrUnauthorized, nil)
		return
	}

	if err := h.svc.Logout(c.Request.Context(), token); err != nil {
		logger.Errorw("logout failed", "error", err.Error())
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, nil)
}

// Me handles GET /v1/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.svc.Me(c.Request.Context(), auth.SubjectFromContext(c.Request.Context()))
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}
	httputils.WriteResponse(c, nil, user)
}
