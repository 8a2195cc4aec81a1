// Package handler implements the datanikah HTTP endpoints.
package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/datanikah/pkg/infra/middleware"
	"github.com/kart-io/datanikah/pkg/utils/errors"
	"github.com/kart-io/datanikah/pkg/utils/validator"
)

// bindJSON decodes the body into req and validates it.
func bindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return errors.ErrBadRequest.WithCause(err)
	}
	return validate(c, req)
}

// bindQuery decodes the query string into req and validates it.
func bindQuery(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindQuery(req); err != nil {
		return errors.ErrInvalidParam.WithCause(err)
	}
	return validate(c, req)
}

func validate(c *gin.Context, req interface{}) error {
	err := validator.Default().Struct(req, middleware.Language(c))
	if err == nil {
		return nil
	}
	if verr, ok := err.(*validator.Error); ok {
		msg := strings.Join(verr.Messages, "; ")
		return errors.ErrValidationFailed.WithMessage(msg)
	}
	return errors.ErrValidationFailed.WithCause(err)
}
