// Package httputils provides HTTP utility functions.
package httputils

import (
	"github.com/gin-gonic/gin"

	"github.com/kart-io/datanikah/pkg/infra/middleware"
	"github.com/kart-io/datanikah/pkg/utils/errors"
	"github.com/kart-io/datanikah/pkg/utils/response"
)

// WriteResponse writes the response to the client.
// It handles both success and error cases, ensuring consistent response format.
// Error messages follow the client's language preference.
func WriteResponse(c *gin.Context, err error, data interface{}) {
	requestID := middleware.GetRequestID(c.Request.Context())

	if err != nil {
		errno := errors.FromError(err)
		if errno.HTTPStatus() >= 500 {
			_ = c.Error(err)
		}
		resp := response.ErrWithLang(errno, middleware.Language(c)).WithRequestID(requestID)
		c.JSON(resp.HTTPStatus(), resp)
		return
	}

	// data can be *response.Response (e.g. from response.List) or raw data
	resp, ok := data.(*response.Response)
	if !ok {
		resp = response.Success(data)
	}
	resp.WithRequestID(requestID)
	c.JSON(resp.HTTPStatus(), resp)
}
