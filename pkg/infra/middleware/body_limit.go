package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/datanikah/pkg/utils/errors"
	"github.com/kart-io/datanikah/pkg/utils/response"
)

// BodyLimit caps the request body at limit bytes. Requests announcing a
// larger Content-Length are rejected up front; others are wrapped with
// http.MaxBytesReader so handlers see an error once the cap is crossed.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > limit {
			resp := response.Err(errors.ErrRequestTooLarge).WithRequestID(GetRequestID(c.Request.Context()))
			c.AbortWithStatusJSON(resp.HTTPStatus(), resp)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
