package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/kart-io/datanikah/pkg/utils/errors"
	"github.com/kart-io/datanikah/pkg/utils/response"
)

// Recovery converts panics into an ErrPanic JSON response and logs the stack.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorw("panic recovered",
					"panic", fmt.Sprintf("%v", r),
					"path", c.Request.URL.Path,
					"request_id", GetRequestID(c.Request.Context()),
					"stack", string(debug.Stack()),
				)

				resp := response.Err(errors.ErrPanic).WithRequestID(GetRequestID(c.Request.Context()))
				c.AbortWithStatusJSON(resp.HTTPStatus(), resp)
			}
		}()
		c.Next()
	}
}
