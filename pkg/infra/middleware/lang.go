package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Language returns "id" when the client prefers Indonesian, "en" otherwise.
// An explicit ?lang= query parameter wins over Accept-Language.
func Language(c *gin.Context) string {
	lang := c.Query("lang")
	if lang == "" {
		lang = c.GetHeader("Accept-Language")
	}
	lang = strings.ToLower(strings.TrimSpace(lang))
	if strings.HasPrefix(lang, "id") || strings.HasPrefix(lang, "in") {
		return "id"
	}
	return "en"
}
