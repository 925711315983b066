package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// NoCache disables client caching of dynamic responses so back/forward
// navigation cannot replay protected pages. Static assets keep normal
// caching.
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/static/") {
			c.Next()
			return
		}

		c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Next()
	}
}
