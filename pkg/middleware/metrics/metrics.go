package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
)

type observer interface {
	ObserveHTTPRequest(method, path string, status int, duration time.Duration)
}

// Middleware records request duration and count for every served route.
// The route template is used as the path label so parameterised routes
// do not explode cardinality.
func Middleware(obs observer) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		obs.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
