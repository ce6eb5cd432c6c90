package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/you/blogsvc/internal/metrics"
)

// Metrics observes request latency labelled by route pattern
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
