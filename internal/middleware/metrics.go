package middleware

import (
	"strconv"
	"time"

	"kioscopos/internal/infra"

	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latency per route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		infra.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		infra.HTTPDuracion.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
