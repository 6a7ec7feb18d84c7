package middleware

import (
	"time"

	"macro-parity/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request counts and durations by route template, so
// path parameters do not explode label cardinality.
func Metrics(rec *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		rec.RecordHTTP(route, c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}
