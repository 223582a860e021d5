package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"schoolrecords/internal/pkg/metrics"
)

// RequestMetrics records every completed request into the metrics store.
// Health and metrics probes are excluded so monitors do not inflate counters.
func RequestMetrics(store *metrics.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/health" || path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		store.Record(path, c.Writer.Status(), time.Since(start))
	}
}
