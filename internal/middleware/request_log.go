package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/storefront-backend/internal/logger"
)

// RequestLog logs one line per request, tiered by status class.
func RequestLog(log *logger.Logger) gin.HandlerFunc {
	requestLog := log.With("middleware", "RequestLog")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		switch {
		case status >= 500:
			requestLog.Error("Request failed", fields...)
		case status >= 400:
			requestLog.Warn("Request rejected", fields...)
		default:
			requestLog.Debug("Request served", fields...)
		}
	}
}
