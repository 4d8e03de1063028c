package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoggerMiddleware logs completed requests. Plain GETs and health/static
// paths are skipped to keep the log focused on state-changing traffic.
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		method := c.Request.Method

		c.Next()

		shouldLog := true
		if strings.Contains(path, "/health") ||
			strings.Contains(path, "/static") ||
			strings.Contains(path, "/favicon.ico") {
			shouldLog = false
		}
		if method == "GET" && shouldLog {
			shouldLog = false
		}

		if shouldLog {
			latency := time.Since(start)
			logger.Info("Request",
				zap.Int("status", c.Writer.Status()),
				zap.String("method", method),
				zap.String("path", path),
				zap.String("query", query),
				zap.String("ip", c.ClientIP()),
				zap.Duration("latency", latency),
			)
		}
	}
}
