package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/filmadmin/internal/logger"
)

// RequestLogger logs every HTTP request at debug level, and server errors at
// error level.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip logging for health checks
		if c.Request.URL.Path == "/api/health" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", status,
			"duration", time.Since(start).String(),
			"size", c.Writer.Size(),
			"ip", c.ClientIP(),
			"request_id", c.GetString(RequestIDKey),
		}

		if status >= 500 {
			logger.Error("HTTP request failed", fields...)
			return
		}
		logger.Debug("HTTP request", fields...)
	}
}

// ErrorLogger logs errors attached to the gin context
func ErrorLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, err := range c.Errors {
			logger.Error("request error",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"error", err.Error(),
				"type", err.Type,
				"request_id", c.GetString(RequestIDKey),
			)
		}
	}
}
