package middleware

import (
	"net/http"
	"time"

	coreport "github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
	"github.com/gin-gonic/gin"
)

// HealthPath is logged at debug level so health checks do not flood the request log
const HealthPath = "/health"

// Logger middleware logs every request once its final status is known.
// Server errors are logged at error level, rejected requests at warn.
func Logger(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		statusCode := c.Writer.Status()
		fields := map[string]any{
			"method":     method,
			"path":       path,
			"route":      c.FullPath(),
			"status":     statusCode,
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         c.ClientIP(),
			"request_id": c.GetHeader("X-Request-ID"),
			"user_id":    UserID(c),
			"user_agent": c.Request.UserAgent(),
			"bytes":      c.Writer.Size(),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.Errors()
		}

		switch {
		case statusCode >= http.StatusInternalServerError:
			logger.Error("Request failed", fields)
		case statusCode >= http.StatusBadRequest:
			logger.Warn("Request rejected", fields)
		case path == HealthPath:
			logger.Debug("Health check", fields)
		default:
			logger.Info("Request processed", fields)
		}
	}
}
