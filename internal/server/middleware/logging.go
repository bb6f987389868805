package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shpitdev/air-assist/internal/server/respond"
)

// Logging emits one structured log line per request. Query strings are not logged
// because they carry questionnaire answers.
func Logging(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("request_id", RequestIDFromContext(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if code := c.GetString(respond.ErrorCodeKey); code != "" {
			fields = append(fields, zap.String("error_code", code))
		}

		switch {
		case c.Writer.Status() >= 500:
			log.Warn("request.complete", fields...)
		default:
			log.Info("request.complete", fields...)
		}
	}
}
