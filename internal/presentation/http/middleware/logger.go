package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/pkg/logger"
	"go.uber.org/zap"
)

// RequestLogger tags every request with an id, stores a request scoped
// logger in the context and logs the outcome once the handler returns
func RequestLogger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		l := base.With(zap.String("request_id", requestID))
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), l))

		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		// the auth middleware replaces the request logger with a tenant tagged one
		l = logger.FromContext(c.Request.Context())

		switch {
		case status >= 500:
			l.Error("Request completed", fields...)
		case status >= 400:
			l.Warn("Request completed", fields...)
		default:
			l.Info("Request completed", fields...)
		}
	}
}
