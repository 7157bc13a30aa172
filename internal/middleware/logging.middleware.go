package middleware

import (
	"time"

	"github.com/duccv/bank-web/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoggingMiddleware provides request logging functionality
type LoggingMiddleware struct {
	config *MiddlewareConfig
}

func NewLoggingMiddleware(config *MiddlewareConfig) *LoggingMiddleware {
	return &LoggingMiddleware{config: config}
}

// RequestLogger logs one line per request once the handler chain returns.
func (l *LoggingMiddleware) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.config.LoggingEnabled {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		log := l.createRequestLogger(c)
		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.Int("size", c.Writer.Size()),
			zap.Duration("duration", duration),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Error("Request completed", fields...)
		case status >= 400:
			log.Warn("Request completed", fields...)
		default:
			log.Info("Request completed", fields...)
		}

		if l.config.SlowRequest > 0 && duration > l.config.SlowRequest {
			log.Warn("Slow request detected", zap.Duration("duration", duration))
		}
	}
}

func (l *LoggingMiddleware) createRequestLogger(c *gin.Context) *zap.Logger {
	log := logger.FromContext(c.Request.Context()).With(
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
	)
	if l.config.LogIPAddress {
		log = log.With(zap.String("ip", getClientIP(c)))
	}
	if l.config.LogUserAgent {
		log = log.With(zap.String("userAgent", c.GetHeader("User-Agent")))
	}
	if h := SessionFrom(c); h != nil {
		log = logger.WithSession(log, h.ID())
		if uid := h.UserID(); uid != "" {
			log = logger.WithUser(log, uid)
		}
	}
	return log
}
