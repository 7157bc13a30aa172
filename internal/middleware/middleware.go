package middleware

import (
	"time"

	"github.com/duccv/bank-web/config"
	"github.com/gin-gonic/gin"
)

type MiddlewareConfig struct {
	// Session cookie
	CookieName   string
	CookieDomain string
	CookieSecure bool
	SessionTTL   time.Duration

	// Where unauthenticated users are sent
	LoginPath string

	// Logging
	LoggingEnabled bool
	LogUserAgent   bool
	LogIPAddress   bool
	SlowRequest    time.Duration
}

func DefaultMiddlewareConfig() *MiddlewareConfig {
	return &MiddlewareConfig{
		CookieName:     "bank_session",
		SessionTTL:     7 * 24 * time.Hour,
		LoginPath:      "/login",
		LoggingEnabled: true,
		LogUserAgent:   true,
		LogIPAddress:   true,
		SlowRequest:    5 * time.Second,
	}
}

// NewMiddlewareConfig derives the middleware settings from the application config.
func NewMiddlewareConfig(env *config.Env) *MiddlewareConfig {
	cfg := DefaultMiddlewareConfig()
	if env.SessionConfig.CookieName != "" {
		cfg.CookieName = env.SessionConfig.CookieName
	}
	cfg.CookieDomain = env.SessionConfig.CookieDomain
	cfg.CookieSecure = env.SessionConfig.CookieSecure
	if env.SessionConfig.TTL > 0 {
		cfg.SessionTTL = time.Duration(env.SessionConfig.TTL) * time.Second
	}
	if env.AppConfig.LoginPath != "" {
		cfg.LoginPath = env.AppConfig.LoginPath
	}
	return cfg
}

// getClientIP extracts the real client IP address
func getClientIP(c *gin.Context) string {
	if ip := c.GetHeader("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := c.GetHeader("X-Real-IP"); ip != "" {
		return ip
	}
	return c.ClientIP()
}
