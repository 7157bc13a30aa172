package middleware

import (
	"net/http"

	"github.com/duccv/bank-web/internal/constant"
	"github.com/duccv/bank-web/internal/session"
	"github.com/duccv/bank-web/pkg/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionMiddleware resolves the session cookie into a session.Handle.
type SessionMiddleware struct {
	store  session.Store
	config *MiddlewareConfig
}

func NewSessionMiddleware(store session.Store, config *MiddlewareConfig) *SessionMiddleware {
	return &SessionMiddleware{store: store, config: config}
}

// Load opens the caller's session, minting a new id when the cookie is
// missing or malformed, and refreshes the cookie.
func (m *SessionMiddleware) Load() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(m.config.CookieName)
		if err != nil || !session.ValidID(id) {
			id = session.NewID()
		}

		h, err := session.Open(c.Request.Context(), m.store, id)
		if err != nil {
			metrics.SessionStoreErrors.WithLabelValues("load").Inc()
			zap.L().Error("Failed to load session", zap.Error(err))
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, constant.SERVICE_UNAVAILABLE)
			return
		}

		m.setCookie(c, id)
		c.Set(constant.SessionKey, h)
		c.Request = c.Request.WithContext(session.NewContext(c.Request.Context(), h))
		c.Next()
	}
}

func (m *SessionMiddleware) setCookie(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.config.CookieName, id, int(m.config.SessionTTL.Seconds()), "/",
		m.config.CookieDomain, m.config.CookieSecure, true)
}

// SessionFrom returns the handle stored by Load, or nil.
func SessionFrom(c *gin.Context) *session.Handle {
	v, ok := c.Get(constant.SessionKey)
	if !ok {
		return nil
	}
	h, _ := v.(*session.Handle)
	return h
}
