package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/duccv/bank-web/internal/constant"
	"github.com/duccv/bank-web/internal/model/response"
	"github.com/duccv/bank-web/internal/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminChecker answers whether the session's user is an administrator.
type AdminChecker interface {
	IsAdmin(ctx context.Context, h *session.Handle) (bool, error)
}

// Guard protects routes that need a logged-in session.
type Guard struct {
	config *MiddlewareConfig
}

func NewGuard(config *MiddlewareConfig) *Guard {
	return &Guard{config: config}
}

// RequireLogin lets the request through when the session holds an access
// token. Token expiry is not checked here; the backend interceptor handles it.
func (g *Guard) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := SessionFrom(c)
		if h != nil && h.HasAccessToken() {
			c.Next()
			return
		}
		zap.L().Debug("Guard redirecting to login", zap.String("path", c.Request.URL.Path))
		g.RedirectToLogin(c)
	}
}

// RequireAdmin must run after RequireLogin.
func (g *Guard) RequireAdmin(checker AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := SessionFrom(c)
		ok, err := checker.IsAdmin(c.Request.Context(), h)
		if err != nil {
			g.AbortWithError(c, err)
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, constant.FORBIDDEN)
			return
		}
		c.Next()
	}
}

// RedirectToLogin aborts with a 302 for page loads and a 401 envelope
// naming the login view for API calls.
func (g *Guard) RedirectToLogin(c *gin.Context) {
	if wantsHTML(c) {
		c.Redirect(http.StatusFound, g.config.LoginPath)
		c.Abort()
		return
	}
	res := constant.UNAUTHORIZED
	res.Data = response.Redirect{Redirect: g.config.LoginPath}
	c.AbortWithStatusJSON(http.StatusUnauthorized, res)
}

func wantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}

func (g *Guard) LoginPath() string {
	return g.config.LoginPath
}
