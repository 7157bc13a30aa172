// Package handler serves the JSON view-models of the bank front-end.
package handler

import (
	"net/http"

	"github.com/duccv/bank-web/internal/backend"
	"github.com/duccv/bank-web/internal/middleware"
	"github.com/duccv/bank-web/internal/model/response"
	"github.com/duccv/bank-web/internal/session"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	backends *Backends
	guard    *middleware.Guard
	admin    *AdminRoles
}

func New(backends *Backends, guard *middleware.Guard, admin *AdminRoles) *Handler {
	return &Handler{backends: backends, guard: guard, admin: admin}
}

// RegisterRoutes mounts every view under api. The session middleware must
// already run on api.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	h.registerAuthRoutes(api.Group("/auth"))
	h.registerTheftRoutes(api)

	private := api.Group("", h.guard.RequireLogin())
	h.registerClientRoutes(private.Group("/client"))
	h.registerPaymentRoutes(private.Group("/payments"))
	h.registerConfigurationRoutes(private.Group("/configuration"))
	h.registerAdminRoutes(private.Group("/admin", h.guard.RequireAdmin(h.admin)))
}

func (h *Handler) session(c *gin.Context) *session.Handle {
	return middleware.SessionFrom(c)
}

// client returns the backend client acting as the caller's session.
func (h *Handler) client(c *gin.Context) *backend.Client {
	return h.backends.For(h.session(c))
}

func (h *Handler) fail(c *gin.Context, err error) {
	h.guard.AbortWithError(c, err)
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, response.OK(data))
}

func message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, response.Message(msg))
}
