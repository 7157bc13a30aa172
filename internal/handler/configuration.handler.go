package handler

import (
	"net/http"

	"github.com/duccv/bank-web/internal/constant"
	"github.com/duccv/bank-web/internal/model"
	"github.com/duccv/bank-web/internal/model/response"
	"github.com/duccv/bank-web/internal/validation"
	"github.com/duccv/bank-web/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) registerConfigurationRoutes(g *gin.RouterGroup) {
	g.GET("/profile", h.Profile)
	g.PUT("/phone", validation.Validate[model.UpdatePhoneRequest, any, any](), h.UpdatePhone)
	g.PUT("/password", validation.Validate[model.UpdatePasswordRequest, any, any](), h.UpdatePassword)
	g.DELETE("/account", h.DeleteAccount)
	g.GET("/login-history", h.LoginHistory)
	g.PUT("/theme", validation.Validate[model.ThemeRequest, any, any](), h.SetTheme)
}

func (h *Handler) Profile(c *gin.Context) {
	user, err := h.client(c).User(c.Request.Context(), h.session(c).UserID())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, user)
}

func (h *Handler) UpdatePhone(c *gin.Context) {
	in := validation.Body[model.UpdatePhoneRequest](c)
	if err := h.client(c).UpdatePhone(c.Request.Context(), in.Phone); err != nil {
		h.fail(c, err)
		return
	}
	message(c, "Phone updated")
}

// UpdatePassword godoc
//
//	@Summary	Change the password
//	@Tags		Configuration
//	@Accept		json
//	@Produce	json
//	@Param		body	body		model.UpdatePasswordRequest	true	"Passwords"
//	@Success	200		{object}	response.ResponseData
//	@Failure	400		{object}	response.ResponseData
//	@Router		/configuration/password [put]
func (h *Handler) UpdatePassword(c *gin.Context) {
	in := validation.Body[model.UpdatePasswordRequest](c)
	if in.Password != in.ConfirmPassword {
		c.AbortWithStatusJSON(http.StatusBadRequest, constant.PASSWORD_MISMATCH)
		return
	}
	if err := h.client(c).UpdatePassword(c.Request.Context(), in.Password, in.OldPassword); err != nil {
		h.fail(c, err)
		return
	}
	message(c, "Password updated")
}

// DeleteAccount removes the account at the user service and deletes the
// stored session, theme included.
func (h *Handler) DeleteAccount(c *gin.Context) {
	ctx := c.Request.Context()
	sess := h.session(c)
	uid := sess.UserID()
	if err := h.client(c).DeleteAccount(ctx); err != nil {
		h.fail(c, err)
		return
	}
	if err := sess.Destroy(ctx); err != nil {
		logger.FromContext(ctx).Warn("Failed to delete session after account deletion", zap.Error(err))
	}
	h.admin.Forget(ctx, uid)

	res := response.Message("Account deleted")
	res.Data = response.Redirect{Redirect: h.guard.LoginPath()}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) LoginHistory(c *gin.Context) {
	items, err := h.client(c).LoginHistory(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(items))
}

// SetTheme stores the requested theme, or flips the current one when none is given.
func (h *Handler) SetTheme(c *gin.Context) {
	in := validation.Body[model.ThemeRequest](c)
	sess := h.session(c)

	theme := in.Theme
	if theme == "" {
		theme = constant.ThemeDark
		if themeOf(sess.Theme()) == constant.ThemeDark {
			theme = constant.ThemeLight
		}
	}
	if err := sess.SetTheme(c.Request.Context(), theme); err != nil {
		h.fail(c, err)
		return
	}
	ok(c, gin.H{"theme": theme})
}

func themeOf(stored string) string {
	if stored == constant.ThemeDark {
		return constant.ThemeDark
	}
	return constant.ThemeLight
}
