package handler

import (
	"errors"
	"net/http"

	"github.com/duccv/bank-web/internal/backend"
	"github.com/duccv/bank-web/internal/constant"
	"github.com/duccv/bank-web/internal/model"
	"github.com/duccv/bank-web/internal/model/response"
	"github.com/duccv/bank-web/internal/validation"
	"github.com/duccv/bank-web/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) registerAuthRoutes(g *gin.RouterGroup) {
	g.POST("/login", validation.Validate[model.LoginRequest, any, any](), h.Login)
	g.POST("/logout", h.Logout)
	g.GET("/session", h.Session)
	g.POST("/register", validation.Validate[model.RegisterRequest, any, any](), h.Register)
	g.GET("/email-status", validation.Validate[any, any, model.EmailQuery](), h.EmailStatus)
	g.POST("/verify-email", validation.Validate[model.VerifyEmailRequest, any, any](), h.VerifyEmail)
	g.POST("/resend-code", validation.Validate[model.ResendCodeRequest, any, any](), h.ResendCode)
}

// Login godoc
//
//	@Summary		Log in
//	@Description	Exchanges CPF and password for tokens kept in the server side session
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		model.LoginRequest	true	"Credentials"
//	@Success		200		{object}	response.ResponseData{data=model.SessionState}
//	@Failure		400		{object}	response.ResponseData
//	@Failure		401		{object}	response.ResponseData
//	@Router			/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	in := validation.Body[model.LoginRequest](c)
	sess := h.session(c)

	tokens, err := h.backends.Public().Login(ctx, in)
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		res := constant.UNAUTHORIZED
		res.Msg = apiErr.Message
		res.Error = apiErr.Category
		c.AbortWithStatusJSON(http.StatusUnauthorized, res)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := sess.Begin(ctx, tokens, ""); err != nil {
		h.fail(c, err)
		return
	}

	userID, err := h.client(c).UserIDByCPF(ctx, in.CPF)
	if err != nil {
		logger.FromContext(ctx).Warn("Failed to resolve user id after login", zap.Error(err))
		if cerr := sess.Clear(ctx); cerr != nil {
			logger.FromContext(ctx).Warn("Failed to clear session after login failure", zap.Error(cerr))
		}
		h.fail(c, err)
		return
	}
	if err := sess.SetUserID(ctx, userID); err != nil {
		h.fail(c, err)
		return
	}
	h.admin.Forget(ctx, userID)

	logger.WithUser(logger.FromContext(ctx), userID).Info("User logged in")
	ok(c, model.SessionState{Authenticated: true, UserID: userID, Theme: themeOf(sess.Theme())})
}

// Logout drops the session's credentials. Calling it without a session is fine.
//
//	@Summary	Log out
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	response.ResponseData{data=response.Redirect}
//	@Router		/auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	sess := h.session(c)
	uid := sess.UserID()
	if err := sess.Clear(ctx); err != nil {
		h.fail(c, err)
		return
	}
	h.admin.Forget(ctx, uid)

	res := response.Message("Logged out")
	res.Data = response.Redirect{Redirect: h.guard.LoginPath()}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Session(c *gin.Context) {
	sess := h.session(c)
	ok(c, model.SessionState{
		Authenticated: sess.HasAccessToken(),
		UserID:        sess.UserID(),
		Theme:         themeOf(sess.Theme()),
	})
}

func (h *Handler) Register(c *gin.Context) {
	msg, err := h.backends.Public().Register(c.Request.Context(), validation.Body[model.RegisterRequest](c))
	if err != nil {
		h.fail(c, err)
		return
	}
	message(c, msg)
}

// EmailStatus reports whether a pending registration confirmed its email.
func (h *Handler) EmailStatus(c *gin.Context) {
	q := validation.Query[model.EmailQuery](c)
	status, err := h.backends.Public().EmailVerificationStatus(c.Request.Context(), q.Email)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, gin.H{"email": q.Email, "status": status})
}

func (h *Handler) VerifyEmail(c *gin.Context) {
	msg, err := h.backends.Public().VerifyEmail(c.Request.Context(), validation.Body[model.VerifyEmailRequest](c))
	if err != nil {
		h.fail(c, err)
		return
	}
	message(c, msg)
}

func (h *Handler) ResendCode(c *gin.Context) {
	in := validation.Body[model.ResendCodeRequest](c)
	msg, err := h.backends.Public().ResendCode(c.Request.Context(), in.Email)
	if err != nil {
		h.fail(c, err)
		return
	}
	message(c, msg)
}
