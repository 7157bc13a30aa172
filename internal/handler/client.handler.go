package handler

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/duccv/bank-web/internal/backend"
	"github.com/duccv/bank-web/internal/constant"
	"github.com/duccv/bank-web/internal/loan"
	"github.com/duccv/bank-web/internal/model"
	"github.com/duccv/bank-web/internal/model/response"
	"github.com/duccv/bank-web/internal/session"
	"github.com/duccv/bank-web/internal/validation"
	"github.com/duccv/bank-web/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func (h *Handler) registerClientRoutes(g *gin.RouterGroup) {
	g.GET("/overview", h.Overview)
	g.GET("/card", h.Card)
	g.PUT("/card/block", h.BlockCard)
	g.POST("/card/request", h.RequestCard)
	g.POST("/credit/request", h.RequestCredit)
	g.POST("/loan/simulate", validation.Validate[model.LoanRequest, any, any](), h.SimulateLoan)
	g.POST("/loan/apply", validation.Validate[model.LoanRequest, any, any](), h.ApplyForLoan)
	g.GET("/notifications", h.Notifications)
	g.PUT("/notifications/viewed", h.MarkNotificationsViewed)
	g.POST("/notifications/hide", validation.Validate[model.NotificationIDRequest, any, any](), h.HideNotification)
}

// Overview godoc
//
//	@Summary		Client dashboard
//	@Description	User, card and document statuses, unread notifications and the one-shot dialog markers
//	@Tags			Client
//	@Produce		json
//	@Success		200	{object}	response.ResponseData{data=model.Dashboard}
//	@Failure		401	{object}	response.ResponseData
//	@Router			/client/overview [get]
func (h *Handler) Overview(c *gin.Context) {
	ctx := c.Request.Context()
	sess := h.session(c)
	api := h.client(c)

	var d model.Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.User, err = api.User(gctx, sess.UserID())
		return err
	})
	g.Go(func() (err error) {
		d.CardStatus, err = api.CardStatus(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.UnreadNotifications, err = api.UnreadNotifications(gctx)
		return err
	})
	g.Go(func() error {
		d.DocumentStatus = optional(gctx, "document status", api.DocumentStatus)
		return nil
	})
	g.Go(func() error {
		d.CreditDocumentStatus = optional(gctx, "credit document status", api.CreditDocumentStatus)
		return nil
	})
	if err := g.Wait(); err != nil {
		h.fail(c, err)
		return
	}

	viewCard, askCard, err := sess.ConsumeReloadFlags(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	d.OpenViewCard, d.OpenAskYourCard = viewCard, askCard
	d.Theme = themeOf(sess.Theme())
	ok(c, d)
}

// optional calls fetch and logs instead of failing; a user without
// documents gets a 404 from the document service.
func optional(ctx context.Context, what string, fetch func(context.Context) (string, error)) string {
	v, err := fetch(ctx)
	if err != nil {
		if backend.StatusOf(err) != http.StatusNotFound {
			logger.FromContext(ctx).Debug("Dashboard field unavailable", zap.String("field", what), zap.Error(err))
		}
		return ""
	}
	return v
}

func (h *Handler) Card(c *gin.Context) {
	card, err := h.client(c).Card(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, card)
}

// BlockCard toggles the card between blocked and active and reopens the card dialog.
func (h *Handler) BlockCard(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.client(c).BlockCard(ctx); err != nil {
		h.fail(c, err)
		return
	}
	if err := h.session(c).SetReloadFlag(ctx, session.ReloadOpenViewCard); err != nil {
		h.fail(c, err)
		return
	}
	message(c, "Card status updated")
}

// RequestCard godoc
//
//	@Summary	Send card documents for analysis
//	@Tags		Client
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		fullName		formData	string	true	"Full name"
//	@Param		rg				formData	string	true	"RG"
//	@Param		cpf				formData	string	true	"CPF"
//	@Param		proofOfAddress	formData	file	true	"Proof of address"
//	@Param		proofOfIncome	formData	file	true	"Proof of income"
//	@Success	200				{object}	response.ResponseData
//	@Router		/client/card/request [post]
func (h *Handler) RequestCard(c *gin.Context) {
	ctx := c.Request.Context()
	var form model.CardDocumentsForm
	if !bindForm(c, &form) {
		return
	}

	upload := &backend.Upload{Fields: map[string]string{
		"fullName": form.FullName,
		"rg":       form.RG,
		"cpf":      form.CPF,
	}}
	closeFiles, err := attach(upload, map[string]*multipart.FileHeader{
		"proofOfAddress": form.ProofOfAddress,
		"proofOfIncome":  form.ProofOfIncome,
	})
	defer closeFiles()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, invalidFile(err))
		return
	}

	msg, err := h.client(c).SubmitDocuments(ctx, upload)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.session(c).SetReloadFlag(ctx, session.ReloadOpenAskYourCard); err != nil {
		h.fail(c, err)
		return
	}
	message(c, msg)
}

func (h *Handler) RequestCredit(c *gin.Context) {
	ctx := c.Request.Context()
	sess := h.session(c)
	var form model.CreditDocumentsForm
	if !bindForm(c, &form) {
		return
	}

	upload := &backend.Upload{Fields: map[string]string{
		"userId":     sess.UserID(),
		"fullName":   form.FullName,
		"cpf":        form.CPF,
		"date":       form.Date,
		"occupation": form.Occupation,
		"salary":     strconv.FormatFloat(form.Salary, 'f', -1, 64),
	}}
	closeFiles, err := attach(upload, map[string]*multipart.FileHeader{
		"proofOfIncome": form.ProofOfIncome,
	})
	defer closeFiles()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, invalidFile(err))
		return
	}

	msg, err := h.client(c).SubmitCreditDocuments(ctx, upload)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := sess.SetReloadFlag(ctx, session.ReloadOpenViewCard); err != nil {
		h.fail(c, err)
		return
	}
	message(c, msg)
}

// bindForm binds and validates a multipart form, answering 400 on failure.
func bindForm(c *gin.Context, form any) bool {
	if err := c.ShouldBind(form); err != nil {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusBadRequest, validation.Invalid(err))
		return false
	}
	if err := validation.Struct(form); err != nil {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusBadRequest, validation.Invalid(err))
		return false
	}
	return true
}

// attach opens every uploaded file into u. The returned func closes them.
func attach(u *backend.Upload, files map[string]*multipart.FileHeader) (func(), error) {
	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}
	for field, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return closeAll, fmt.Errorf("open %s: %w", field, err)
		}
		opened = append(opened, f)
		u.Files = append(u.Files, backend.File{Field: field, Name: fh.Filename, Content: f})
	}
	return closeAll, nil
}

func invalidFile(err error) response.ResponseData {
	res := constant.INVALID_REQUEST
	res.Error = err.Error()
	return res
}

func (h *Handler) SimulateLoan(c *gin.Context) {
	in := validation.Body[model.LoanRequest](c)
	sim, err := loan.Simulate(in.Value, in.Term, in.MonthlyIncome)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, invalidFile(err))
		return
	}
	ok(c, sim)
}

// ApplyForLoan answers 422 with the rejection message when the installment
// takes more than the allowed share of income.
func (h *Handler) ApplyForLoan(c *gin.Context) {
	in := validation.Body[model.LoanRequest](c)
	sim, err := loan.Simulate(in.Value, in.Term, in.MonthlyIncome)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, invalidFile(err))
		return
	}
	if !sim.Approved {
		c.JSON(http.StatusUnprocessableEntity, response.ResponseData{
			Ec:    http.StatusUnprocessableEntity,
			Msg:   sim.Message,
			Error: "loan_rejected",
			Data:  sim,
		})
		return
	}
	res := response.OK(sim)
	res.Msg = sim.Message
	c.JSON(http.StatusOK, res)
}

// Notifications lists the notifications and marks them viewed, as opening
// the notification panel does.
func (h *Handler) Notifications(c *gin.Context) {
	ctx := c.Request.Context()
	api := h.client(c)
	items, err := api.Notifications(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	if c.Query("markViewed") != "false" {
		if err := api.MarkNotificationsViewed(ctx); err != nil {
			logger.FromContext(ctx).Warn("Failed to mark notifications viewed", zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, response.List(items))
}

func (h *Handler) MarkNotificationsViewed(c *gin.Context) {
	if err := h.client(c).MarkNotificationsViewed(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	message(c, "Notifications viewed")
}

func (h *Handler) HideNotification(c *gin.Context) {
	in := validation.Body[model.NotificationIDRequest](c)
	if err := h.client(c).HideNotification(c.Request.Context(), in.NotificationID); err != nil {
		h.fail(c, err)
		return
	}
	message(c, "Notification hidden")
}
