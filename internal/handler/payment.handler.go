package handler

import (
	"net/http"
	"sort"

	"github.com/duccv/bank-web/internal/backend"
	"github.com/duccv/bank-web/internal/model"
	"github.com/duccv/bank-web/internal/validation"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func (h *Handler) registerPaymentRoutes(g *gin.RouterGroup) {
	g.GET("", h.Statement)
	g.POST("", validation.Validate[model.PaymentRequest, any, any](), h.Pay)
	g.POST("/credit", validation.Validate[model.CreditPaymentRequest, any, any](), h.PayCredit)
}

// Statement godoc
//
//	@Summary	Wallet, credit limit and payment history
//	@Tags		Payments
//	@Produce	json
//	@Success	200	{object}	response.ResponseData{data=model.Statement}
//	@Router		/payments [get]
func (h *Handler) Statement(c *gin.Context) {
	api := h.client(c)

	var (
		st             model.Statement
		sent, received []model.Payment
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		st.Wallet, err = api.Wallet(ctx)
		return err
	})
	g.Go(func() error {
		limit, err := api.CardCreditLimit(ctx)
		if err != nil && backend.StatusOf(err) != http.StatusNotFound {
			return err
		}
		st.CreditLimit = limit
		return nil
	})
	g.Go(func() (err error) {
		sent, err = api.SentPayments(ctx)
		return err
	})
	g.Go(func() (err error) {
		received, err = api.ReceivedPayments(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(c, err)
		return
	}

	st.Payments = mergePayments(sent, received)
	ok(c, st)
}

// mergePayments tags both histories with their direction and orders them
// newest first. Timestamps are "yyyy-MM-dd HH:mm" so they sort as text.
func mergePayments(sent, received []model.Payment) []model.Payment {
	out := make([]model.Payment, 0, len(sent)+len(received))
	for _, p := range sent {
		if p.SendOrReceive == "" {
			p.SendOrReceive = model.PaymentSend
		}
		out = append(out, p)
	}
	for _, p := range received {
		if p.SendOrReceive == "" {
			p.SendOrReceive = model.PaymentReceive
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TimeStamp > out[j].TimeStamp
	})
	return out
}

// Pay godoc
//
//	@Summary	Transfer money by PIX or credit card
//	@Tags		Payments
//	@Accept		json
//	@Produce	json
//	@Param		body	body		model.PaymentRequest	true	"Payment"
//	@Success	200		{object}	response.ResponseData
//	@Failure	400		{object}	response.ResponseData
//	@Router		/payments [post]
func (h *Handler) Pay(c *gin.Context) {
	msg, err := h.client(c).Pay(c.Request.Context(), validation.Body[model.PaymentRequest](c))
	if err != nil {
		h.fail(c, err)
		return
	}
	message(c, msg)
}

func (h *Handler) PayCredit(c *gin.Context) {
	in := validation.Body[model.CreditPaymentRequest](c)
	msg, err := h.client(c).PayCredit(c.Request.Context(), in.Money)
	if err != nil {
		h.fail(c, err)
		return
	}
	message(c, msg)
}
