package handler

import (
	"context"
	"net/http"

	"github.com/duccv/bank-web/internal/model"
	"github.com/duccv/bank-web/internal/model/response"
	"github.com/duccv/bank-web/internal/validation"
	"github.com/duccv/bank-web/util"
	"github.com/gin-gonic/gin"
)

func (h *Handler) registerAdminRoutes(g *gin.RouterGroup) {
	g.GET("/documents", h.Documents)
	g.PUT("/documents/approve", validation.Validate[model.DocumentIDRequest, any, any](), h.ApproveDocument)
	g.PUT("/documents/reject", validation.Validate[model.DocumentIDRequest, any, any](), h.RejectDocument)

	g.GET("/credit-documents", h.CreditDocuments)
	g.PUT("/credit-documents/approve", validation.Validate[model.CreditDocumentIDRequest, any, any](), h.ApproveCreditDocument)
	g.PUT("/credit-documents/reject", validation.Validate[model.CreditDocumentIDRequest, any, any](), h.RejectCreditDocument)

	g.GET("/reports", h.Reports)

	g.GET("/users", h.Users)
	g.PUT("/users/activate", validation.Validate[model.CPFRequest, any, any](), h.ActivateUser)
	g.PUT("/users/block", validation.Validate[model.CPFRequest, any, any](), h.BlockUser)
}

// listWithETag answers 304 when the client already holds this exact list.
func listWithETag[T any](c *gin.Context, items []T) {
	res := response.List(items)
	etag := util.GenerateETag(res)
	c.Header("ETag", etag)
	c.Header("Cache-Control", "private, no-cache")
	if util.ETagMatches(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Documents godoc
//
//	@Summary	Card documents awaiting review
//	@Tags		Admin
//	@Produce	json
//	@Param		If-None-Match	header		string	false	"ETag of a previous response"
//	@Success	200				{object}	response.ResponseData{data=[]model.Document}
//	@Success	304				{string}	string	"Not Modified"
//	@Failure	403				{object}	response.ResponseData
//	@Router		/admin/documents [get]
func (h *Handler) Documents(c *gin.Context) {
	items, err := h.client(c).Documents(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	listWithETag(c, items)
}

func (h *Handler) ApproveDocument(c *gin.Context) {
	in := validation.Body[model.DocumentIDRequest](c)
	h.act(c, "Document approved", func(ctx context.Context) error {
		return h.client(c).ApproveDocument(ctx, in.DocumentID)
	})
}

func (h *Handler) RejectDocument(c *gin.Context) {
	in := validation.Body[model.DocumentIDRequest](c)
	h.act(c, "Document rejected", func(ctx context.Context) error {
		return h.client(c).RejectDocument(ctx, in.DocumentID)
	})
}

func (h *Handler) CreditDocuments(c *gin.Context) {
	items, err := h.client(c).CreditDocuments(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	listWithETag(c, items)
}

func (h *Handler) ApproveCreditDocument(c *gin.Context) {
	in := validation.Body[model.CreditDocumentIDRequest](c)
	h.act(c, "Credit document approved", func(ctx context.Context) error {
		return h.client(c).ApproveCreditDocument(ctx, in.CreditDocumentID)
	})
}

func (h *Handler) RejectCreditDocument(c *gin.Context) {
	in := validation.Body[model.CreditDocumentIDRequest](c)
	h.act(c, "Credit document rejected", func(ctx context.Context) error {
		return h.client(c).RejectCreditDocument(ctx, in.CreditDocumentID)
	})
}

func (h *Handler) Reports(c *gin.Context) {
	items, err := h.client(c).Reports(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	listWithETag(c, items)
}

func (h *Handler) Users(c *gin.Context) {
	items, err := h.client(c).Users(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	listWithETag(c, items)
}

func (h *Handler) ActivateUser(c *gin.Context) {
	in := validation.Body[model.CPFRequest](c)
	h.act(c, "User activated", func(ctx context.Context) error {
		return h.client(c).ActivateUser(ctx, in.CPF)
	})
}

func (h *Handler) BlockUser(c *gin.Context) {
	in := validation.Body[model.CPFRequest](c)
	h.act(c, "User blocked", func(ctx context.Context) error {
		return h.client(c).BlockUser(ctx, in.CPF)
	})
}

func (h *Handler) act(c *gin.Context, done string, fn func(ctx context.Context) error) {
	if err := fn(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	message(c, done)
}
