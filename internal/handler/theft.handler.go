package handler

import (
	"github.com/duccv/bank-web/internal/model"
	"github.com/duccv/bank-web/internal/validation"
	"github.com/gin-gonic/gin"
)

func (h *Handler) registerTheftRoutes(g *gin.RouterGroup) {
	g.POST("/theft-reports", validation.Validate[model.TheftReport, any, any](), h.ReportTheft)
}

// ReportTheft godoc
//
//	@Summary	Report a theft
//	@Tags		Theft
//	@Accept		json
//	@Produce	json
//	@Param		body	body		model.TheftReport	true	"Report"
//	@Success	200		{object}	response.ResponseData
//	@Failure	400		{object}	response.ResponseData
//	@Router		/theft-reports [post]
func (h *Handler) ReportTheft(c *gin.Context) {
	msg, err := h.client(c).ReportTheft(c.Request.Context(), validation.Body[model.TheftReport](c))
	if err != nil {
		h.fail(c, err)
		return
	}
	message(c, msg)
}
