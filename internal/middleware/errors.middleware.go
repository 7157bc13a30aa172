package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/duccv/bank-web/internal/auth"
	"github.com/duccv/bank-web/internal/backend"
	"github.com/duccv/bank-web/internal/constant"
	"github.com/duccv/bank-web/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// AbortWithError renders err in the response envelope:
// validation failures become 400 with field flags, an ended session follows
// the login redirect contract, backend errors keep their status with the
// backend message, and anything else is a bad gateway.
func (g *Guard) AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)

	var (
		verrs  validator.ValidationErrors
		apiErr *backend.APIError
	)
	switch {
	case errors.As(err, &verrs):
		c.AbortWithStatusJSON(http.StatusBadRequest, validation.Invalid(err))

	case errors.Is(err, auth.ErrSessionEnded), backend.IsUnauthorized(err):
		if h := SessionFrom(c); h != nil && !h.HasAccessToken() {
			g.RedirectToLogin(c)
			return
		}
		res := constant.UNAUTHORIZED
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			res.Msg = apiErr.Message
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, res)

	case errors.As(err, &apiErr):
		res := constant.SERVICE_UNAVAILABLE
		res.Ec = apiErr.Status
		res.Msg = apiErr.Message
		res.Error = apiErr.Category
		c.AbortWithStatusJSON(apiErr.Status, res)

	case errors.Is(err, context.DeadlineExceeded):
		res := constant.SERVICE_UNAVAILABLE
		res.Ec = http.StatusGatewayTimeout
		c.AbortWithStatusJSON(http.StatusGatewayTimeout, res)

	default:
		c.AbortWithStatusJSON(http.StatusBadGateway, constant.SERVICE_UNAVAILABLE)
	}
}
