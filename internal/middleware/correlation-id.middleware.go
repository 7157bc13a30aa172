package middleware

import (
	"context"

	"github.com/duccv/bank-web/internal/constant"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CorrelationIDMiddleware reuses or mints the X-Correlation-ID of a request
// and puts it on the request context, where logs and backend calls find it.
func CorrelationIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cid := c.GetHeader(constant.CorrelationIDHdr)
		if cid == "" {
			cid = uuid.NewString()
		}
		ctx := context.WithValue(c.Request.Context(), constant.CorrelationIDKey, cid)
		c.Request = c.Request.WithContext(ctx)
		c.Set(constant.RequestIDKey, cid)
		c.Writer.Header().Set(constant.CorrelationIDHdr, cid)
		c.Next()
	}
}
