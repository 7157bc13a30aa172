package backend

import (
	"context"
	"net/http"

	"github.com/duccv/bank-web/internal/model"
)

// ReportTheft files a theft report. The endpoint is public.
func (c *Client) ReportTheft(ctx context.Context, in model.TheftReport) (string, error) {
	return c.message(ctx, request{method: http.MethodPost, base: c.urls.Theft, path: "/api/report-theft", json: in})
}
