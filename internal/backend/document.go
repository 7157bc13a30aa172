package backend

import (
	"context"
	"net/http"
)

// DocumentStatus returns "SEND", "PENDING", "APPROVED" or "REJECTED".
func (c *Client) DocumentStatus(ctx context.Context) (string, error) {
	return c.message(ctx, get(c.urls.Document, "/api/check-document-status"))
}

func (c *Client) CreditDocumentStatus(ctx context.Context) (string, error) {
	return c.message(ctx, get(c.urls.Document, "/api/check-credit-document-status"))
}

// SubmitDocuments uploads fullName, rg, cpf, proofOfAddress and proofOfIncome.
func (c *Client) SubmitDocuments(ctx context.Context, in *Upload) (string, error) {
	return c.message(ctx, request{method: http.MethodPost, base: c.urls.Document, path: "/api/document", upload: in})
}

// SubmitCreditDocuments uploads userId, fullName, cpf, date, occupation, salary and proofOfIncome.
func (c *Client) SubmitCreditDocuments(ctx context.Context, in *Upload) (string, error) {
	return c.message(ctx, request{method: http.MethodPost, base: c.urls.Document, path: "/api/credit-document", upload: in})
}

// ApprovedCreditLimit returns the limit granted by the credit analysis.
func (c *Client) ApprovedCreditLimit(ctx context.Context) (float64, error) {
	return fetch[float64](ctx, c, get(c.urls.Document, "/api/limit-credit"))
}
