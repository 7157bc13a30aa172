package backend

import (
	"context"
	"net/http"

	"github.com/duccv/bank-web/internal/model"
)

func (c *Client) Documents(ctx context.Context) ([]model.Document, error) {
	return fetch[[]model.Document](ctx, c, get(c.urls.Document, "/api/documents"))
}

func (c *Client) ApproveDocument(ctx context.Context, id int64) error {
	return c.put(ctx, c.urls.Document, "/api/approve-document", model.DocumentIDRequest{DocumentID: id})
}

func (c *Client) RejectDocument(ctx context.Context, id int64) error {
	return c.put(ctx, c.urls.Document, "/api/reject-document", model.DocumentIDRequest{DocumentID: id})
}

func (c *Client) CreditDocuments(ctx context.Context) ([]model.CreditDocument, error) {
	return fetch[[]model.CreditDocument](ctx, c, get(c.urls.Document, "/api/credit-documents"))
}

func (c *Client) ApproveCreditDocument(ctx context.Context, id int64) error {
	return c.put(ctx, c.urls.Document, "/api/approve-credit-document", model.CreditDocumentIDRequest{CreditDocumentID: id})
}

func (c *Client) RejectCreditDocument(ctx context.Context, id int64) error {
	return c.put(ctx, c.urls.Document, "/api/reject-credit-document", model.CreditDocumentIDRequest{CreditDocumentID: id})
}

func (c *Client) Reports(ctx context.Context) ([]model.Report, error) {
	return fetch[[]model.Report](ctx, c, get(c.urls.Theft, "/api/reports"))
}

func (c *Client) Users(ctx context.Context) ([]model.UserSummary, error) {
	return fetch[[]model.UserSummary](ctx, c, get(c.urls.User, "/api/adm/get-all-users"))
}

func (c *Client) ActivateUser(ctx context.Context, cpf string) error {
	return c.put(ctx, c.urls.User, "/api/adm/active-user", model.CPFRequest{CPF: cpf})
}

func (c *Client) BlockUser(ctx context.Context, cpf string) error {
	return c.put(ctx, c.urls.User, "/api/adm/block-user", model.CPFRequest{CPF: cpf})
}

func (c *Client) put(ctx context.Context, base, path string, body any) error {
	return c.exec(ctx, request{method: http.MethodPut, base: base, path: path, json: body})
}
