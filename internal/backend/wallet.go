package backend

import (
	"context"
	"net/http"

	"github.com/duccv/bank-web/internal/model"
)

func (c *Client) Wallet(ctx context.Context) (model.Wallet, error) {
	return fetch[model.Wallet](ctx, c, get(c.urls.Wallet, "/api/get-wallet"))
}

func (c *Client) Pay(ctx context.Context, in model.PaymentRequest) (string, error) {
	return c.message(ctx, request{method: http.MethodPost, base: c.urls.Wallet, path: "/api/payment", json: in})
}

// PayCredit pays money off the credit card invoice from the wallet balance.
func (c *Client) PayCredit(ctx context.Context, money float64) (string, error) {
	return c.message(ctx, request{
		method: http.MethodPost, base: c.urls.Wallet, path: "/api/credit-payment",
		json: model.CreditPaymentRequest{Money: money},
	})
}

func (c *Client) SentPayments(ctx context.Context) ([]model.Payment, error) {
	return fetch[[]model.Payment](ctx, c, get(c.urls.Wallet, "/api/get-send-payments"))
}

func (c *Client) ReceivedPayments(ctx context.Context) ([]model.Payment, error) {
	return fetch[[]model.Payment](ctx, c, get(c.urls.Wallet, "/api/get-receive-payments"))
}
