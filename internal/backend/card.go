package backend

import (
	"context"
	"net/http"

	"github.com/duccv/bank-web/internal/model"
)

// CardStatus returns the card state, e.g. "NO_CARD", "ACTIVE" or "BLOCKED".
func (c *Client) CardStatus(ctx context.Context) (string, error) {
	return c.text(ctx, get(c.urls.Card, "/api/verify-if-user-has-card-and-your-status"))
}

func (c *Client) Card(ctx context.Context) (model.Card, error) {
	return fetch[model.Card](ctx, c, get(c.urls.Card, "/api/get-user-card"))
}

// CardCreditLimit returns the credit still available on the card.
func (c *Client) CardCreditLimit(ctx context.Context) (float64, error) {
	return fetch[float64](ctx, c, get(c.urls.Card, "/api/get-limit-credit"))
}

func (c *Client) BlockCard(ctx context.Context) error {
	return c.exec(ctx, request{method: http.MethodPut, base: c.urls.Card, path: "/api/block-card"})
}
