package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/duccv/bank-web/internal/model"
)

func (c *Client) Register(ctx context.Context, in model.RegisterRequest) (string, error) {
	return c.message(ctx, request{method: http.MethodPost, base: c.urls.User, path: "/api/register", json: in})
}

// EmailVerificationStatus returns the verification state of a pending registration.
func (c *Client) EmailVerificationStatus(ctx context.Context, email string) (string, error) {
	r := get(c.urls.User, "/api/check-email-verification")
	r.query = url.Values{"email": {email}}
	return c.text(ctx, r)
}

func (c *Client) VerifyEmail(ctx context.Context, in model.VerifyEmailRequest) (string, error) {
	return c.message(ctx, request{method: http.MethodPost, base: c.urls.User, path: "/api/verify-email", json: in})
}

func (c *Client) ResendCode(ctx context.Context, email string) (string, error) {
	return c.message(ctx, request{
		method: http.MethodPost, base: c.urls.User, path: "/api/resend-code",
		json: model.ResendCodeRequest{Email: email},
	})
}

// UserIDByCPF resolves the user id that owns cpf.
func (c *Client) UserIDByCPF(ctx context.Context, cpf string) (string, error) {
	r := get(c.urls.User, "/api/get-id-with-cpf")
	r.query = url.Values{"cpf": {cpf}}
	return c.text(ctx, r)
}

func (c *Client) User(ctx context.Context, userID string) (model.User, error) {
	r := get(c.urls.User, "/api/get-user-with-id")
	r.query = url.Values{"userId": {userID}}
	return fetch[model.User](ctx, c, r)
}

func (c *Client) FullName(ctx context.Context) (string, error) {
	return c.text(ctx, get(c.urls.User, "/api/full-name"))
}

func (c *Client) IsAdmin(ctx context.Context) (bool, error) {
	return fetch[bool](ctx, c, get(c.urls.User, "/api/verify-if-user-admin"))
}

// IsVerified reports whether the user finished the document checks.
func (c *Client) IsVerified(ctx context.Context) (bool, error) {
	return fetch[bool](ctx, c, get(c.urls.User, "/api/check-user-verification"))
}

func (c *Client) UpdatePassword(ctx context.Context, password, oldPassword string) error {
	return c.exec(ctx, request{
		method: http.MethodPut, base: c.urls.User, path: "/api/update-password",
		json: map[string]string{"password": password, "oldPassword": oldPassword},
	})
}

func (c *Client) UpdatePhone(ctx context.Context, phone string) error {
	return c.exec(ctx, request{
		method: http.MethodPut, base: c.urls.User, path: "/api/update-phone",
		json: model.UpdatePhoneRequest{Phone: phone},
	})
}

func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.exec(ctx, request{method: http.MethodDelete, base: c.urls.User, path: "/api/delete"})
}
