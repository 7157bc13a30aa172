package backend

import (
	"context"
	"errors"
	"net/http"

	"github.com/duccv/bank-web/internal/model"
	"github.com/duccv/bank-web/internal/session"
)

const (
	PathLogin   = "/api/login"
	PathRefresh = "/api/refresh-token"
)

// ErrNoAccessToken is returned when the login service answers 2xx without an access token.
var ErrNoAccessToken = errors.New("login service returned no access token")

func tokensOf(pair model.TokenPair) (session.Tokens, error) {
	if pair.AccessToken == "" {
		return session.Tokens{}, ErrNoAccessToken
	}
	return session.Tokens{Access: pair.AccessToken, Refresh: pair.RefreshToken}, nil
}

func (c *Client) Login(ctx context.Context, in model.LoginRequest) (session.Tokens, error) {
	pair, err := fetch[model.TokenPair](ctx, c, request{
		method: http.MethodPost, base: c.urls.Login, path: PathLogin,
		json: model.LoginRequest{CPF: in.CPF, Password: in.Password},
	})
	if err != nil {
		return session.Tokens{}, err
	}
	return tokensOf(pair)
}

// Refresh exchanges both tokens for a new pair. It satisfies auth.Refresher.
func (c *Client) Refresh(ctx context.Context, tokens session.Tokens) (session.Tokens, error) {
	pair, err := fetch[model.TokenPair](ctx, c, request{
		method: http.MethodPost, base: c.urls.Login, path: PathRefresh,
		json: model.TokenPair{AccessToken: tokens.Access, RefreshToken: tokens.Refresh},
	})
	if err != nil {
		return session.Tokens{}, err
	}
	return tokensOf(pair)
}

func (c *Client) LoginHistory(ctx context.Context) ([]model.LoginHistory, error) {
	return fetch[[]model.LoginHistory](ctx, c, get(c.urls.Login, "/api/login-history"))
}
