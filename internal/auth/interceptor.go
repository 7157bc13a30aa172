// Package auth attaches the session's access token to backend calls and
// transparently refreshes it when a call comes back 401.
package auth

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/duccv/bank-web/internal/session"
	"github.com/duccv/bank-web/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrSessionEnded marks failures after which the user has to log in again.
var ErrSessionEnded = errors.New("session ended")

// Refresh outcomes reported to the refresh hook.
const (
	OutcomeRefreshed = "refreshed"
	OutcomeReused    = "reused"
	OutcomeExpired   = "expired"
	OutcomeFailed    = "failed"
)

// TokenStore is the per-session credential storage the interceptor reads and rotates.
type TokenStore interface {
	Tokens() session.Tokens
	Latest(ctx context.Context) (session.Tokens, error)
	Rotate(ctx context.Context, tokens session.Tokens) error
	Clear(ctx context.Context) error
}

// Refresher exchanges a token pair for a new one at the login service.
type Refresher interface {
	Refresh(ctx context.Context, tokens session.Tokens) (session.Tokens, error)
}

// RefreshError is returned by the transport when the refresh call failed and
// the session was cleared.
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("token refresh failed: %v", e.Err)
}

func (e *RefreshError) Unwrap() []error {
	return []error{ErrSessionEnded, e.Err}
}

// Interceptor holds what is shared by every session: the real transport,
// the refresher and the in-flight refresh calls.
type Interceptor struct {
	base      http.RoundTripper
	refresher Refresher
	skip      map[string]struct{}
	onRefresh func(outcome string)
	now       func() time.Time
	timeout   time.Duration
	group     singleflight.Group
}

type Option func(*Interceptor)

// WithBase sets the transport requests are finally sent with.
func WithBase(rt http.RoundTripper) Option {
	return func(i *Interceptor) { i.base = rt }
}

// WithSkipPaths replaces the exact URL paths that are sent without a token.
func WithSkipPaths(paths ...string) Option {
	return func(i *Interceptor) {
		i.skip = make(map[string]struct{}, len(paths))
		for _, p := range paths {
			i.skip[p] = struct{}{}
		}
	}
}

// WithRefreshHook observes every refresh decision.
func WithRefreshHook(fn func(outcome string)) Option {
	return func(i *Interceptor) { i.onRefresh = fn }
}

// WithRefreshTimeout bounds a shared refresh call. Non-positive values keep the default.
func WithRefreshTimeout(d time.Duration) Option {
	return func(i *Interceptor) {
		if d > 0 {
			i.timeout = d
		}
	}
}

const defaultRefreshTimeout = 10 * time.Second

// DefaultSkipPaths are the login service endpoints that issue tokens.
var DefaultSkipPaths = []string{"/api/login", "/api/refresh-token"}

func New(refresher Refresher, opts ...Option) *Interceptor {
	i := &Interceptor{
		base:      http.DefaultTransport,
		refresher: refresher,
		onRefresh: func(string) {},
		now:       time.Now,
		timeout:   defaultRefreshTimeout,
	}
	WithSkipPaths(DefaultSkipPaths...)(i)
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Transport returns a RoundTripper bound to one session's tokens.
func (i *Interceptor) Transport(store TokenStore) http.RoundTripper {
	return &transport{Interceptor: i, store: store}
}

// Client is a convenience wrapper around Transport.
func (i *Interceptor) Client(store TokenStore, timeout time.Duration) *http.Client {
	return &http.Client{Transport: i.Transport(store), Timeout: timeout}
}

type transport struct {
	*Interceptor
	store TokenStore
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if _, ok := t.skip[req.URL.Path]; ok {
		return t.base.RoundTrip(req)
	}

	body, err := replayable(req)
	if err != nil {
		return nil, err
	}

	ctx := req.Context()
	tokens := t.store.Tokens()
	resp, err := t.send(req, body, tokens.Access)
	if err != nil || resp.StatusCode != http.StatusUnauthorized || tokens.Refresh == "" {
		return resp, err
	}

	log := logger.WithComponent(logger.FromContext(ctx), "auth").
		With(zap.String("path", req.URL.Path))

	if Expired(tokens.Refresh, t.now()) {
		log.Info("Refresh token expired, clearing session")
		if err := t.store.Clear(ctx); err != nil {
			log.Warn("Failed to clear session", zap.Error(err))
		}
		t.onRefresh(OutcomeExpired)
		return resp, nil
	}

	latest, err := t.store.Latest(ctx)
	if err != nil {
		log.Warn("Failed to re-read session tokens", zap.Error(err))
		latest = tokens
	}
	if latest.Refresh == "" {
		// another request of this session already ended it
		return resp, nil
	}
	if latest.Access != "" && latest.Access != tokens.Access {
		discard(resp)
		t.onRefresh(OutcomeReused)
		log.Debug("Access token rotated concurrently, retrying")
		return t.send(req, body, latest.Access)
	}

	fresh, err := t.refresh(ctx, log, latest)
	if err != nil {
		discard(resp)
		if cerr := ctx.Err(); cerr != nil {
			// caller cancelled: the session stays as it is
			return nil, cerr
		}
		log.Warn("Token refresh failed, clearing session", zap.Error(err))
		if cerr := t.store.Clear(ctx); cerr != nil {
			log.Warn("Failed to clear session", zap.Error(cerr))
		}
		t.onRefresh(OutcomeFailed)
		return nil, &RefreshError{Err: err}
	}

	if t.store.Tokens().Access != fresh.Access {
		if err := t.store.Rotate(ctx, fresh); err != nil {
			log.Warn("Failed to persist refreshed tokens", zap.Error(err))
		}
	}
	t.onRefresh(OutcomeRefreshed)

	discard(resp)
	return t.send(req, body, fresh.Access)
}

// refresh collapses concurrent refreshes of the same refresh token into one
// call. The call runs detached from the request that started it, so a caller
// going away does not fail the others waiting on it. The new pair is stored
// before the flight ends so that late requests find it through Latest
// instead of refreshing again.
func (t *transport) refresh(ctx context.Context, log *zap.Logger, tokens session.Tokens) (session.Tokens, error) {
	ch := t.group.DoChan(tokens.Refresh, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.timeout)
		defer cancel()

		fresh, err := t.refresher.Refresh(fctx, tokens)
		if err != nil {
			return nil, err
		}
		if err := t.store.Rotate(fctx, fresh); err != nil {
			log.Warn("Failed to persist refreshed tokens", zap.Error(err))
		}
		return fresh, nil
	})

	select {
	case <-ctx.Done():
		return session.Tokens{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return session.Tokens{}, res.Err
		}
		return res.Val.(session.Tokens), nil
	}
}

// send clones req with the bearer token and, when body is set, a fresh copy of the body.
func (t *transport) send(req *http.Request, body func() (io.ReadCloser, error), accessToken string) (*http.Response, error) {
	out := req.Clone(req.Context())
	if body != nil {
		rc, err := body()
		if err != nil {
			return nil, err
		}
		out.Body = rc
		out.GetBody = body
	}
	if accessToken != "" {
		out.Header.Set("Authorization", "Bearer "+accessToken)
	}
	return t.base.RoundTrip(out)
}

// replayable returns a factory for req's body so it can be sent again after a
// refresh. A one-shot body is read once and closed; req is not modified.
func replayable(req *http.Request) (func() (io.ReadCloser, error), error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	if req.GetBody != nil {
		req.Body.Close()
		return req.GetBody, nil
	}
	buf, err := io.ReadAll(req.Body)
	req.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("buffer request body: %w", err)
	}
	return func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(buf)), nil
	}, nil
}

func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	resp.Body.Close()
}
