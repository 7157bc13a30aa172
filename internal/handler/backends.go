package handler

import (
	"net/http"
	"time"

	"github.com/duccv/bank-web/internal/auth"
	"github.com/duccv/bank-web/internal/backend"
	"github.com/duccv/bank-web/internal/session"
)

// Backends hands out backend clients: an anonymous one for the public
// endpoints and per-session ones whose transport carries the session's
// tokens through the auth interceptor.
type Backends struct {
	urls        backend.Endpoints
	timeout     time.Duration
	public      *backend.Client
	interceptor *auth.Interceptor
}

// NewBackends wires the interceptor to a refresher that shares base, the
// transport every backend call finally goes through.
func NewBackends(urls backend.Endpoints, timeout time.Duration, base http.RoundTripper, opts ...auth.Option) *Backends {
	if base == nil {
		base = http.DefaultTransport
	}
	public := backend.New(urls, &http.Client{Transport: base, Timeout: timeout})
	opts = append([]auth.Option{auth.WithBase(base)}, opts...)
	return &Backends{
		urls:        urls,
		timeout:     timeout,
		public:      public,
		interceptor: auth.New(public, opts...),
	}
}

func (b *Backends) Public() *backend.Client {
	return b.public
}

// For returns a client authenticated as the session behind h.
func (b *Backends) For(h *session.Handle) *backend.Client {
	return backend.New(b.urls, b.interceptor.Client(h, b.timeout))
}
