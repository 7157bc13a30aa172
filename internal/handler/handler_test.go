package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/duccv/bank-web/internal/backend"
	"github.com/duccv/bank-web/internal/middleware"
	"github.com/duccv/bank-web/internal/session"
	"github.com/duccv/bank-web/pkg/cache"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// bank fakes every backend service on one server. Routes not registered
// answer 404; routes other than login/refresh demand the current token.
type bank struct {
	t      *testing.T
	srv    *httptest.Server
	mux    *http.ServeMux
	token  atomic.Value
	mu     sync.Mutex
	hits   map[string]int
	public map[string]bool
}

func newBank(t *testing.T) *bank {
	b := &bank{t: t, mux: http.NewServeMux(), hits: map[string]int{}, public: map[string]bool{
		backend.PathLogin: true, backend.PathRefresh: true,
		"/api/register": true, "/api/check-email-verification": true,
		"/api/verify-email": true, "/api/resend-code": true,
	}}
	b.token.Store("access-1")
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.hits[r.URL.Path]++
		b.mu.Unlock()
		if !b.public[r.URL.Path] && r.Header.Get("Authorization") != "Bearer "+b.token.Load().(string) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		b.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *bank) handle(path, body string) {
	b.mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, body)
	})
}

func (b *bank) handleFunc(path string, fn http.HandlerFunc) {
	b.mux.HandleFunc(path, fn)
}

func (b *bank) calls(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[path]
}

func (b *bank) endpoints() backend.Endpoints {
	u := b.srv.URL
	return backend.Endpoints{User: u, Document: u, Theft: u, Card: u, Notification: u, Login: u, Wallet: u}
}

type app struct {
	router *gin.Engine
	store  *session.MemoryStore
	bank   *bank
}

func newApp(t *testing.T) *app {
	t.Helper()
	b := newBank(t)
	store := session.NewMemoryStore(100, time.Hour)
	t.Cleanup(store.Close)

	mem := cache.New(cache.LRU, 100, time.Minute)
	t.Cleanup(mem.Stop)

	backends := NewBackends(b.endpoints(), 5*time.Second, nil)
	cfg := middleware.DefaultMiddlewareConfig()
	guard := middleware.NewGuard(cfg)

	r := gin.New()
	api := r.Group("/api", middleware.NewSessionMiddleware(store, cfg).Load())
	New(backends, guard, NewAdminRoles(backends, cache.NewLayered(mem, time.Minute))).RegisterRoutes(api)

	return &app{router: r, store: store, bank: b}
}

// login stores a logged in session and returns its id.
func (a *app) login(t *testing.T, s *session.Session) string {
	t.Helper()
	if s == nil {
		s = &session.Session{}
	}
	if s.AccessToken == "" {
		s.AccessToken = "access-1"
	}
	if s.RefreshToken == "" {
		s.RefreshToken = refreshToken(t, time.Now().Add(time.Hour))
	}
	if s.UserID == "" {
		s.UserID = "user-1"
	}
	id := session.NewID()
	require.NoError(t, a.store.Save(context.Background(), id, s))
	return id
}

func (a *app) stored(t *testing.T, id string) *session.Session {
	t.Helper()
	s, err := a.store.Load(context.Background(), id)
	require.NoError(t, err)
	return s
}

type call struct {
	method  string
	path    string
	body    any
	raw     io.Reader
	ctype   string
	cookie  string
	headers map[string]string
}

func (a *app) do(c call) *httptest.ResponseRecorder {
	var body io.Reader
	switch {
	case c.raw != nil:
		body = c.raw
	case c.body != nil:
		data, _ := json.Marshal(c.body)
		body = bytes.NewReader(data)
		if c.ctype == "" {
			c.ctype = "application/json"
		}
	}
	req := httptest.NewRequest(c.method, c.path, body)
	if c.ctype != "" {
		req.Header.Set("Content-Type", c.ctype)
	}
	if c.cookie != "" {
		req.AddCookie(&http.Cookie{Name: "bank_session", Value: c.cookie})
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Ec    int             `json:"ec"`
	Msg   string          `json:"msg"`
	Error string          `json:"error"`
	Total *int            `json:"total"`
	Data  json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var e envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(e.Data, data), string(e.Data))
	}
	return e
}

func refreshToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()}).SignedString([]byte("k"))
	require.NoError(t, err)
	return tok
}

func cookieOf(w *httptest.ResponseRecorder) string {
	for _, c := range w.Result().Cookies() {
		if c.Name == "bank_session" {
			return c.Value
		}
	}
	return ""
}

func jsonBody(t *testing.T, r *http.Request, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(r.Body).Decode(v))
}
