package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/duccv/bank-web/config"
	"github.com/duccv/bank-web/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	env, err := config.Default()
	require.NoError(t, err)
	env.MetricsConfig.Enabled = false

	store := session.NewMemoryStore(100, time.Hour)
	t.Cleanup(store.Close)

	app, err := New(context.Background(), env, Options{Store: store})
	require.NoError(t, err)
	t.Cleanup(func() { app.Close(context.Background()) })
	return app
}

func serve(app *App, method, path, accept string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	w := httptest.NewRecorder()
	app.HTTP.App.ServeHTTP(w, req)
	return w
}

func TestNew_Routes(t *testing.T) {
	app := newTestApp(t)

	w := serve(app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = serve(app, http.MethodGet, "/api/swagger/doc.json", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/auth/login")
}

func TestNew_GuardsPrivateViews(t *testing.T) {
	app := newTestApp(t)

	w := serve(app, http.MethodGet, "/api/client/overview", "application/json")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"redirect":"/login"`)
	assert.NotEmpty(t, w.Header().Get("X-Correlation-ID"))

	var issued bool
	for _, c := range w.Result().Cookies() {
		issued = issued || (c.Name == "bank_session" && c.HttpOnly)
	}
	assert.True(t, issued)

	w = serve(app, http.MethodGet, "/api/payments", "text/html,application/xhtml+xml")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasSuffix(w.Header().Get("Location"), "/login"))
}
