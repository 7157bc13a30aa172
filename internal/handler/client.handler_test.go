package handler

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/duccv/bank-web/internal/loan"
	"github.com/duccv/bank-web/internal/model"
	"github.com/duccv/bank-web/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubDashboard(b *bank) {
	b.handleFunc("/api/get-user-with-id", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintf(w, `{"userId":%q,"fullName":"Ana Souza"}`, r.URL.Query().Get("userId"))
	})
	b.handle("/api/verify-if-user-has-card-and-your-status", "ACTIVE")
	b.handle("/api/count-notification", "3")
	b.handle("/api/check-document-status", `{"status":"APPROVED"}`)
}

func TestOverview_ConsumesReloadFlags(t *testing.T) {
	a := newApp(t)
	stubDashboard(a.bank)
	id := a.login(t, &session.Session{ReloadOpenViewCard: true, Theme: "dark"})

	w := a.do(call{method: http.MethodGet, path: "/api/client/overview", cookie: id})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var d model.Dashboard
	decode(t, w, &d)
	assert.Equal(t, "user-1", d.User.UserID)
	assert.Equal(t, "Ana Souza", d.User.FullName)
	assert.Equal(t, "ACTIVE", d.CardStatus)
	assert.Equal(t, "APPROVED", d.DocumentStatus)
	assert.Empty(t, d.CreditDocumentStatus)
	assert.Equal(t, 3, d.UnreadNotifications)
	assert.Equal(t, "dark", d.Theme)
	assert.True(t, d.OpenViewCard)
	assert.False(t, d.OpenAskYourCard)

	w = a.do(call{method: http.MethodGet, path: "/api/client/overview", cookie: id})
	decode(t, w, &d)
	assert.False(t, d.OpenViewCard)
}

func TestOverview_RefreshesExpiredAccessTokenOnce(t *testing.T) {
	a := newApp(t)
	stubDashboard(a.bank)
	next := refreshToken(t, time.Now().Add(2*time.Hour))
	a.bank.handleFunc("/api/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		var in model.TokenPair
		jsonBody(t, r, &in)
		assert.Equal(t, "access-1", in.AccessToken)
		_, _ = fmt.Fprintf(w, `{"accessToken":"access-2","refreshToken":%q}`, next)
	})
	a.bank.token.Store("access-2")
	id := a.login(t, nil)

	w := a.do(call{method: http.MethodGet, path: "/api/client/overview", cookie: id})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, a.bank.calls("/api/refresh-token"))
	s := a.stored(t, id)
	assert.Equal(t, "access-2", s.AccessToken)
	assert.Equal(t, next, s.RefreshToken)
	assert.Equal(t, "user-1", s.UserID)
}

func TestOverview_ExpiredRefreshTokenEndsSession(t *testing.T) {
	a := newApp(t)
	stubDashboard(a.bank)
	a.bank.token.Store("someone-else")
	id := a.login(t, &session.Session{RefreshToken: refreshToken(t, time.Now().Add(-time.Minute)), Theme: "dark"})

	w := a.do(call{method: http.MethodGet, path: "/api/client/overview", cookie: id})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var redirect struct {
		Redirect string `json:"redirect"`
	}
	decode(t, w, &redirect)
	assert.Equal(t, "/login", redirect.Redirect)
	assert.Zero(t, a.bank.calls("/api/refresh-token"))

	s := a.stored(t, id)
	assert.Empty(t, s.AccessToken)
	assert.Empty(t, s.RefreshToken)
	assert.Equal(t, "dark", s.Theme)
}

func TestGuardedRoutesRequireLogin(t *testing.T) {
	a := newApp(t)

	for _, path := range []string{"/api/client/overview", "/api/payments", "/api/configuration/profile", "/api/admin/users"} {
		w := a.do(call{method: http.MethodGet, path: path})
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)

		w = a.do(call{method: http.MethodGet, path: path, headers: map[string]string{"Accept": "text/html"}})
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	}
}

func TestBlockCard_ReopensCardDialog(t *testing.T) {
	a := newApp(t)
	a.bank.handleFunc("/api/block-card", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
	})
	id := a.login(t, nil)

	w := a.do(call{method: http.MethodPut, path: "/api/client/card/block", cookie: id})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, a.stored(t, id).ReloadOpenViewCard)
}

func TestCard(t *testing.T) {
	a := newApp(t)
	a.bank.handle("/api/get-user-card", `{"fullName":"ANA SOUZA","cardNumber":"5555 4444 3333 2222","limitCredit":1500}`)
	id := a.login(t, nil)

	w := a.do(call{method: http.MethodGet, path: "/api/client/card", cookie: id})

	var card model.Card
	decode(t, w, &card)
	assert.Equal(t, "5555 4444 3333 2222", card.CardNumber)
	assert.Equal(t, 1500.0, card.LimitCredit)
}

func multipartBody(t *testing.T, fields map[string]string, files map[string]string) (io.Reader, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for field, content := range files {
		part, err := mw.CreateFormFile(field, field+".pdf")
		require.NoError(t, err)
		_, _ = part.Write([]byte(content))
	}
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func TestRequestCard_ForwardsDocuments(t *testing.T) {
	a := newApp(t)
	a.bank.handleFunc("/api/document", func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "Ana Souza", r.FormValue("fullName"))
		assert.Equal(t, "12.345.678-9", r.FormValue("rg"))
		assert.Equal(t, validCPF, r.FormValue("cpf"))
		f, fh, err := r.FormFile("proofOfAddress")
		if assert.NoError(t, err) {
			data, _ := io.ReadAll(f)
			assert.Equal(t, "address", string(data))
			assert.Equal(t, "proofOfAddress.pdf", fh.Filename)
		}
		_, _ = w.Write([]byte(`{"message":"Documents sent for analysis"}`))
	})
	id := a.login(t, nil)
	body, ctype := multipartBody(t,
		map[string]string{"fullName": "Ana Souza", "rg": "12.345.678-9", "cpf": validCPF},
		map[string]string{"proofOfAddress": "address", "proofOfIncome": "income"})

	w := a.do(call{method: http.MethodPost, path: "/api/client/card/request", raw: body, ctype: ctype, cookie: id})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Documents sent for analysis", decode(t, w, nil).Msg)
	assert.True(t, a.stored(t, id).ReloadOpenAskYourCard)
}

func TestRequestCard_MissingFile(t *testing.T) {
	a := newApp(t)
	id := a.login(t, nil)
	body, ctype := multipartBody(t,
		map[string]string{"fullName": "Ana Souza", "rg": "1", "cpf": validCPF},
		map[string]string{"proofOfIncome": "income"})

	w := a.do(call{method: http.MethodPost, path: "/api/client/card/request", raw: body, ctype: ctype, cookie: id})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, a.bank.calls("/api/document"))
	assert.False(t, a.stored(t, id).ReloadOpenAskYourCard)
}

func TestRequestCredit_AddsUserID(t *testing.T) {
	a := newApp(t)
	a.bank.handleFunc("/api/credit-document", func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "user-1", r.FormValue("userId"))
		assert.Equal(t, "Engineer", r.FormValue("occupation"))
		assert.Equal(t, "4500.5", r.FormValue("salary"))
		_, _ = w.Write([]byte(`{"message":"Credit documents sent"}`))
	})
	id := a.login(t, nil)
	body, ctype := multipartBody(t,
		map[string]string{"fullName": "Ana Souza", "cpf": validCPF, "date": "01/01/1990", "occupation": "Engineer", "salary": "4500.5"},
		map[string]string{"proofOfIncome": "income"})

	w := a.do(call{method: http.MethodPost, path: "/api/client/credit/request", raw: body, ctype: ctype, cookie: id})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, a.stored(t, id).ReloadOpenViewCard)
}

func TestLoan(t *testing.T) {
	a := newApp(t)
	id := a.login(t, nil)

	w := a.do(call{method: http.MethodPost, path: "/api/client/loan/simulate", cookie: id,
		body: map[string]any{"value": 1000, "term": 12, "monthlyIncome": 5000}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var sim loan.Simulation
	decode(t, w, &sim)
	assert.Equal(t, "132.70", sim.MonthlyInstallment.StringFixed(2))
	assert.Equal(t, "1592.34", sim.TotalPayment.StringFixed(2))
	assert.True(t, sim.Approved)

	w = a.do(call{method: http.MethodPost, path: "/api/client/loan/apply", cookie: id,
		body: map[string]any{"value": 1000, "term": 12, "monthlyIncome": 400}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, loan.Rejected, decode(t, w, nil).Msg)

	w = a.do(call{method: http.MethodPost, path: "/api/client/loan/apply", cookie: id,
		body: map[string]any{"value": 1000, "term": 12, "monthlyIncome": 5000}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, loan.Approved, decode(t, w, nil).Msg)

	w = a.do(call{method: http.MethodPost, path: "/api/client/loan/simulate", cookie: id,
		body: map[string]any{"value": 1000, "term": 0, "monthlyIncome": 5000}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotifications(t *testing.T) {
	a := newApp(t)
	a.bank.handle("/api/notifications", `[{"notificationId":1,"message":"Card approved","showNotification":true}]`)
	a.bank.handle("/api/visualisation-notification", "")
	a.bank.handleFunc("/api/occult-notification", func(w http.ResponseWriter, r *http.Request) {
		var in model.NotificationIDRequest
		jsonBody(t, r, &in)
		assert.EqualValues(t, 1, in.NotificationID)
	})
	id := a.login(t, nil)

	w := a.do(call{method: http.MethodGet, path: "/api/client/notifications", cookie: id})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var items []model.Notification
	e := decode(t, w, &items)
	require.Len(t, items, 1)
	assert.Equal(t, 1, *e.Total)
	assert.Equal(t, 1, a.bank.calls("/api/visualisation-notification"))

	w = a.do(call{method: http.MethodPost, path: "/api/client/notifications/hide", cookie: id, body: model.NotificationIDRequest{NotificationID: 1}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, a.bank.calls("/api/occult-notification"))
}
