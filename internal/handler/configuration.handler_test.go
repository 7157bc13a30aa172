package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/duccv/bank-web/internal/model"
	"github.com/duccv/bank-web/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile(t *testing.T) {
	a := newApp(t)
	a.bank.handle("/api/get-user-with-id", `{"userId":"user-1","email":"ana@gmail.com","phone":"11999999999"}`)
	id := a.login(t, nil)

	w := a.do(call{method: http.MethodGet, path: "/api/configuration/profile", cookie: id})

	var user model.User
	decode(t, w, &user)
	assert.Equal(t, "ana@gmail.com", user.Email)
}

func TestUpdatePhone(t *testing.T) {
	a := newApp(t)
	a.bank.handleFunc("/api/update-phone", func(w http.ResponseWriter, r *http.Request) {
		var in model.UpdatePhoneRequest
		jsonBody(t, r, &in)
		assert.Equal(t, "11988887777", in.Phone)
	})
	id := a.login(t, nil)

	w := a.do(call{method: http.MethodPut, path: "/api/configuration/phone", cookie: id, body: model.UpdatePhoneRequest{Phone: "11988887777"}})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(call{method: http.MethodPut, path: "/api/configuration/phone", cookie: id, body: model.UpdatePhoneRequest{Phone: "1"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdatePassword(t *testing.T) {
	a := newApp(t)
	a.bank.handleFunc("/api/update-password", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		jsonBody(t, r, &in)
		assert.Equal(t, map[string]string{"password": "Xyz98765#", "oldPassword": "Abc12345!"}, in)
	})
	id := a.login(t, nil)

	w := a.do(call{method: http.MethodPut, path: "/api/configuration/password", cookie: id,
		body: model.UpdatePasswordRequest{Password: "Xyz98765#", OldPassword: "Abc12345!", ConfirmPassword: "Xyz98765"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Passwords do not match", decode(t, w, nil).Msg)
	assert.Zero(t, a.bank.calls("/api/update-password"))

	w = a.do(call{method: http.MethodPut, path: "/api/configuration/password", cookie: id,
		body: model.UpdatePasswordRequest{Password: "Xyz98765#", OldPassword: "Abc12345!", ConfirmPassword: "Xyz98765#"}})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestDeleteAccount_EndsSession(t *testing.T) {
	a := newApp(t)
	a.bank.handleFunc("/api/delete", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
	})
	id := a.login(t, &session.Session{Theme: "dark"})

	w := a.do(call{method: http.MethodDelete, path: "/api/configuration/account", cookie: id})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	_, err := a.store.Load(context.Background(), id)
	assert.ErrorIs(t, err, session.ErrNotFound)

	w = a.do(call{method: http.MethodGet, path: "/api/client/card", cookie: id})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginHistory(t *testing.T) {
	a := newApp(t)
	a.bank.handle("/api/login-history", `[{"timeStamp":"2024-03-01 10:00"},{"timeStamp":"2024-03-02 11:00"}]`)
	id := a.login(t, nil)

	w := a.do(call{method: http.MethodGet, path: "/api/configuration/login-history", cookie: id})

	var items []model.LoginHistory
	e := decode(t, w, &items)
	assert.Len(t, items, 2)
	assert.Equal(t, 2, *e.Total)
}

func TestSetTheme(t *testing.T) {
	a := newApp(t)
	id := a.login(t, nil)
	theme := func(body any) string {
		w := a.do(call{method: http.MethodPut, path: "/api/configuration/theme", cookie: id, body: body})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var out struct {
			Theme string `json:"theme"`
		}
		decode(t, w, &out)
		return out.Theme
	}

	assert.Equal(t, "dark", theme(map[string]string{}))
	assert.Equal(t, "light", theme(map[string]string{}))
	assert.Equal(t, "dark", theme(model.ThemeRequest{Theme: "dark"}))
	assert.Equal(t, "dark", a.stored(t, id).Theme)

	w := a.do(call{method: http.MethodPut, path: "/api/configuration/theme", cookie: id, body: model.ThemeRequest{Theme: "blue"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
