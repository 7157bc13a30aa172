package backend

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		category string
		message  string
	}{
		{"category and message", `{"category":"bad_request","message":"You don't have that money"}`, "bad_request", "You don't have that money"},
		{"spring error document", `{"timestamp":"x","status":500,"error":"Internal Server Error","message":"boom","path":"/api"}`, "Internal Server Error", "boom"},
		{"legacy single key", `{"Bad request":"This cpf already cadastred"}`, "Bad request", "This cpf already cadastred"},
		{"legacy keys sorted", `{"b":"second","a":"first"}`, "a", "first"},
		{"plain text", "  card already blocked \n", "", "card already blocked"},
		{"empty body", "", "", "Service Unavailable"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := parseError(http.StatusServiceUnavailable, []byte(tc.body))
			assert.Equal(t, http.StatusServiceUnavailable, err.Status)
			assert.Equal(t, tc.category, err.Category)
			assert.Equal(t, tc.message, err.Message)
		})
	}
}

func TestParseMessage(t *testing.T) {
	assert.Equal(t, "User registered", parseMessage([]byte(`{"success":"User registered"}`)))
	assert.Equal(t, "ok", parseMessage([]byte(`{"status":"x","message":"ok"}`)))
	assert.Equal(t, "quoted", parseMessage([]byte(`"quoted"`)))
	assert.Equal(t, "APPROVED", parseMessage([]byte("APPROVED\n")))
}

func TestStatusOf(t *testing.T) {
	err := fmt.Errorf("load wallet: %w", &APIError{Status: http.StatusUnauthorized})
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
	assert.True(t, IsUnauthorized(err))
	assert.Zero(t, StatusOf(fmt.Errorf("plain")))
	assert.Equal(t, "backend: 400 a: b", (&APIError{Status: 400, Category: "a", Message: "b"}).Error())
}
