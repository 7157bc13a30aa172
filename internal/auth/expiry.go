package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expired reports whether the JWT's exp claim lies before now. The signature
// is not checked: the token belongs to the login service and only its expiry
// matters here. Tokens that cannot be decoded count as expired; tokens
// without an exp claim never expire.
func Expired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return true
	}
	if exp == nil {
		return false
	}
	return exp.Time.Before(now)
}
