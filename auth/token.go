package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskward/taskward/apperr"
)

// Tokens issues and verifies the stateless session credential: an
// HS256 JWT carrying the user id as subject and an expiry. The secret
// is injected once at startup; there is no rotation.
type Tokens struct {
	secret   []byte
	lifetime time.Duration
}

func NewTokens(secret string, lifetime time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), lifetime: lifetime}
}

// Issue signs a token for the given user id.
func (t *Tokens) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.lifetime)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify returns the subject user id of a valid token. Expiry, bad
// signature and malformed structure are reported as three distinct
// error codes so callers can tell a stale session from a forged one.
func (t *Tokens) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", apperr.New(apperr.CodeTokenExpired, "token has expired")
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", apperr.New(apperr.CodeInvalidSignature, "invalid token signature")
		default:
			return "", apperr.New(apperr.CodeTokenMalformed, "invalid token")
		}
	}
	if !token.Valid || claims.Subject == "" {
		return "", apperr.New(apperr.CodeTokenMalformed, "invalid token")
	}
	return claims.Subject, nil
}
