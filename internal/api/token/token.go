// Package token contains utilities for http tokens.
package token

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/env"
	"github.com/matt-dz/foodgram/internal/jwt"
)

const accessTokenLifetime = int(jwt.JWTDuration / time.Second)

var (
	ErrNoToken        = errors.New("no access token")
	ErrMalformedToken = errors.New("malformed authorization header")
	ErrNoSecret       = errors.New("app secret not configured")
)

func AccessTokenName(env *env.Env) string {
	if env.IsProd() {
		return "__Host-Http-access"
	}
	return "access"
}

// FromRequest returns the raw access token. The Authorization header is
// accepted with either the "Token" or the "Bearer" scheme and wins over
// the cookie.
func FromRequest(r *http.Request, env *env.Env) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, value, ok := strings.Cut(strings.TrimSpace(header), " ")
		value = strings.TrimSpace(value)
		if !ok || value == "" {
			return "", ErrMalformedToken
		}
		switch strings.ToLower(scheme) {
		case "token", "bearer":
			return value, nil
		default:
			return "", ErrMalformedToken
		}
	}

	cookie, err := r.Cookie(AccessTokenName(env))
	if err != nil || cookie.Value == "" {
		return "", ErrNoToken
	}
	return cookie.Value, nil
}

// CreateAccessToken signs a token for user at their current token version.
func CreateAccessToken(user database.User, env *env.Env) (string, error) {
	secret, version := env.AppSecret()
	if len(secret) == 0 {
		return "", ErrNoSecret
	}
	token, err := jwt.GenerateJWT(jwt.JWTParams{
		Role:         string(user.Role),
		UserID:       user.ID,
		TokenVersion: user.TokenVersion,
	}, secret, version)
	if err != nil {
		return "", fmt.Errorf("generating access token: %w", err)
	}
	return token, nil
}

func NewAccessTokenCookie(token string, env *env.Env) *http.Cookie {
	return &http.Cookie{
		Name:     AccessTokenName(env),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   accessTokenLifetime,
		SameSite: http.SameSiteLaxMode,
		Secure:   env.IsProd(),
	}
}

// ClearAccessTokenCookie expires the access cookie on the client.
func ClearAccessTokenCookie(env *env.Env) *http.Cookie {
	cookie := NewAccessTokenCookie("", env)
	cookie.MaxAge = -1
	return cookie
}
