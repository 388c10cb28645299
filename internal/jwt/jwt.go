// Package jwt provides functions for generating and validating JWTs
package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	JWTDuration = 24 * time.Hour
	DefaultKID  = "1"
)

var (
	ErrTokenExpired = jwt.ErrTokenExpired
	ErrInvalidKID   = errors.New("missing or unknown kid")
)

// Claims is the payload of an access token. TokenVersion must match the
// user's current version for the token to be accepted.
type Claims struct {
	Role         string `json:"role"`
	TokenVersion int32  `json:"ver"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing subject %q: %w", c.Subject, err)
	}
	return id, nil
}

type JWTParams struct {
	Role         string
	UserID       int64
	TokenVersion int32
}

func GenerateJWT(params JWTParams, secret []byte, version string) (string, error) {
	now := time.Now()
	claims := Claims{
		Role:         params.Role,
		TokenVersion: params.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(params.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(JWTDuration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = version

	signedKey, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signedKey, nil
}

func ValidateJWT(rawToken, version string, secret []byte) (*Claims, error) {
	keyFunc := func(token *jwt.Token) (any, error) {
		kidVal, ok := token.Header["kid"].(string)
		if !ok || kidVal != version {
			return nil, ErrInvalidKID
		}
		return secret, nil
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(rawToken, claims, keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	return claims, nil
}
