// Package auth authenticates hook callers. The authentication engine signs
// each call with an HS256 token carrying its caller name.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/authbridge/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the registered claims plus the caller name.
type Claims struct {
	jwt.RegisteredClaims
	Caller string `json:"caller"`
}

// GenerateToken signs a caller token. A zero validity yields a token without
// expiry.
func GenerateToken(caller string, secretKey []byte, validity time.Duration) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
			Subject:  caller,
		},
		Caller: caller,
	}
	if validity != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(validity))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey)
}

// CallerFromToken verifies tokenString and returns the caller it names.
// Expired tokens yield common.ErrTokenExpired, anything else that fails
// verification common.ErrInvalidToken.
func CallerFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Caller == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Caller, nil
}
