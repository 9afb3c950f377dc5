// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenType string

const (
	TypeAccess  TokenType = "access"
	TypeRefresh TokenType = "refresh"
)

// Default token lifetimes
const (
	AccessTTL  = 15 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	jwt.RegisteredClaims
	Username string    `json:"username,omitempty"`
	Type     TokenType `json:"typ"`
}

// TokenIssuer signs and validates HS256 JWTs carrying a user id. A separate
// issuer is used per token type so a refresh token can never pass for an
// access token.
type TokenIssuer struct {
	secret []byte
	typ    TokenType
	ttl    time.Duration
}

func NewTokenIssuer(secret []byte, typ TokenType, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, typ: typ, ttl: ttl}
}

// Issue creates a signed token identifying userID.
func (ti *TokenIssuer) Issue(userID, username string) (string, error) {
	now := time.Now()
	tk, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.ttl)),
		},
		Username: username,
		Type:     ti.typ,
	}).SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tk, nil
}

// Validate parses raw and returns its claims. Tokens signed with a different
// secret, expired tokens, and tokens of the wrong type all fail with
// ErrInvalidToken.
func (ti *TokenIssuer) Validate(raw string) (Claims, error) {
	var claims Claims
	tk, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return ti.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !tk.Valid || claims.Type != ti.typ || claims.Subject == "" {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}
