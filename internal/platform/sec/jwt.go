// Copyright (c) 2026 Eventos. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (password derivation, JWT
// signing) from the domain logic. Handlers and middleware only ever see
// [AuthClaims]; the signing key never leaves [TokenService].
package sec

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/eventos/internal/platform/constants"
)

// ErrInvalidSubject is returned when the "sub" claim is absent or not a positive integer.
var ErrInvalidSubject = errors.New("sec: token subject is not a user id")

// AuthClaims represents the payload embedded inside an access token.
//
// The subject carries the numeric user id as a decimal string. Username and
// role travel with the token so [middleware.Authenticate] can build the
// identity without a database round trip.
type AuthClaims struct {
	jwt.RegisteredClaims

	Username string   `json:"unique_name"`
	Role     UserRole `json:"role"`
}

// UserID parses the subject claim. Absent and malformed subjects are treated alike.
func (claims *AuthClaims) UserID() (int64, error) {
	if claims == nil || claims.Subject == "" {
		return 0, ErrInvalidSubject
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id < 1 {
		return 0, ErrInvalidSubject
	}

	return id, nil
}

// TokenService issues and verifies HS256 access tokens.
type TokenService struct {
	key      []byte
	issuer   string
	audience string
	ttl      time.Duration
	leeway   time.Duration
	now      func() time.Time
}

// TokenOption customizes a [TokenService].
type TokenOption func(*TokenService)

// WithClock replaces the time source used for issuing and validating.
func WithClock(now func() time.Time) TokenOption {
	return func(service *TokenService) { service.now = now }
}

// NewTokenService creates a [TokenService] bound to a single symmetric key.
func NewTokenService(key, issuer, audience string, options ...TokenOption) (*TokenService, error) {
	if len(key) < 32 {
		return nil, errors.New("sec: signing key must be at least 32 bytes")
	}
	if issuer == "" || audience == "" {
		return nil, errors.New("sec: issuer and audience are required")
	}

	service := &TokenService{
		key:      []byte(key),
		issuer:   issuer,
		audience: audience,
		ttl:      constants.AccessTokenTTL,
		leeway:   constants.TokenClockSkew,
		now:      time.Now,
	}

	for _, option := range options {
		option(service)
	}

	return service, nil
}

// GenerateAccessToken signs a token for the given user. It also returns the expiry.
func (service *TokenService) GenerateAccessToken(userID int64, username string, role UserRole) (string, time.Time, error) {
	issuedAt := service.now()
	expiresAt := issuedAt.Add(service.ttl)

	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    service.issuer,
			Audience:  jwt.ClaimStrings{service.audience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Username: username,
		Role:     role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, expiresAt, nil
}

// VerifyToken checks signature, algorithm, issuer, audience and expiry.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithAudience(service.audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(service.leeway),
		jwt.WithTimeFunc(service.now),
	)

	token, err := parser.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, errors.New("sec: invalid token claims")
	}

	return claims, nil
}
