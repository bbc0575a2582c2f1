// Copyright (c) 2026 Eventos. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/eventos/internal/platform/sec"
)

const (
	testKey      = "0123456789abcdef0123456789abcdef"
	testIssuer   = "eventos-api"
	testAudience = "eventos-client"
)

func newTokenService(t *testing.T, options ...sec.TokenOption) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService(testKey, testIssuer, testAudience, options...)
	require.NoError(t, err)
	return service
}

func decodeSegment(t *testing.T, segment string) map[string]any {
	t.Helper()
	raw, err := base64.RawURLEncoding.DecodeString(segment)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

/*
TestNewTokenService_RejectsWeakConfig verifies fail-fast construction.
*/
func TestNewTokenService_RejectsWeakConfig(t *testing.T) {
	_, err := sec.NewTokenService("short", testIssuer, testAudience)
	assert.Error(t, err)

	_, err = sec.NewTokenService(testKey, "", testAudience)
	assert.Error(t, err)

	_, err = sec.NewTokenService(testKey, testIssuer, "")
	assert.Error(t, err)
}

/*
TestGenerateAccessToken_WireFormat verifies header and payload of an issued token.
*/
func TestGenerateAccessToken_WireFormat(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	service := newTokenService(t, sec.WithClock(func() time.Time { return issuedAt }))

	token, expiresAt, err := service.GenerateAccessToken(42, "alice", sec.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(4*time.Hour), expiresAt)

	// 1. Three base64url segments
	segments := strings.Split(token, ".")
	require.Len(t, segments, 3)

	// 2. Header
	header := decodeSegment(t, segments[0])
	assert.Equal(t, map[string]any{"alg": "HS256", "typ": "JWT"}, header)

	// 3. Payload
	payload := decodeSegment(t, segments[1])
	assert.Equal(t, "42", payload["sub"])
	assert.Equal(t, "alice", payload["unique_name"])
	assert.Equal(t, "user", payload["role"])
	assert.Equal(t, testIssuer, payload["iss"])
	assert.Contains(t, payload["aud"], testAudience)
	assert.EqualValues(t, issuedAt.Unix(), payload["iat"])
	assert.EqualValues(t, issuedAt.Add(4*time.Hour).Unix(), payload["exp"])
}

/*
TestVerifyToken_Valid verifies that a fresh token round-trips into claims.
*/
func TestVerifyToken_Valid(t *testing.T) {
	service := newTokenService(t)

	token, _, err := service.GenerateAccessToken(7, "bob", sec.RoleAdmin)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, "bob", claims.Username)
	assert.Equal(t, sec.RoleAdmin, claims.Role)
}

/*
TestVerifyToken_ClockSkew verifies the two-minute tolerance on expiry.
*/
func TestVerifyToken_ClockSkew(t *testing.T) {
	verifier := newTokenService(t)

	// Expired one minute ago: still accepted
	recent := newTokenService(t, sec.WithClock(func() time.Time {
		return time.Now().Add(-4*time.Hour - time.Minute)
	}))
	token, _, err := recent.GenerateAccessToken(1, "alice", sec.RoleUser)
	require.NoError(t, err)
	_, err = verifier.VerifyToken(token)
	assert.NoError(t, err)

	// Expired three minutes ago: rejected
	stale := newTokenService(t, sec.WithClock(func() time.Time {
		return time.Now().Add(-4*time.Hour - 3*time.Minute)
	}))
	token, _, err = stale.GenerateAccessToken(1, "alice", sec.RoleUser)
	require.NoError(t, err)
	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

/*
TestVerifyToken_Rejections verifies every policy violation is rejected.
*/
func TestVerifyToken_Rejections(t *testing.T) {
	verifier := newTokenService(t)
	now := time.Now()

	sign := func(method jwt.SigningMethod, key any, claims jwt.Claims) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}

	validClaims := func() sec.AuthClaims {
		return sec.AuthClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "1",
				Issuer:    testIssuer,
				Audience:  jwt.ClaimStrings{testAudience},
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
			Username: "alice",
			Role:     sec.RoleUser,
		}
	}

	wrongIssuer := validClaims()
	wrongIssuer.Issuer = "someone-else"

	wrongAudience := validClaims()
	wrongAudience.Audience = jwt.ClaimStrings{"another-client"}

	noExpiry := validClaims()
	noExpiry.ExpiresAt = nil

	tests := []struct {
		name  string
		token string
	}{
		{name: "other key", token: sign(jwt.SigningMethodHS256, []byte("ffffffffffffffffffffffffffffffff"), validClaims())},
		{name: "other algorithm", token: sign(jwt.SigningMethodHS512, []byte(testKey), validClaims())},
		{name: "alg none", token: sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, validClaims())},
		{name: "wrong issuer", token: sign(jwt.SigningMethodHS256, []byte(testKey), wrongIssuer)},
		{name: "wrong audience", token: sign(jwt.SigningMethodHS256, []byte(testKey), wrongAudience)},
		{name: "no expiry", token: sign(jwt.SigningMethodHS256, []byte(testKey), noExpiry)},
		{name: "malformed", token: "not.a.token"},
		{name: "empty", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := verifier.VerifyToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

/*
TestAuthClaims_UserID verifies that absent and malformed subjects are rejected alike.
*/
func TestAuthClaims_UserID(t *testing.T) {
	tests := []struct {
		subject string
		want    int64
		wantErr bool
	}{
		{subject: "42", want: 42},
		{subject: "", wantErr: true},
		{subject: "abc", wantErr: true},
		{subject: "0", wantErr: true},
		{subject: "-5", wantErr: true},
	}

	for _, tt := range tests {
		claims := &sec.AuthClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: tt.subject}}
		id, err := claims.UserID()
		if tt.wantErr {
			assert.ErrorIs(t, err, sec.ErrInvalidSubject, tt.subject)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, tt.want, id)
	}

	var missing *sec.AuthClaims
	_, err := missing.UserID()
	assert.ErrorIs(t, err, sec.ErrInvalidSubject)
}

/*
TestUserRole_AtLeast verifies the role hierarchy.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleUser))
	assert.True(t, sec.RoleUser.AtLeast(sec.RoleUser))
	assert.False(t, sec.RoleUser.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.UserRole("guest").AtLeast(sec.RoleUser))

	assert.Equal(t, sec.RoleAdmin, sec.ParseRole("admin"))
	assert.Equal(t, sec.RoleUser, sec.ParseRole("usuario"))
}
