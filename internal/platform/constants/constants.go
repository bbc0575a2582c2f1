// Copyright (c) 2026 Eventos. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Security: token lifetime, key-derivation parameters and clock skew.
  - Schemas: PostgreSQL schema names shared by the table descriptors.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "eventos-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// StartupTimeout bounds database connection and migration at boot.
	StartupTimeout = 30 * time.Second
)

// # Authentication

const (
	// AccessTokenTTL is the fixed lifetime of an issued token. There is no refresh.
	AccessTokenTTL = 4 * time.Hour

	// TokenClockSkew is the tolerance applied to exp/nbf/iat checks.
	TokenClockSkew = 2 * time.Minute

	// PasswordSaltBytes is the length of the random per-credential salt.
	PasswordSaltBytes = 16

	// PasswordKeyBytes is the length of the derived password hash.
	PasswordKeyBytes = 32

	// PasswordIterations is the PBKDF2 work factor.
	PasswordIterations = 100_000
)

// # HTTP Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderOrigin        = "Origin"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)
