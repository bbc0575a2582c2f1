// Copyright (c) 2026 Eventos. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements registration and login for Eventos accounts.

It owns the credential record (the [User] entity with its password hash and
salt) and issues access tokens through a [TokenIssuer] after the password has
been verified.

# Architecture

  - Service: Register and Login use cases.
  - Repository: [UserRepository], backed by PostgreSQL.
  - Security: PBKDF2 hashing and HS256 tokens from the sec package.
*/
package auth

import (
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/taibuivan/eventos/internal/platform/sec"
	"github.com/taibuivan/eventos/pkg/gender"
)

// # Domain Entities

// User is a stored account: profile fields plus the credential record.
type User struct {
	ID           int64          `json:"id"`
	Username     string         `json:"username"`
	DisplayName  string         `json:"name"`
	Phone        string         `json:"phone"`
	BirthDate    *civil.Date    `json:"birth_date"`
	Gender       *gender.Gender `json:"gender"`
	Email        *string        `json:"email"`
	PasswordHash string         `json:"-"`
	PasswordSalt string         `json:"-"`
	Role         sec.UserRole   `json:"role"`
	IsActive     bool           `json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	LastLoginAt  *time.Time     `json:"last_login_at"`
}

// # Field Identifiers

const (
	FieldUsername    = "username"
	FieldPassword    = "password"
	FieldDisplayName = "name"
	FieldPhone       = "phone"
	FieldGender      = "gender"
	FieldEmail       = "email"
	FieldRole        = "role"
)

// Column limits shared with the users.account table.
const (
	MaxUsernameLen    = 100
	MaxDisplayNameLen = 150
	MaxPhoneLen       = 30
	MaxEmailLen       = 200
)

// NormalizeUsername trims surrounding whitespace and lower-cases the username.
//
// Both registration and login go through it, so "ALICE " and "alice" name
// the same account. A Caser is stateful, so one is built per call.
func NormalizeUsername(username string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(username))
}
