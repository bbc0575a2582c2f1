// Copyright (c) 2026 Eventos. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"github.com/taibuivan/eventos/internal/platform/constants"
)

// # Credential Errors

var (
	// ErrMissingSalt means the stored credential has no salt and can never verify.
	ErrMissingSalt = errors.New("sec: stored credential has no salt")

	// ErrMalformedCredential means the stored hash or salt is not valid base64
	// or has an unexpected length.
	ErrMalformedCredential = errors.New("sec: stored credential is malformed")
)

// # Password Hashing

/*
HashPassword derives a PBKDF2-HMAC-SHA256 hash from a plain-text password.

A fresh random salt is generated for every call, so hashing the same password
twice yields two different results.

Returns:
  - hash: base64 of the 32-byte derived key
  - salt: base64 of the 16-byte random salt
  - error: the randomness source failed; the caller must abort
*/
func HashPassword(plainTextPassword string) (hash, salt string, err error) {
	saltBytes := make([]byte, constants.PasswordSaltBytes)
	if _, err := rand.Read(saltBytes); err != nil {
		return "", "", fmt.Errorf("sec: failed to read random salt: %w", err)
	}

	key := deriveKey(plainTextPassword, saltBytes)

	return base64.StdEncoding.EncodeToString(key), base64.StdEncoding.EncodeToString(saltBytes), nil
}

/*
CheckPasswordHash reports whether plainTextPassword matches the stored hash and salt.

It never panics and never errors: a malformed or missing stored value simply
does not match. Use [InspectCredential] to learn why, for logging.
*/
func CheckPasswordHash(plainTextPassword, storedHash, storedSalt string) bool {
	expected, saltBytes, err := decodeCredential(storedHash, storedSalt)
	if err != nil {
		return false
	}

	actual := deriveKey(plainTextPassword, saltBytes)

	return subtle.ConstantTimeCompare(actual, expected) == 1
}

// InspectCredential returns the reason a stored credential can never verify, or nil.
func InspectCredential(storedHash, storedSalt string) error {
	_, _, err := decodeCredential(storedHash, storedSalt)
	return err
}

func deriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, constants.PasswordIterations, constants.PasswordKeyBytes, sha256.New)
}

func decodeCredential(storedHash, storedSalt string) (hash, salt []byte, err error) {
	if storedSalt == "" {
		return nil, nil, ErrMissingSalt
	}

	salt, err = base64.StdEncoding.DecodeString(storedSalt)
	if err != nil || len(salt) == 0 {
		return nil, nil, ErrMalformedCredential
	}

	hash, err = base64.StdEncoding.DecodeString(storedHash)
	if err != nil || len(hash) != constants.PasswordKeyBytes {
		return nil, nil, ErrMalformedCredential
	}

	return hash, salt, nil
}
