// Copyright (c) 2026 Eventos. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/civil"

	"github.com/taibuivan/eventos/internal/platform/apperr"
	"github.com/taibuivan/eventos/internal/platform/sec"
	"github.com/taibuivan/eventos/internal/platform/validate"
	"github.com/taibuivan/eventos/pkg/gender"
)

// errInvalidCredentials is the only error a failed login ever returns.
var errInvalidCredentials = apperr.Unauthorized("Invalid username or password")

// dummyCredential is verified against when the username does not exist so
// unknown and known accounts cost the same key derivation.
var dummyCredential = newDummyCredential(sec.HashPassword)

// newDummyCredential derives the dummy credential once. A failing random
// source is fatal: an empty credential would skip the derivation.
func newDummyCredential(hash func(string) (string, string, error)) func() (string, string) {
	return sync.OnceValues(func() (string, string) {
		dummyHash, dummySalt, err := hash("eventos-dummy-password")
		if err != nil {
			slog.Error("dummy_credential_failed", slog.Any("error", err))
			panic(fmt.Sprintf("auth: derive dummy credential: %v", err))
		}
		return dummyHash, dummySalt
	})
}

// # Contracts & Types

// TokenIssuer defines the contract for minting access tokens.
type TokenIssuer interface {
	GenerateAccessToken(userID int64, username string, role sec.UserRole) (string, time.Time, error)
}

// Service implements user authentication use cases.
type Service struct {
	userRepository UserRepository
	tokenIssuer    TokenIssuer
	phoneRegion    string
	logger         *slog.Logger
	now            func() time.Time
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, issuer TokenIssuer, phoneRegion string, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		tokenIssuer:    issuer,
		phoneRegion:    phoneRegion,
		logger:         logger,
		now:            time.Now,
	}
}

// AuthResult is returned by successful registration and login.
type AuthResult struct {
	UserID    int64        `json:"id"`
	Username  string       `json:"username"`
	Role      sec.UserRole `json:"role"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// # Registration Flow

// RegisterInput holds the data a client may supply to create an account.
// It is deliberately separate from [User]: no role, hash, salt or status.
type RegisterInput struct {
	Username    string
	Password    string
	DisplayName string
	Phone       string
	BirthDate   *civil.Date
	Gender      *gender.Gender
	Email       *string
}

/*
Register validates, hashes, and persists a brand new user account.

The username is normalized before the uniqueness check. The store's unique
index on lower(username) catches concurrent duplicates the check misses.

Returns:
  - *AuthResult: The new account id and a signed token
  - error: ValidationError, Conflict or internal failures
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*AuthResult, error) {
	username := NormalizeUsername(input.Username)

	validator := &validate.Validator{}
	validator.Required(FieldUsername, username).
		MaxLen(FieldUsername, username, MaxUsernameLen).
		Required(FieldPassword, input.Password).
		MaxLen(FieldDisplayName, input.DisplayName, MaxDisplayNameLen).
		MaxLen(FieldPhone, input.Phone, MaxPhoneLen).
		Phone(FieldPhone, input.Phone, service.phoneRegion)

	if input.Email != nil {
		validator.Email(FieldEmail, *input.Email).MaxLen(FieldEmail, *input.Email, MaxEmailLen)
	}
	if input.Gender != nil {
		validator.Custom(FieldGender, !input.Gender.Valid(), "Must be 0, 1 or 2")
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Uniqueness check ahead of the insert for a friendly error
	_, err := service.userRepository.FindByUsername(context, username)
	if err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}
	if !apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, fmt.Errorf("auth_service_register_lookup_failed: %w", err)
	}

	hash, salt, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", apperr.Internal(err))
	}

	user := &User{
		Username:     username,
		DisplayName:  input.DisplayName,
		Phone:        input.Phone,
		BirthDate:    input.BirthDate,
		Gender:       input.Gender,
		Email:        input.Email,
		PasswordHash: hash,
		PasswordSalt: salt,
		Role:         sec.RoleUser,
		IsActive:     true,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		if apperr.HasCode(err, apperr.CodeConflict) {
			return nil, apperr.Conflict("Username is already taken")
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	service.logger.Info("user_registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return service.issue(user)
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string
}

/*
Login verifies credentials and issues an access token.

Unknown username, inactive account, missing or corrupt stored credential and
wrong password are indistinguishable to the caller. The reason is logged.

Returns:
  - *AuthResult: Account id and a signed token
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*AuthResult, error) {
	username := NormalizeUsername(input.Username)
	if username == "" || strings.TrimSpace(input.Password) == "" {
		return nil, errInvalidCredentials
	}

	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		if !apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
		}

		dummyHash, dummySalt := dummyCredential()
		sec.CheckPasswordHash(input.Password, dummyHash, dummySalt)
		return nil, errInvalidCredentials
	}

	if !user.IsActive {
		service.logger.Info("login_rejected", slog.Int64("user_id", user.ID), slog.String("reason", "inactive"))
		return nil, errInvalidCredentials
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash, user.PasswordSalt) {
		if reason := sec.InspectCredential(user.PasswordHash, user.PasswordSalt); reason != nil {
			service.logger.Warn("login_rejected",
				slog.Int64("user_id", user.ID),
				slog.String("reason", reason.Error()),
			)
		}
		return nil, errInvalidCredentials
	}

	// Bookkeeping only, the login itself already succeeded
	if err := service.userRepository.TouchLastLogin(context, user.ID, service.now().UTC()); err != nil {
		service.logger.Error("last_login_update_failed",
			slog.Int64("user_id", user.ID),
			slog.Any("error", err),
		)
	}

	service.logger.Info("user_logged_in", slog.Int64("user_id", user.ID))

	return service.issue(user)
}

func (service *Service) issue(user *User) (*AuthResult, error) {
	token, expiresAt, err := service.tokenIssuer.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_failed: %w", apperr.Internal(err))
	}

	return &AuthResult{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
