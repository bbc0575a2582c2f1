// Copyright (c) 2026 Eventos. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/civil"

	"github.com/taibuivan/eventos/internal/platform/apperr"
	"github.com/taibuivan/eventos/internal/platform/sec"
	"github.com/taibuivan/eventos/internal/platform/validate"
	"github.com/taibuivan/eventos/internal/users/auth"
	"github.com/taibuivan/eventos/pkg/gender"
	"github.com/taibuivan/eventos/pkg/pagination"
)

// # Service Layer

// Service orchestrates account administration.
type Service struct {
	accountRepository AccountRepository
	phoneRegion       string
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accountRepo AccountRepository, phoneRegion string, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		phoneRegion:       phoneRegion,
		logger:            logger,
	}
}

// ListUsers returns one page of accounts.
func (service *Service) ListUsers(context context.Context, params pagination.Params) (pagination.Page[*auth.User], error) {
	page, err := service.accountRepository.List(context, params)
	if err != nil {
		return page, fmt.Errorf("account_service_list_failed: %w", err)
	}
	return page, nil
}

/*
GetUser retrieves a single account profile.

Returns:
  - *auth.User: The profile
  - error: Not found or execution failures
*/
func (service *Service) GetUser(context context.Context, userID int64) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_failed: %w", err)
	}
	return user, nil
}

/*
GetMe resolves the caller's own account from its identity.

Returns:
  - error: apperr.Unauthorized when claims are absent or the subject is not a user id
*/
func (service *Service) GetMe(context context.Context, claims *sec.AuthClaims) (*auth.User, error) {
	userID, err := claims.UserID()
	if err != nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return service.GetUser(context, userID)
}

// UpdateInput is the full replacement of an account's editable fields.
//
// ID is the identifier echoed in the body; when present it must equal the
// path identifier.
type UpdateInput struct {
	ID          *int64
	Username    string
	DisplayName string
	Phone       string
	BirthDate   *civil.Date
	Gender      *gender.Gender
	Email       *string
	Role        sec.UserRole
	IsActive    bool
}

/*
UpdateUser replaces the profile, role and status of an account.

Description: Credential fields are untouched. The username goes through the
same normalization as registration and stays unique.

Returns:
  - *auth.User: The updated profile
  - error: ValidationError, NotFound, Conflict or storage failures
*/
func (service *Service) UpdateUser(context context.Context, userID int64, input UpdateInput) (*auth.User, error) {
	if input.ID != nil && *input.ID != userID {
		return nil, apperr.ValidationError("Body id does not match the path id")
	}

	username := auth.NormalizeUsername(input.Username)

	validator := &validate.Validator{}
	validator.Required(auth.FieldUsername, username).
		MaxLen(auth.FieldUsername, username, auth.MaxUsernameLen).
		MaxLen(auth.FieldDisplayName, input.DisplayName, auth.MaxDisplayNameLen).
		MaxLen(auth.FieldPhone, input.Phone, auth.MaxPhoneLen).
		Phone(auth.FieldPhone, input.Phone, service.phoneRegion).
		Custom(auth.FieldRole, !input.Role.Valid(), "Must be admin or user")

	if input.Email != nil {
		validator.Email(auth.FieldEmail, *input.Email).MaxLen(auth.FieldEmail, *input.Email, auth.MaxEmailLen)
	}
	if input.Gender != nil {
		validator.Custom(auth.FieldGender, !input.Gender.Valid(), "Must be 0, 1 or 2")
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	user.Username = username
	user.DisplayName = input.DisplayName
	user.Phone = input.Phone
	user.BirthDate = input.BirthDate
	user.Gender = input.Gender
	user.Email = input.Email
	user.Role = input.Role
	user.IsActive = input.IsActive

	if err := service.accountRepository.Update(context, user); err != nil {
		if apperr.HasCode(err, apperr.CodeConflict) {
			return nil, apperr.Conflict("Username is already taken")
		}
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.Info("user_updated",
		slog.Int64("user_id", userID),
		slog.String("role", string(user.Role)),
		slog.Bool("is_active", user.IsActive),
	)

	return user, nil
}

// DeleteUser removes an account that owns no events.
func (service *Service) DeleteUser(context context.Context, userID int64) error {
	if err := service.accountRepository.Delete(context, userID); err != nil {
		return fmt.Errorf("account_service_delete_failed: %w", err)
	}

	service.logger.Warn("user_deleted", slog.Int64("user_id", userID))
	return nil
}
