// Copyright (c) 2026 Eventos. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for credential records.
type UserRepository interface {

	/*
		FindByUsername returns the account whose normalized username matches.

		Parameters:
		  - context: context.Context
		  - username: string (already normalized)

		Returns:
		  - *User: Hydrated entity including hash and salt
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		Create persists a brand-new account and fills ID and CreatedAt.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.Conflict on a duplicate username, or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		TouchLastLogin records a successful login.

		Parameters:
		  - context: context.Context
		  - id: int64
		  - at: time.Time

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	TouchLastLogin(context context.Context, id int64, at time.Time) error
}
