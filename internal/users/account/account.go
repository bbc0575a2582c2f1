// Copyright (c) 2026 Eventos. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles administration of existing user accounts.

Accounts are created only through registration in the auth package. This
package lists, reads, edits and removes them without ever exposing the
credential material.

# Architecture

  - Entities: reuses [auth.User]; hash and salt are never selected.
  - Security: listing, editing and deletion are admin-only; reading a single
    account requires authentication.
*/
package account

import (
	"context"

	"github.com/taibuivan/eventos/internal/users/auth"
	"github.com/taibuivan/eventos/pkg/pagination"
)

// # Repository Contracts

// AccountRepository defines the persistence contract for user accounts.
type AccountRepository interface {
	/*
		List returns one page of accounts ordered by id.

		Returns:
		  - pagination.Page: Profiles plus the total count
		  - error: Storage failures
	*/
	List(context context.Context, params pagination.Params) (pagination.Page[*auth.User], error)

	/*
		FindByID retrieves a user profile by its numeric id.

		Returns:
		  - *auth.User: Profile without credential fields
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id int64) (*auth.User, error)

	// Update replaces the mutable profile fields, role and status.
	Update(context context.Context, user *auth.User) error

	/*
		Delete removes an account.

		Returns:
		  - error: apperr.NotFound, or a validation error while the user still owns events
	*/
	Delete(context context.Context, id int64) error
}
