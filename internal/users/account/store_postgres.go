// Copyright (c) 2026 Eventos. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/eventos/internal/platform/apperr"
	"github.com/taibuivan/eventos/internal/platform/database/schema"
	"github.com/taibuivan/eventos/internal/platform/dberr"
	"github.com/taibuivan/eventos/internal/platform/postgres"
	"github.com/taibuivan/eventos/internal/users/auth"
	"github.com/taibuivan/eventos/pkg/pagination"
)

// # Repository Implementation

// PostgresAccountRepository implements [AccountRepository] on users.account.
type PostgresAccountRepository struct {
	db postgres.DBTX
}

// NewAccountRepository creates a new Postgres implementation for account administration.
func NewAccountRepository(db postgres.DBTX) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

// List returns one page of profiles ordered by id.
func (repository *PostgresAccountRepository) List(context context.Context, params pagination.Params) (pagination.Page[*auth.User], error) {
	table := schema.UserAccount

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, table.Table)
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return pagination.Page[*auth.User]{}, dberr.Wrap(err, "User")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY %s
		LIMIT $1 OFFSET $2`,
		strings.Join(table.ProfileColumns(), ", "), table.Table, table.ID,
	)

	rows, err := repository.db.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return pagination.Page[*auth.User]{}, dberr.Wrap(err, "User")
	}
	defer rows.Close()

	var users []*auth.User
	for rows.Next() {
		user, err := auth.ScanProfile(rows)
		if err != nil {
			return pagination.Page[*auth.User]{}, dberr.Wrap(err, "User")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return pagination.Page[*auth.User]{}, dberr.Wrap(err, "User")
	}

	return pagination.NewPage(users, total, params), nil
}

/*
FindByID retrieves a profile from the users.account table.

Returns:
  - *auth.User: Profile without credential fields
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, id int64) (*auth.User, error) {
	table := schema.UserAccount
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(table.ProfileColumns(), ", "), table.Table, table.ID,
	)

	user, err := auth.ScanProfile(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

// Update writes the editable fields. Hash, salt and timestamps are untouched.
func (repository *PostgresAccountRepository) Update(context context.Context, user *auth.User) error {
	table := schema.UserAccount
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9
		WHERE %s = $1`,
		table.Table,
		table.Username, table.DisplayName, table.Phone, table.BirthDate,
		table.Gender, table.Email, table.Role, table.IsActive,
		table.ID,
	)

	tag, err := repository.db.Exec(context, query,
		user.ID,
		user.Username,
		user.DisplayName,
		user.Phone,
		postgres.NullableDate(user.BirthDate),
		auth.GenderArg(user.Gender),
		user.Email,
		string(user.Role),
		user.IsActive,
	)
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "User")
	}
	return nil
}

// Delete removes the account. Owned events block the delete through ON DELETE RESTRICT.
func (repository *PostgresAccountRepository) Delete(context context.Context, id int64) error {
	table := schema.UserAccount
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return apperr.ValidationError("User still owns events").WithCause(err)
		}
		return dberr.Wrap(err, "User")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "User")
	}
	return nil
}
