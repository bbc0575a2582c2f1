// Copyright (c) 2026 Eventos. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/taibuivan/eventos/internal/platform/database/schema"
	"github.com/taibuivan/eventos/internal/platform/dberr"
	"github.com/taibuivan/eventos/internal/platform/postgres"
	"github.com/taibuivan/eventos/internal/platform/sec"
	"github.com/taibuivan/eventos/pkg/gender"
)

// # User Repository

// PostgresUserRepository implements [UserRepository] on the users.account table.
//
// Every lookup compares lower(username), matching the unique index, and every
// value is bound as a parameter.
type PostgresUserRepository struct {
	db postgres.DBTX
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(db postgres.DBTX) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

/*
FindByUsername retrieves a credential record by normalized username.

Returns:
  - *User: Hydrated account entity including hash and salt
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	table := schema.UserAccount
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE lower(%s) = lower($1)`,
		strings.Join(table.ProfileColumns(), ", "), table.PasswordHash, table.PasswordSalt,
		table.Table, table.Username,
	)

	row := repository.db.QueryRow(context, query, username)

	var hash string
	var salt *string
	user, err := scanUser(row, &hash, &salt)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	user.PasswordHash = hash
	if salt != nil {
		user.PasswordSalt = *salt
	}

	return user, nil
}

/*
Create inserts a new account and reads back the generated id and timestamp.

Returns:
  - error: apperr.Conflict when the normalized username already exists
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	table := schema.UserAccount
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s, %s`,
		table.Table,
		table.Username, table.DisplayName, table.Phone, table.BirthDate, table.Gender,
		table.Email, table.PasswordHash, table.PasswordSalt, table.Role, table.IsActive,
		table.ID, table.CreatedAt,
	)

	err := repository.db.QueryRow(context, query,
		user.Username,
		user.DisplayName,
		user.Phone,
		postgres.NullableDate(user.BirthDate),
		GenderArg(user.Gender),
		user.Email,
		user.PasswordHash,
		user.PasswordSalt,
		string(user.Role),
		user.IsActive,
	).Scan(&user.ID, &user.CreatedAt)

	return dberr.Wrap(err, "User")
}

// TouchLastLogin stamps the last successful login.
func (repository *PostgresUserRepository) TouchLastLogin(context context.Context, id int64, at time.Time) error {
	table := schema.UserAccount
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`, table.Table, table.LastLoginAt, table.ID)

	tag, err := repository.db.Exec(context, query, id, at)
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "User")
	}
	return nil
}

// # Row Mapping

// ScanProfile reads a row selected with [schema.UserAccountTable.ProfileColumns].
func ScanProfile(row pgx.Row) (*User, error) {
	return scanUser(row)
}

// scanUser reads the profile columns followed by any extra destinations.
func scanUser(row pgx.Row, extra ...any) (*User, error) {
	user := &User{}

	var (
		birthDate pgtype.Date
		genderVal pgtype.Int2
		role      string
	)

	destinations := []any{
		&user.ID, &user.Username, &user.DisplayName, &user.Phone, &birthDate, &genderVal,
		&user.Email, &role, &user.IsActive, &user.CreatedAt, &user.LastLoginAt,
	}

	if err := row.Scan(append(destinations, extra...)...); err != nil {
		return nil, err
	}

	user.BirthDate = postgres.NullableDateFrom(birthDate)
	user.Role = sec.ParseRole(role)
	if genderVal.Valid {
		value := gender.Gender(genderVal.Int16)
		user.Gender = &value
	}

	return user, nil
}

// GenderArg encodes an optional gender as a nullable SMALLINT.
func GenderArg(value *gender.Gender) pgtype.Int2 {
	if value == nil {
		return pgtype.Int2{}
	}
	return pgtype.Int2{Int16: int16(*value), Valid: true}
}
