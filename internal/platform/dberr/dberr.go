// Copyright (c) 2026 Eventos. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/eventos/internal/platform/apperr"
)

// Wrap inspects a database error and converts it into an [apperr.AppError]
// named after resource. SQL details stay in the cause.
//
//   - no rows: 404
//   - unique violation (23505): 409
//   - foreign key violation (23503): 400
//   - check violation (23514): 400
//   - anything else: 500
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource).WithCause(err)
	}

	switch SQLState(err) {
	case pgerrcode.UniqueViolation:
		return apperr.Conflict(resource + " already exists").WithCause(err)
	case pgerrcode.ForeignKeyViolation:
		return apperr.ValidationError(resource + " references a missing record or is still referenced").WithCause(err)
	case pgerrcode.CheckViolation:
		return apperr.ValidationError(resource + " violates a data constraint").WithCause(err)
	}

	return apperr.Internal(fmt.Errorf("%s: %w", resource, err))
}

// SQLState returns the PostgreSQL error code carried by err, or "".
func SQLState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsUniqueViolation reports whether err is a unique-constraint violation.
func IsUniqueViolation(err error) bool {
	return SQLState(err) == pgerrcode.UniqueViolation
}

// IsForeignKeyViolation reports whether err is a foreign-key violation, such
// as deleting a row that another table still references.
func IsForeignKeyViolation(err error) bool {
	return SQLState(err) == pgerrcode.ForeignKeyViolation
}
