package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrSchemaMissing indicates a query referenced a table that does not exist,
// usually because migrations have not been applied.
var ErrSchemaMissing = errors.New("database schema missing: run migrations")

// ErrTimeout indicates the database did not answer before the deadline.
var ErrTimeout = errors.New("database timeout")

const pgUndefinedTableCode = "42P01"

// MapError translates database errors to domain errors. sql.ErrNoRows maps
// to notFoundErr, an undefined table to ErrSchemaMissing, and connection or
// statement timeouts to ErrTimeout. Other errors are returned unchanged.
func MapError(err error, notFoundErr error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) && notFoundErr != nil {
		return notFoundErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTableCode {
		return errors.Join(ErrSchemaMissing, err)
	}

	if pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return errors.Join(ErrTimeout, err)
	}

	return err
}
