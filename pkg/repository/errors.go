package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the Postgres error code raised when an insert breaks
// a unique constraint.
const uniqueViolation = "23505"

// MapError converts storage-level failures into the caller's domain errors:
// sql.ErrNoRows becomes notFound, a unique-constraint violation becomes
// duplicate. Anything else is returned as-is.
func MapError(err error, notFound, duplicate error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return duplicate
	}

	return err
}
