package repository

import (
	"errors"

	"skill-matrix/internal/database/sqlite"

	"github.com/jackc/pgx/v5/pgconn"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return sqlite.IsUniqueViolation(err)
}

// IsForeignKeyViolation lets callers turn a dangling-reference write into a
// client error instead of a server one.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return sqlite.IsForeignKeyViolation(err)
}
