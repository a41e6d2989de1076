package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/DonOmbisi/kilimo3/pkg/apperrors"
)

// SQLSTATE for foreign_key_violation.
const fkViolationCode = "23503"

// storeOrNotFound maps a foreign key violation to a not-found error with the
// given message. Anything else is wrapped as a storage failure.
func storeOrNotFound(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == fkViolationCode {
		return apperrors.NotFound(msg)
	}
	return apperrors.Store(err)
}
