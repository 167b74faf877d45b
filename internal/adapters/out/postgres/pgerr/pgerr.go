// Package pgerr translates driver errors into the engine's error taxonomy.
package pgerr

import (
	"errors"

	"amendments/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes that mean a concurrent writer won.
const (
	UniqueViolation      = "23505"
	SerializationFailure = "40001"
	LockNotAvailable     = "55P03"
)

// Translate maps write conflicts to ConcurrencyConflictError for entity.
// Other errors are returned unchanged.
func Translate(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewConcurrencyConflictErrorWithCause(entity, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case UniqueViolation, SerializationFailure, LockNotAvailable:
			return errs.NewConcurrencyConflictErrorWithCause(entity, err)
		}
	}
	return err
}
