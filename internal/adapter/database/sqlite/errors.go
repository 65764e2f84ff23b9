package sqlite

import (
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3"

	"crmchat/internal/core/domain"
)

// WrapError translates driver errors into domain errors. A missing row
// becomes domain.ErrNotFound, domain errors pass through and everything
// else is a *domain.StorageError.
func WrapError(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}

	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) || domain.IsStorageError(err) {
		return err
	}

	return &domain.StorageError{Op: op, Constraint: IsConstraintError(err), Err: err}
}

func IsConstraintError(err error) bool {
	var sqliteErr sqlite3.Error

	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}

	return false
}
