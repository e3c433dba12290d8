package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a query matches no rows.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned on unique constraint violations.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrForeignKeyViolation is returned when a referenced row doesn't exist.
	ErrForeignKeyViolation = errors.New("foreign key violation")
	// ErrInvalidData is returned when the store rejects a value (check constraint, bad cast, overflow).
	ErrInvalidData = errors.New("invalid data")
)

// StoreError keeps the driver error next to the class it was mapped to.
type StoreError struct {
	Class      error
	Constraint string
	Detail     string
	Cause      error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Class, e.Cause)
}

func (e *StoreError) Is(target error) bool { return errors.Is(e.Class, target) }
func (e *StoreError) Unwrap() error        { return e.Cause }

// Classify maps a driver or gorm error to one of the package sentinels, wrapped in
// StoreError. Unknown errors are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &StoreError{Class: ErrNotFound, Cause: err}
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	res := &StoreError{Constraint: pgErr.ConstraintName, Detail: pgErr.Detail, Cause: err}
	// https://www.postgresql.org/docs/current/errcodes-appendix.html
	switch pgErr.Code {
	case "23505": // unique_violation
		res.Class = ErrDuplicateKey
	case "23503": // foreign_key_violation
		res.Class = ErrForeignKeyViolation
	case "23514", "22P02", "22003", "23502": // check_violation, invalid_text_representation, numeric_value_out_of_range, not_null_violation
		res.Class = ErrInvalidData
	default:
		return err
	}
	return res
}
