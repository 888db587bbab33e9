// Package pgerr classifies Postgres errors returned through gorm.
// The model layer never translates errors; callers use these helpers.
package pgerr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	// UniqueViolationCode indicates a unique constraint violation.
	UniqueViolationCode = "23505"
	// ForeignKeyViolationCode indicates a foreign key violation.
	ForeignKeyViolationCode = "23503"
	// NotNullViolationCode indicates a NOT NULL violation.
	NotNullViolationCode = "23502"
	// CheckViolationCode indicates a check constraint violation.
	CheckViolationCode = "23514"
)

func AsPgError(err error) (*pgconn.PgError, bool) {
	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

func hasCode(err error, code string) bool {
	pe, ok := AsPgError(err)
	return ok && pe.Code == code
}

func IsUniqueViolation(err error) bool     { return hasCode(err, UniqueViolationCode) }
func IsForeignKeyViolation(err error) bool { return hasCode(err, ForeignKeyViolationCode) }
func IsNotNullViolation(err error) bool    { return hasCode(err, NotNullViolationCode) }
func IsCheckViolation(err error) bool      { return hasCode(err, CheckViolationCode) }
