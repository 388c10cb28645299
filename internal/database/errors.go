package database

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

func pgCode(err error) (string, string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

// IsUniqueViolation reports whether err is a unique constraint violation.
// When constraints are given, the violated constraint must be one of them.
func IsUniqueViolation(err error, constraints ...string) bool {
	return matches(err, codeUniqueViolation, constraints)
}

func IsForeignKeyViolation(err error, constraints ...string) bool {
	return matches(err, codeForeignKeyViolation, constraints)
}

func IsCheckViolation(err error, constraints ...string) bool {
	return matches(err, codeCheckViolation, constraints)
}

func IsSerializationFailure(err error) bool {
	code, _ := pgCode(err)
	return code == codeSerializationFailure || code == codeDeadlockDetected
}

func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func matches(err error, code string, constraints []string) bool {
	got, constraint := pgCode(err)
	if got != code {
		return false
	}
	if len(constraints) == 0 {
		return true
	}
	for _, c := range constraints {
		if c == constraint {
			return true
		}
	}
	return false
}
