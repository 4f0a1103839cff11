package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// Postgres SQLSTATE codes surfaced with a readable message.
const (
	codeNumericOutOfRange = "22003"
	codeNotNullViolation  = "23502"
	codeCheckViolation    = "23514"
	codeStringTooLong     = "22001"
	codeUndefinedTable    = "42P01"
)

var codeMessages = map[string]string{
	codeNumericOutOfRange: "value out of range",
	codeNotNullViolation:  "missing required value",
	codeCheckViolation:    "value rejected by constraint",
	codeStringTooLong:     "text too long",
	codeUndefinedTable:    "project table missing (run the migrate command)",
}

// classify turns driver errors from lib/pq or pgx into errors that carry a
// readable message while keeping the driver error in the chain.
func classify(err error) error {
	if err == nil {
		return nil
	}

	code := ""
	var pqErr *pq.Error
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pqErr):
		code = string(pqErr.Code)
	case errors.As(err, &pgErr):
		code = pgErr.Code
	}

	if msg, ok := codeMessages[code]; ok {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return err
}
