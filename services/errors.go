package services

import (
	"errors"
	"strings"
)

// Domain errors returned by the service layer. Controllers translate
// these into HTTP status codes and error envelopes.
var (
	// ErrNotFound means the requested record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrInsufficientStock means a remove operation asked for more units than are in stock
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrUnknownStatus means a status value outside the known enum was supplied
	ErrUnknownStatus = errors.New("unknown status")

	// ErrInvalidTransition means a case status update would move backwards in the lifecycle
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidOperation means a quantity adjustment used an operation other than add/remove
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrSKUConflict means SKU generation kept colliding with existing items
	ErrSKUConflict = errors.New("could not generate a unique SKU")
)

// IsUniqueViolation reports whether err looks like a unique-constraint failure.
// Works with both PostgreSQL and SQLite error strings.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique")
}
