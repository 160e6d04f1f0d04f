package store

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when a signup email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrNotFoundOrForbidden is returned by ownership-scoped mutations when the
	// target link does not exist or does not belong to the requester. The two
	// cases are deliberately indistinguishable so callers cannot probe for the
	// existence of other users' links.
	ErrNotFoundOrForbidden = errors.New("link not found or not owned by requester")

	// ErrAlreadyVoted is returned when a user votes twice on the same link.
	ErrAlreadyVoted = errors.New("user has already voted on this link")
)

// isUniqueConstraintError checks whether err indicates a unique constraint violation.
// Works across SQLite, PostgreSQL, and MySQL.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || // SQLite & PostgreSQL
		strings.Contains(msg, "duplicate key") || // PostgreSQL
		strings.Contains(msg, "duplicate entry") // MySQL
}

// isForeignKeyError checks whether err indicates a foreign key violation.
func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key")
}
