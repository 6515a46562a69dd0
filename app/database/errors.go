package database

import (
	"errors"

	"github.com/lib/pq"
)

// uniqueViolation is the Postgres error code raised when a write violates a
// unique constraint. Exactly one of two concurrent conflicting writers sees it.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a violated unique constraint.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// ViolatedConstraint returns the name of the constraint behind a unique
// violation, or "" when err is not one.
func ViolatedConstraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return pqErr.Constraint
	}
	return ""
}
