package errors

import (
	"strings"
)

// IsDuplicateKey reports whether err is a unique-constraint violation from
// the database. The unique index on users.email is the authority for
// duplicate registrations; a pre-check by email cannot catch two concurrent
// inserts, so services translate this into their duplicate-email error.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// postgres: "duplicate key value violates unique constraint"
	// sqlite (tests): "UNIQUE constraint failed: users.email"
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}
