package store

import "errors"

// Sentinel errors returned by the stores. Handlers map these to HTTP
// responses with errors.Is.
var (
	ErrNotFound = errors.New("not found")

	// Duplicate-identity errors are distinct so registration can tell the
	// caller which of the two unique fields conflicted.
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already registered")
)
