package types

import "errors"

// Standard errors returned by the storage and repository layers.
var (
	// ErrNotFound is returned when a lookup by ID yields no row.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidID is returned when an operation receives a zero or
	// negative entity ID.
	ErrInvalidID = errors.New("invalid entity ID")

	// ErrStoreClosed is returned when an operation is attempted on a
	// closed store.
	ErrStoreClosed = errors.New("store is closed")

	// ErrValidation is wrapped by required-field and format checks
	// performed before any persistence call.
	ErrValidation = errors.New("validation failed")

	// ErrUsernameTaken is returned by registration when the username is
	// already in use.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials is returned by login when the username or
	// password does not match.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrNotLoggedIn is returned by repository operations that require a
	// current user when no session is active.
	ErrNotLoggedIn = errors.New("no user is logged in")
)
