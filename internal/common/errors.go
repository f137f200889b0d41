// Package common defines shared constants, sentinel errors and the structured
// application error used across the gophaccounts server. Callers should use
// errors.Is / errors.As to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal         = errors.New("internal error")
	ErrorUnauthorized     = errors.New("unauthorized")
	ErrorValidation       = errors.New("validation error")
	ErrorMethodNotAllowed = errors.New("method not allowed")

	// Uniqueness errors raised by the users repository when the database
	// rejects a write on one of its unique indexes.
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already taken")
	ErrTokenTaken    = errors.New("session token already taken")
)
