package domain

import "errors"

var (
	// ErrDuplicateEmail indicates that an account with the email already exists.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrAccountNotFound indicates that no account matches the email or id.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidCredentials indicates a password mismatch when verification is on.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNoSession indicates that nobody is signed in.
	ErrNoSession = errors.New("not signed in")
	// ErrTrialExpired indicates an unsubscribed account past its trial window.
	ErrTrialExpired = errors.New("trial expired, subscription required")
	// ErrEntryNotFound indicates that no ledger entry has the given id.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrNotOwner indicates an attempt to delete another account's entry.
	ErrNotOwner = errors.New("entry belongs to another account")
	// ErrInvalidInput indicates a structurally invalid request.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMalformedStorage indicates a stored snapshot that failed to parse or validate.
	ErrMalformedStorage = errors.New("malformed storage")
)
