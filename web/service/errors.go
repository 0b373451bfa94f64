package service

import "errors"

// Failure categories surfaced to the web layer. Handlers match with
// errors.Is and turn each into a flash notice or a JSON status.
var (
	// ErrValidation marks bad or missing form input.
	ErrValidation = errors.New("invalid input")

	// ErrDuplicate marks a username/email uniqueness violation.
	ErrDuplicate = errors.New("already exists")

	// ErrNotFound covers both a missing record and a record owned by
	// another user, so existence of other users' records never leaks.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials marks a failed password comparison.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrConfiguration marks a missing generation API credential.
	ErrConfiguration = errors.New("not configured")

	// ErrFiltered marks a generation stopped by the API safety filter.
	ErrFiltered = errors.New("content filtered")

	// ErrGeneration marks any other failure of the external call.
	ErrGeneration = errors.New("generation failed")

	// ErrIO marks a file write or rename failure.
	ErrIO = errors.New("file operation failed")
)
