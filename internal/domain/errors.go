package domain

import "errors"

var (
	// ErrNotFound indicates the referenced record is absent or in the wrong
	// state for the requested transition.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness violation.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrInvalidRequest indicates malformed or incomplete input.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnauthorized indicates the actor lacks the required role.
	ErrUnauthorized = errors.New("unauthorized access")
)
