package errors

import "errors"

var (
	// ErrNotFound marks a referenced record that does not exist or does
	// not belong to the requesting user.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized marks an actor outside the ownership chain of the
	// entity being mutated.
	ErrUnauthorized = errors.New("unauthorized")
)
