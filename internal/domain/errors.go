package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates that an entity id does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument indicates a malformed id, sort field, filter or payload.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict indicates the request collides with the current state.
	ErrConflict = errors.New("conflict")
	// ErrAlreadyReturned is returned when a borrowing record has already been closed.
	ErrAlreadyReturned = fmt.Errorf("book already returned: %w", ErrConflict)
)

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// InvalidArgumentf wraps ErrInvalidArgument with a formatted message.
func InvalidArgumentf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidArgument)...)
}
