package store

import (
	"errors"

	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/storage"
)

// Error messages are written for API clients; handlers send err.Error()
// back verbatim for everything except storage failures.
var (
	ErrConflict           = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid username/email or password")

	// ErrStorageUnavailable is storage.ErrUnavailable, re-exported so
	// callers of this package need not import storage.
	ErrStorageUnavailable = storage.ErrUnavailable
)

// ValidationError reports a malformed or missing input field.
type ValidationError struct {
	// Field is the JSON name of the first offending field.
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
