package common

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a point lookup that matched nothing.
	ErrNotFound = errors.New("not found")

	// ErrRemoteUnavailable wraps any data-store or object-store failure.
	// It propagates to the caller uncaught; no retry is performed.
	ErrRemoteUnavailable = errors.New("remote unavailable")

	// ErrInvalidURLFormat signals a storage URL that cannot be mapped back
	// to an object key.
	ErrInvalidURLFormat = errors.New("invalid storage url format")

	// ErrRateLimited signals a throttled rating submission.
	ErrRateLimited = errors.New("too many submissions")
)

// ValidationError reports a single rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RemoteErr wraps err as a remote-store failure, keeping the operation name
// visible to the outermost handler.
func RemoteErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrRemoteUnavailable, err)
}
