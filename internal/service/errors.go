package service

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is; the concrete error is always *Error.
var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrLimitExceeded = errors.New("limit exceeded")
	ErrStorage       = errors.New("storage failure")
	ErrNoContent     = errors.New("no content")
)

// Error is a failure the HTTP boundary can report: Kind picks the status,
// Key is the message key shown to the client, Err is the underlying cause.
type Error struct {
	Kind error
	Key  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%s): %v", e.Kind, e.Key, e.Err)
	}
	return fmt.Sprintf("%s (%s)", e.Kind, e.Key)
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func fail(kind error, key string, err error) *Error {
	return &Error{Kind: kind, Key: key, Err: err}
}
