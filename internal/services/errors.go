package services

import (
	"errors"
	"fmt"
)

// Error codes surfaced by the repositories. Everything else a
// repository can fail with is a backend failure.
const (
	CodeNotFound           = "NOT_FOUND"
	CodeUsernameTaken      = "USERNAME_TAKEN"
	CodeBackendUnavailable = "BACKEND_UNAVAILABLE"
)

type ServiceError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e ServiceError) Error() string {
	return e.Message
}

func (e ServiceError) Unwrap() error {
	return e.Err
}

func ErrNotFound(msg string) error {
	return ServiceError{Status: 404, Code: CodeNotFound, Message: msg}
}

func ErrUsernameTaken(msg string) error {
	return ServiceError{Status: 409, Code: CodeUsernameTaken, Message: msg}
}

// ErrBackendUnavailable wraps a failed remote call. The cause is kept
// intact and never retried here; callers decide what to do with it.
func ErrBackendUnavailable(err error) error {
	return ServiceError{Status: 502, Code: CodeBackendUnavailable, Message: "backing store unavailable", Err: err}
}

func ErrBadRequest(msg string) error {
	return ServiceError{Status: 400, Message: msg}
}

func ErrForbidden(msg string) error {
	return ServiceError{Status: 403, Message: msg}
}

func ErrUnauthorized(msg string) error {
	return ServiceError{Status: 401, Message: msg}
}

// HasCode reports whether err carries the given repository error code.
func HasCode(err error, code string) bool {
	var svcErr ServiceError
	return errors.As(err, &svcErr) && svcErr.Code == code
}

func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
