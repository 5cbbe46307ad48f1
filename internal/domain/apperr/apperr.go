// Package apperr holds the error classes shared by every domain package.
// Domain errors wrap exactly one class so the HTTP boundary can map them
// with errors.Is without knowing the concrete domain.
package apperr

import "errors"

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalidInput    = errors.New("invalid input")
	ErrStorage         = errors.New("storage failure")
	ErrUpstream        = errors.New("upstream failure")
)

// Error is a domain error tagged with a class and optionally carrying the
// underlying cause.
type Error struct {
	class error
	msg   string
	cause error
}

func New(class error, msg string) *Error { return &Error{class: class, msg: msg} }

func (e *Error) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() []error {
	if e.cause != nil {
		return []error{e.class, e.cause}
	}
	return []error{e.class}
}

// Storage wraps a store failure. Nil stays nil.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	return &Error{class: ErrStorage, msg: "storage failure", cause: err}
}

// Upstream wraps a failure of the identity or payment provider.
func Upstream(what string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{class: ErrUpstream, msg: what + " failure", cause: err}
}

// Invalid builds an InvalidInput error with a caller-facing message.
func Invalid(msg string) error { return New(ErrInvalidInput, msg) }
