package domain

import "errors"

type ErrorKind string

const (
	ErrKindNotFound     ErrorKind = "not_found"
	ErrKindConstraint   ErrorKind = "constraint_violation"
	ErrKindIntegrity    ErrorKind = "integrity_violation"
	ErrKindUnauthorized ErrorKind = "unauthorized"
	ErrKindForbidden    ErrorKind = "forbidden"
	ErrKindInternal     ErrorKind = "internal"
)

// Error carries a user-facing message plus a kind the HTTP layer maps to a
// status code. The wrapped cause stays server-side and is only logged.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

func NewNotFound(message string) *Error {
	return &Error{Kind: ErrKindNotFound, Message: message}
}

func NewConstraintViolation(message string) *Error {
	return &Error{Kind: ErrKindConstraint, Message: message}
}

func NewIntegrityViolation(message string) *Error {
	return &Error{Kind: ErrKindIntegrity, Message: message}
}

func NewUnauthorized(message string) *Error {
	return &Error{Kind: ErrKindUnauthorized, Message: message}
}

func NewForbidden(message string) *Error {
	return &Error{Kind: ErrKindForbidden, Message: message}
}

// NewInternal hides the cause behind an opaque message. The cause is kept for
// logging via Unwrap.
func NewInternal(cause error) *Error {
	return &Error{Kind: ErrKindInternal, Message: "An unexpected error occurred.", cause: cause}
}

// KindOf classifies any error; unrecognized errors count as internal.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ErrKindInternal
}
