package services

import "errors"

// ErrorKind is the closed set of failure kinds surfaced to
// callers. Handlers map kinds to HTTP statuses and clients
// branch on the kind field, never on the message.
type ErrorKind string

const (
	KindValidation      ErrorKind = "validation"
	KindUnauthenticated ErrorKind = "unauthenticated"
	KindNotFound        ErrorKind = "not_found"
	KindForbidden       ErrorKind = "forbidden"
	KindConflict        ErrorKind = "conflict"
	KindInternal        ErrorKind = "internal"
)

type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func newUnauthenticatedError(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func newNotFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func newForbiddenError(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func newConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// KindOf extracts the error kind; anything that is not a
// services.Error counts as internal.
func KindOf(err error) ErrorKind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}
