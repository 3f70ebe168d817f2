// Package apperr defines the error kinds surfaced by the feedback pipeline and
// their HTTP status mapping.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind categorizes an Error.
type Kind string

const (
	KindMissingField         Kind = "missing_field"
	KindUserNotFound         Kind = "user_not_found"
	KindClassificationFailed Kind = "classification_failed"
	KindStoreFailure         Kind = "store_failure"
	KindInternal             Kind = "internal"
)

// Error carries a Kind, a client-facing message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus maps the kind onto a response status. Everything that is not a
// validation or lookup failure is a 500.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindMissingField:
		return http.StatusBadRequest
	case KindUserNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func MissingField(message string) *Error {
	return &Error{Kind: KindMissingField, Message: message}
}

func UserNotFound(message string) *Error {
	return &Error{Kind: KindUserNotFound, Message: message}
}

func ClassificationFailed(cause error) *Error {
	return &Error{Kind: KindClassificationFailed, Message: "classification failed", Cause: cause}
}

func StoreFailure(cause error) *Error {
	return &Error{Kind: KindStoreFailure, Message: "store failure", Cause: cause}
}

// As extracts an *Error from err's chain. Unknown errors become KindInternal
// with their own text as the message.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindInternal, Message: err.Error(), Cause: err}
}

// KindOf is shorthand for As(err).Kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	return As(err).Kind
}
