// Package errs defines the domain error kinds shared across mealmind:
// validation failures on caller input, missing plans/lists, and transient
// store or network failures that the caller may retry.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a domain error.
type Kind string

const (
	KindValidation  Kind = "VALIDATION"
	KindNotFound    Kind = "NOT_FOUND"
	KindTransientIO Kind = "TRANSIENT_IO"
)

// Error is a domain error carrying a kind and a human-readable message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports malformed input to a pure operation.
func Validation(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports that a requested plan or list does not exist.
func NotFound(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// TransientIO wraps a store or network failure during a commit. The caller
// owns the retry policy; the pre-operation state is returned alongside so the
// optimistic change can be rolled back.
func TransientIO(err error, format string, args ...interface{}) error {
	return &Error{Kind: KindTransientIO, Message: fmt.Sprintf(format, args...), Err: err}
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == kind
}

// HTTPStatus maps a domain error to an HTTP status code. Unknown errors map
// to 500.
func HTTPStatus(err error) int {
	var de *Error
	if !errors.As(err, &de) {
		return http.StatusInternalServerError
	}
	switch de.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindTransientIO:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
