package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error by how the caller should react to it.
type Kind int

const (
	KindStore Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindTimeWindow
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindTimeWindow:
		return "time_window"
	default:
		return "store"
	}
}

// HTTPStatus maps a kind to the status code returned by handlers.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindTimeWindow:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is the error type shared by every domain.
type Error struct {
	Kind    Kind
	Code    string
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

// =====================================================
// CONSTRUCTORS
// =====================================================

func Validation(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func Unauthenticated(code, message string) *Error {
	return &Error{Kind: KindAuthentication, Code: code, Message: message}
}

func Forbidden(code, message string) *Error {
	return &Error{Kind: KindAuthorization, Code: code, Message: message}
}

func NotFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func TimeWindow(code, message string) *Error {
	return &Error{Kind: KindTimeWindow, Code: code, Message: message}
}

// Store wraps a persistence failure. The message is safe to show to clients,
// the wrapped error is not.
func Store(code, message string, err error) *Error {
	return &Error{Kind: KindStore, Code: code, Message: message, Err: err}
}

// From returns err as *Error, or wraps it as a store error when it carries no kind.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Store("INTERNAL_ERROR", "An unexpected error occurred", err)
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
