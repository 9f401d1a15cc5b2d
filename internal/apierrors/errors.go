// Package apierrors defines the classified errors returned by domain services
// and their mapping onto HTTP status codes.
package apierrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a domain failure.
type Kind int

const (
	// KindInternal is a downstream dependency failure or an unclassified error.
	KindInternal Kind = iota
	// KindBadRequest is missing or invalid input.
	KindBadRequest
	// KindUnauthorized is a missing, invalid or expired credential.
	KindUnauthorized
	// KindForbidden is a valid identity lacking privilege or ownership.
	KindForbidden
	// KindNotFound is a referenced entity that does not exist.
	KindNotFound
	// KindConflict is a uniqueness violation.
	KindConflict
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// HTTPStatus returns the HTTP status code rendered for the kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// APIError is a classified failure safe to show to the caller.
type APIError struct {
	Kind    Kind
	Message string
	Errors  []string
}

// Error implements error.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// HTTPStatus returns the HTTP status code for the error kind.
func (e *APIError) HTTPStatus() int {
	return e.Kind.HTTPStatus()
}

// Is reports whether target is an APIError of the same kind and message.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == e.Message
}

func newError(kind Kind, message string, errs ...string) *APIError {
	if errs == nil {
		errs = []string{}
	}
	return &APIError{Kind: kind, Message: message, Errors: errs}
}

// NewBadRequest creates a BadRequest error with optional field errors.
func NewBadRequest(message string, errs ...string) *APIError {
	return newError(KindBadRequest, message, errs...)
}

// NewUnauthorized creates an Unauthorized error.
func NewUnauthorized(message string) *APIError {
	return newError(KindUnauthorized, message)
}

// NewForbidden creates a Forbidden error.
func NewForbidden(message string) *APIError {
	return newError(KindForbidden, message)
}

// NewNotFound creates a NotFound error.
func NewNotFound(message string) *APIError {
	return newError(KindNotFound, message)
}

// NewConflict creates a Conflict error.
func NewConflict(message string) *APIError {
	return newError(KindConflict, message)
}

// NewInternal creates an Internal error. The message is shown to callers,
// so it must never carry downstream detail.
func NewInternal(message string) *APIError {
	return newError(KindInternal, message)
}

// From returns err as an *APIError. Unclassified errors become a generic
// Internal error; the cause is not exposed.
func From(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return NewInternal("Something went wrong")
}

// KindOf returns the kind of err, KindInternal when unclassified.
func KindOf(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
