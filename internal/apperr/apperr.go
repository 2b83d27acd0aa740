// Package apperr defines the closed set of failures the API can report.
//
// Repositories and validators return *Error values; the api package is the
// only place that turns them into HTTP responses.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind tags an Error with one of the failure variants.
type Kind uint8

const (
	Internal Kind = iota
	NotFound
	Conflict
	ValidationFailed
	InvalidFilter
	Unauthorized
	InvalidCredentials
)

var kindNames = map[Kind]string{
	Internal:           "internal",
	NotFound:           "not_found",
	Conflict:           "conflict",
	ValidationFailed:   "validation_failed",
	InvalidFilter:      "invalid_filter",
	Unauthorized:       "unauthorized",
	InvalidCredentials: "invalid_credentials",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Status returns the HTTP status code the kind maps to.
func (k Kind) Status() int {
	switch k {
	case NotFound:
		return http.StatusNotFound
	case Conflict, ValidationFailed, InvalidFilter, InvalidCredentials:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error is a tagged failure. Field is set for Conflict, Details for
// ValidationFailed; Err keeps the underlying cause for logging.
type Error struct {
	Kind    Kind
	Message string
	Field   string
	Details []string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if len(e.Details) > 0 {
		msg = msg + ": " + strings.Join(e.Details, "; ")
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Status returns the HTTP status code for the error.
func (e *Error) Status() int { return e.Kind.Status() }

// Is reports whether target is an *Error of the same kind, so callers can
// write errors.Is(err, &apperr.Error{Kind: apperr.NotFound}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// KindOf returns the kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Internal
}

// StatusOf returns the HTTP status for err.
func StatusOf(err error) int {
	return KindOf(err).Status()
}

func NewNotFound(format string, args ...any) *Error {
	return &Error{Kind: NotFound, Message: fmt.Sprintf(format, args...)}
}

// NewConflict reports a uniqueness collision on field.
func NewConflict(field string) *Error {
	return &Error{Kind: Conflict, Field: field, Message: fmt.Sprintf("That %s already exists", field)}
}

func NewValidation(details ...string) *Error {
	return &Error{Kind: ValidationFailed, Message: "Invalid request payload", Details: details}
}

func NewInvalidFilter(format string, args ...any) *Error {
	return &Error{Kind: InvalidFilter, Message: fmt.Sprintf(format, args...)}
}

func NewUnauthorized(message string) *Error {
	return &Error{Kind: Unauthorized, Message: message}
}

func NewInvalidCredentials() *Error {
	return &Error{Kind: InvalidCredentials, Message: "Invalid username/password"}
}

// Wrap marks err as an Internal failure with context msg.
func Wrap(err error, msg string) *Error {
	return &Error{Kind: Internal, Message: msg, Err: err}
}
