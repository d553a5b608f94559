// Package errs defines the error taxonomy returned by the service layer.
// Every error carries the HTTP status class the api layer responds with.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an Error
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindForbidden
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

// Error is a typed service error
type Error struct {
	Kind    Kind
	Status  int
	Fields  map[string][]string
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	for field, msgs := range e.Fields {
		if len(msgs) > 0 {
			return fmt.Sprintf("%s: %s %s", e.Kind, field, msgs[0])
		}
	}
	return e.Kind.String()
}

// Body returns the JSON body for the error response
func (e *Error) Body() map[string]interface{} {
	if e.Kind == KindUnauthorized {
		return map[string]interface{}{"status": "error", "message": e.Message}
	}
	if len(e.Fields) > 0 {
		return map[string]interface{}{"errors": e.Fields}
	}
	return map[string]interface{}{"message": e.Message}
}

// Validation reports a field that failed a check, e.g. Validation("title", "can't be blank")
func Validation(field, message string) *Error {
	return &Error{
		Kind:   KindValidation,
		Status: http.StatusUnprocessableEntity,
		Fields: map[string][]string{field: {message}},
	}
}

// Blank reports a required field that was empty
func Blank(field string) *Error {
	return Validation(field, "can't be blank")
}

// Conflict reports a uniqueness violation on field
func Conflict(field string) *Error {
	return &Error{
		Kind:   KindConflict,
		Status: http.StatusUnprocessableEntity,
		Fields: map[string][]string{field: {"must be unique"}},
	}
}

// NotFound reports that resource could not be resolved
func NotFound(resource string) *Error {
	return &Error{
		Kind:   KindNotFound,
		Status: http.StatusNotFound,
		Fields: map[string][]string{resource: {"not found"}},
	}
}

// Forbidden reports that the viewer does not own the target
func Forbidden(message string) *Error {
	return &Error{
		Kind:    KindForbidden,
		Status:  http.StatusForbidden,
		Message: message,
	}
}

// Unauthorized reports missing or invalid credentials
func Unauthorized(message string) *Error {
	return &Error{
		Kind:    KindUnauthorized,
		Status:  http.StatusUnauthorized,
		Message: message,
	}
}

// KindOf returns the Kind of err, or KindInternal if err is not an *Error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err is an *Error of kind k
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
