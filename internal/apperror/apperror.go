// Package apperror defines the domain errors shared by the repository, service
// and handler layers.
//
// Lower layers return these; only the handler layer turns them into HTTP status
// codes (see handler.writeError).
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
)

// AppError carries a sentinel (for errors.Is) plus a message that is safe to
// show to API clients.
type AppError struct {
	Err     error  // one of the sentinels above
	Message string // client-facing message
	Field   string // optional: request field that caused the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports that resource with the given key does not exist.
// The key is formatted with %v so both numeric ids and setting keys work.
func NotFound(resource string, key any) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %v", resource, key),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// MissingFields builds the validation error used when required request
// fields are absent, e.g. "missing required fields: title, date".
func MissingFields(fields ...string) *AppError {
	field := ""
	if len(fields) == 1 {
		field = fields[0]
	}
	return &AppError{
		Err:     ErrValidation,
		Message: "missing required fields: " + strings.Join(fields, ", "),
		Field:   field,
	}
}

// Unauthorized is returned for a wrong admin password or a missing/invalid
// bearer token. HTTP handlers map this to 401.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}
