// Package domainerrors defines coded errors for the domain layer.
//
// Services and entities return these so transport layers can map failures to
// status codes without string matching. Stores return pkg/platform/sentinel
// errors instead; services translate them into coded errors at the boundary.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain failure.
type Code string

const (
	// CodeValidation marks input that failed a field constraint. Always
	// detected before any persistence write.
	CodeValidation Code = "validation_error"

	// CodeBadRequest marks a malformed or undecodable request.
	CodeBadRequest Code = "bad_request"

	// CodeNotFound marks a missing record.
	CodeNotFound Code = "not_found"

	// CodeConflict marks duplicate creation and version conflicts. The caller
	// must re-load and re-apply; the service never retries on its behalf.
	CodeConflict Code = "conflict"

	// CodeDataIntegrity marks a stored row that failed read-path
	// re-validation. Fatal for that record, never auto-corrected.
	CodeDataIntegrity Code = "data_integrity"

	// CodeInvariantViolation marks an entity invariant broken by internal
	// misuse rather than caller input.
	CodeInvariantViolation Code = "invariant_violation"

	// CodeInternal marks unexpected infrastructure failures.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error, optionally wrapping a cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New constructs a coded error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf constructs a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error, keeping the cause
// reachable through errors.Is/As.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// Is is an alias for HasCode kept for call-site readability.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the code carried by err, or CodeInternal when err carries none.
func CodeOf(err error) Code {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code
	}
	return CodeInternal
}
