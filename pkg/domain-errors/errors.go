// Package domainerrors provides the structured failure results used across
// the domain and service layers. Business-rule violations are returned as
// values carrying a Code and a human-readable message; only programmer errors
// and infrastructure failures propagate as plain errors.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain failure. Handlers map codes to HTTP statuses;
// services use them to decide whether a failure is the caller's fault.
type Code string

const (
	// CodeInvalidInput marks field-level validation failures (empty ID, quantity <= 0).
	CodeInvalidInput Code = "invalid_input"
	// CodeInvariantViolation marks business-rule violations such as illegal
	// status transitions.
	CodeInvariantViolation Code = "invariant_violation"
	// CodeCapacityExceeded marks registrations or promotions that would push an
	// event past its capacity, and pass reservations past inventory.
	CodeCapacityExceeded Code = "capacity_exceeded"
	// CodeConflict marks duplicate entries (already registered, already waiting).
	CodeConflict Code = "conflict"
	// CodeNotFound marks a missing event, registration, pass, or badge.
	CodeNotFound Code = "not_found"
	// CodeTimeout marks operations aborted by context cancellation or deadline.
	CodeTimeout Code = "timeout"
	// CodeUnavailable marks a dependency that is temporarily unreachable.
	CodeUnavailable Code = "unavailable"
	// CodeInternal marks unexpected failures surfaced to callers generically.
	CodeInternal Code = "internal"
)

// Error is a structured domain failure.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a domain error with the given code and message.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf creates a domain error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap annotates an underlying error with a domain code and message while
// keeping the cause reachable through errors.Is/As.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	for errors.As(err, &de) {
		if de.Code == code {
			return true
		}
		err = de.cause
		if err == nil {
			break
		}
	}
	return false
}

// CodeOf returns the outermost domain code, or CodeInternal for plain errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the outermost domain message, or a generic one for plain
// errors so infrastructure details never leak to clients.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal error"
}

// ToHTTPStatus maps a domain code to the status handlers should return.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeInvariantViolation, CodeCapacityExceeded, CodeConflict:
		return http.StatusConflict
	case CodeNotFound:
		return http.StatusNotFound
	case CodeTimeout:
		return http.StatusGatewayTimeout
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
