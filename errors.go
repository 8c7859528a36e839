package lawdoc

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are meant to be mapped onto transport-level codes (HTTP status,
// CLI exit messages) at the edges; domain code only ever deals in these.
const (
	EINVALID       = "invalid"       // validation failed (bad arguments, unknown tool)
	ENOTFOUND      = "not_found"     // entity does not exist
	EINTERNAL      = "internal"      // internal error (bug)
	ERATELIMIT     = "rate_limit"    // external model rate limited us; caller may back off and retry
	ETIMEOUT       = "timeout"       // external call exceeded its deadline
	EUNAVAILABLE   = "unavailable"   // transport/network failure talking to an external service
	EUNPROCESSABLE = "unprocessable" // input could not be parsed at all
)

// Error represents an application-specific error. Errors can be unwrapped to
// retrieve the code and message for reporting, while arbitrary wrapped errors
// are treated as internal.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("lawdoc error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode returns the code of the root error, if available.
// Otherwise returns EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	}
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the human-readable message of the error, if available.
// Otherwise returns a generic error message.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	}
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
