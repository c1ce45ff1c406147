// Package errors defines the coded errors ihmgraph returns across package
// boundaries.
//
// An [*Error] pairs a [Code] with a message and an optional cause. The code
// is what callers branch on; the cause stays reachable through the standard
// errors.Is and errors.As.
//
//	if errors.Is(err, errors.ErrCodeInvalidRange) {
//	    ...
//	}
//
// Codes are grouped by prefix: INVALID_* for bad files, values and
// arguments, *NOT_FOUND for missing records and files, and NETWORK_ERROR
// or RATE_LIMITED for remote lookups.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Code is a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidRange  Code = "INVALID_RANGE"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// ErrCodeGraphCycle marks a dataset that is its own ancestor.
	ErrCodeGraphCycle Code = "GRAPH_CYCLE"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	// ErrCodeUnsupported is returned for a feature the current setup lacks,
	// such as a cache backend that cannot be cleared.
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is an error with a code, a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error renders "CODE: message: cause", leaving out empty parts.
func (e *Error) Error() string {
	return string(e.Code) + ": " + e.describe()
}

// describe joins the message and the cause.
func (e *Error) describe() string {
	parts := make([]string, 0, 2)
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is [New] with a cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// GetCode returns the code of the first [*Error] in err's tree. Without
// one, a [*RateLimitedError] counts as ErrCodeRateLimited; other errors
// give "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	if errors.As(err, new(*RateLimitedError)) {
		return ErrCodeRateLimited
	}
	return ""
}

// Is reports whether [GetCode] of err is code.
func Is(err error, code Code) bool {
	return code != "" && GetCode(err) == code
}

// UserMessage returns err for display on a terminal: coded errors lose
// their code prefix, everything else is printed as is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.describe()
	}
	return err.Error()
}

// RateLimitedError is returned when a remote service answers 429.
type RateLimitedError struct {
	// Service names the host that refused the request.
	Service string
	// RetryAfter is the wait the service asked for, or zero.
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	msg := "rate limited"
	if e.Service != "" {
		msg += " by " + e.Service
	}
	if e.RetryAfter > 0 {
		msg += fmt.Sprintf(": retry after %s", e.RetryAfter)
	}
	return msg
}
