// Package errors carries coded application errors shared by the stores and services.
package errors

import (
	"errors"
	"fmt"
)

// Code categorizes an error so callers can branch without string matching
type Code string

const (
	CodeUnknown         Code = "unknown"
	CodeInvalidArgument Code = "invalid_argument"
	CodeNotFound        Code = "not_found"
	CodeAlreadyExists   Code = "already_exists"

	// CodeConflict is returned when an optimistic write lost a race
	CodeConflict Code = "conflict"

	CodeInternal    Code = "internal"
	CodeUnavailable Code = "unavailable"
)

// Error is an application error with a code, an optional cause and metadata
type Error struct {
	Code    Code
	Message string
	Cause   error
	Meta    map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta attaches a key/value pair and returns the same error for chaining
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates an error with the given code
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with the given code and a formatted message
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap adds context to err. Codes and metadata of wrapped application errors survive.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return &Error{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(appErr.Meta),
		}
	}

	return &Error{Code: CodeUnknown, Message: message, Cause: err}
}

// Wrapf wraps err with a formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps err and overrides its code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

func NotFound(message string) *Error { return New(CodeNotFound, message) }

func NotFoundf(format string, args ...any) *Error { return Newf(CodeNotFound, format, args...) }

func InvalidArgument(message string) *Error { return New(CodeInvalidArgument, message) }

func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

func Conflictf(format string, args ...any) *Error { return Newf(CodeConflict, format, args...) }

func Internal(message string) *Error { return New(CodeInternal, message) }

func Internalf(format string, args ...any) *Error { return Newf(CodeInternal, format, args...) }

func Unavailablef(format string, args ...any) *Error {
	return Newf(CodeUnavailable, format, args...)
}

// Is reports whether err carries the given code anywhere in its chain
func Is(err error, code Code) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func IsNotFound(err error) bool        { return Is(err, CodeNotFound) }
func IsInvalidArgument(err error) bool { return Is(err, CodeInvalidArgument) }
func IsAlreadyExists(err error) bool   { return Is(err, CodeAlreadyExists) }
func IsConflict(err error) bool        { return Is(err, CodeConflict) }

// GetCode returns the code of err, or CodeUnknown for foreign errors
func GetCode(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetMeta returns the metadata of err, if any
func GetMeta(err error) map[string]any {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Meta
	}
	return nil
}

func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
