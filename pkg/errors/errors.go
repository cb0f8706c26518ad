// Package errors provides structured error types for sandboxer.
//
// Every failure that stops an example from being exported carries a
// machine-readable [Code]. The CLI and the HTTP API report the code next to a
// human readable message, and the button adapter uses it to decide which
// visual state to show.
//
// # Error Codes
//
// Export failures:
//   - MISSING_SOURCE: the story has no captured source text
//   - MISSING_CONFIGURATION: required dependencies or entry boilerplate absent
//   - UNRESOLVED_RELATIVE_IMPORT: a relative import survived rewriting
//
// Ambient failures:
//   - INVALID_*: input validation failures
//   - NOT_FOUND / FILE_NOT_FOUND: resource not found
//   - INTERNAL_ERROR: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingSource, "no source for story %s", name)
//	if errors.Is(err, errors.ErrCodeMissingSource) {
//	    // leave the button in its error state
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Export failures
	ErrCodeMissingSource            Code = "MISSING_SOURCE"
	ErrCodeMissingConfiguration     Code = "MISSING_CONFIGURATION"
	ErrCodeUnresolvedRelativeImport Code = "UNRESOLVED_RELATIVE_IMPORT"

	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidPackage Code = "INVALID_PACKAGE"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidPath    Code = "INVALID_PATH"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsExportFailure reports whether code is one of the failure kinds an
// export can end in, as opposed to an ambient error.
func IsExportFailure(code Code) bool {
	switch code {
	case ErrCodeMissingSource, ErrCodeMissingConfiguration, ErrCodeUnresolvedRelativeImport:
		return true
	}
	return false
}
