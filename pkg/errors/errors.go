// Package errors provides structured error types for jsoninvert.
//
// This package defines error codes and types that enable:
//   - Consistent error handling between the library and the CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// # Categories
//
// Every code belongs to one of four categories reported to users:
// not found, parse, shape, and unexpected. Use [Category] to map an
// error to its category.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidShape, "top-level value is %s", kind)
//	if errors.Is(err, errors.ErrCodeInvalidShape) {
//	    // Handle shape error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "write %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeInvalidJSON     Code = "INVALID_JSON"
	ErrCodeInvalidShape    Code = "INVALID_SHAPE"
	ErrCodeInvalidEncoding Code = "INVALID_ENCODING"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Kind is the user-facing failure category of an error.
type Kind string

// Failure categories.
const (
	KindNotFound   Kind = "not_found"
	KindParse      Kind = "parse"
	KindShape      Kind = "shape"
	KindUnexpected Kind = "unexpected"
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

// Category maps err to its failure category.
// Errors without a code, and codes outside the three input categories,
// are reported as unexpected.
func Category(err error) Kind {
	switch GetCode(err) {
	case ErrCodeFileNotFound:
		return KindNotFound
	case ErrCodeInvalidJSON:
		return KindParse
	case ErrCodeInvalidShape:
		return KindShape
	default:
		return KindUnexpected
	}
}
