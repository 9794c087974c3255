// Package errors provides structured, code-carrying errors for dotstow.
// Codes give tests something stable to assert on and let the CLI map
// failures to exit codes without string matching.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies an error category.
type ErrorCode string

const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Package errors
	ErrPackNotFound  ErrorCode = "PACK_NOT_FOUND"
	ErrSourceMissing ErrorCode = "SOURCE_MISSING"

	// Conflict and deployment errors
	ErrConflictsFound ErrorCode = "CONFLICTS_FOUND"
	ErrStowFailed     ErrorCode = "STOW_FAILED"
	ErrResolvePartial ErrorCode = "RESOLVE_PARTIAL"

	// Backup errors
	ErrBackupCreate  ErrorCode = "BACKUP_CREATE"
	ErrBackupPartial ErrorCode = "BACKUP_PARTIAL"

	// Filesystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// DotstowError is a structured error with a code and optional details.
type DotstowError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface.
func (e *DotstowError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface.
func (e *DotstowError) Unwrap() error {
	return e.Wrapped
}

// Is matches two DotstowErrors by code.
func (e *DotstowError) Is(target error) bool {
	var targetErr *DotstowError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DotstowError with the given code and message.
func New(code ErrorCode, message string) *DotstowError {
	return &DotstowError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DotstowError with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *DotstowError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error. Returns nil when err is nil.
func Wrap(err error, code ErrorCode, message string) *DotstowError {
	if err == nil {
		return nil
	}
	return &DotstowError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DotstowError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail attaches a detail to the error and returns it for chaining.
func (e *DotstowError) WithDetail(key string, value interface{}) *DotstowError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// CodeOf extracts the code of err, or ErrUnknown for foreign errors.
func CodeOf(err error) ErrorCode {
	var de *DotstowError
	if errors.As(err, &de) {
		return de.Code
	}
	return ErrUnknown
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
