// Package errors defines common error types for the application.
package errors

import (
	"errors"
	"fmt"
)

// Error codes for the application.
const (
	CodeUnknown              = "UNKNOWN_ERROR"
	CodeUnrecognizedDocument = "UNRECOGNIZED_DOCUMENT"
	CodeRegionNotFound       = "REGION_NOT_FOUND"
	CodeParseError           = "PARSE_ERROR"
	CodeInvalidInput         = "INVALID_INPUT"
	CodeConfigError          = "CONFIG_ERROR"
	CodeDatabaseError        = "DATABASE_ERROR"
	CodeUploadError          = "UPLOAD_ERROR"
	CodeWriteError           = "WRITE_ERROR"
)

// AppError is an error with an application-level code.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError.
func New(code string, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new AppError with a formatted message.
func Newf(code string, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with an AppError.
func Wrap(code string, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error instances.
var (
	ErrUnrecognizedDocument = New(CodeUnrecognizedDocument, "no region rows recognized")
	ErrRegionNotFound       = New(CodeRegionNotFound, "region not found")
	ErrParseError           = New(CodeParseError, "parse error")
	ErrInvalidInput         = New(CodeInvalidInput, "invalid input")
	ErrConfigError          = New(CodeConfigError, "configuration error")
	ErrDatabaseError        = New(CodeDatabaseError, "database error")
	ErrUploadError          = New(CodeUploadError, "upload error")
	ErrWriteError           = New(CodeWriteError, "write error")
)

// IsUnrecognizedDocument checks if the error marks a document with no
// recognizable region rows.
func IsUnrecognizedDocument(err error) bool {
	return errors.Is(err, ErrUnrecognizedDocument)
}

// IsRegionNotFound checks if the error marks a missing region.
func IsRegionNotFound(err error) bool {
	return errors.Is(err, ErrRegionNotFound)
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetErrorMessage extracts the error message from an error.
func GetErrorMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
