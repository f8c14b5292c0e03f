// Package errors defines the typed application error used across the
// analysis pipeline. Every fatal condition is an *AppError carrying a
// Type, a human message, the wrapped cause and a context map with the
// values needed to diagnose it (file path, column name, row index).
package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeLoad       ErrorType = "LOAD"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeDivision   ErrorType = "DIVISION"
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeStorage    ErrorType = "STORAGE"
	ErrTypeRender     ErrorType = "RENDER"
)

// Sentinels for errors.Is matching by type only
var (
	ErrLoad       = &AppError{Type: ErrTypeLoad}
	ErrValidation = &AppError{Type: ErrTypeValidation}
	ErrDivision   = &AppError{Type: ErrTypeDivision}
	ErrConfig     = &AppError{Type: ErrTypeConfig}
	ErrStorage    = &AppError{Type: ErrTypeStorage}
	ErrRender     = &AppError{Type: ErrTypeRender}
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Type, e.Message)
	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, e.Context[k]))
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(parts, ", "))
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches the type sentinels (an AppError with no message and no cause).
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok || t.Message != "" || t.Cause != nil {
		return false
	}
	return e.Type == t.Type
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewLoadError creates an error for a file that could not be turned into a table
func NewLoadError(path, message string, cause error) *AppError {
	return NewAppError(ErrTypeLoad, message, cause).WithContext("path", path)
}

// NewMissingColumnError creates a load error naming the absent column
func NewMissingColumnError(path, column string) *AppError {
	return NewLoadError(path, fmt.Sprintf("required column %q missing from header", column), nil).
		WithContext("column", column)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewDivisionError creates an error for a zero or negative denominator
func NewDivisionError(column string, row int) *AppError {
	return NewAppError(ErrTypeDivision, fmt.Sprintf("non-positive denominator in column %q", column), nil).
		WithContext("column", column).
		WithContext("row", row)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewStorageError creates an error for a failed artifact write
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewRenderError creates an error for a chart renderer failure
func NewRenderError(message string, cause error) *AppError {
	return NewAppError(ErrTypeRender, message, cause)
}

// IsType reports whether err wraps an AppError of the given type
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// TypeOf returns the type of the outermost AppError in err's chain, or "".
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}
