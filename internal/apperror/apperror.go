// Package apperror defines the domain error taxonomy shared by every layer.
//
// The service and repository layers return these errors; only the HTTP layer
// (internal/handler) knows how they map to status codes.
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("validation failed")
	ErrDataCorruption = errors.New("data corruption")
	ErrStore          = errors.New("store failure")
	ErrRouteNotFound  = errors.New("route not found")
)

type AppError struct {
	Err     error  // sentinel this error matches with errors.Is
	Message string // Human-readable error message, safe to show to clients
	Field   string // Optional: field causing the error
	cause   error  // underlying failure, logged but never shown
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap exposes both the sentinel and the underlying cause, so
// errors.Is(err, ErrStore) and errors.Is(err, sql.ErrConnDone) both work.
func (e *AppError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.Err, e.cause}
	}
	return []error{e.Err}
}

func NotFound(resource string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// DataCorruption reports a stored value that can no longer be decoded.
func DataCorruption(resource string, cause error) *AppError {
	return &AppError{
		Err:     ErrDataCorruption,
		Message: fmt.Sprintf("%s data is corrupted", resource),
		cause:   cause,
	}
}

// Store wraps an underlying persistence failure. op names the operation,
// e.g. "inserting profile".
func Store(op string, cause error) *AppError {
	return &AppError{
		Err:     ErrStore,
		Message: op,
		cause:   cause,
	}
}

// Violation is one failed rule for one field.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violation found in a single request,
// in field declaration order.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ValidationFailed builds a ValidationError holding a single violation.
func ValidationFailed(field, message string) *ValidationError {
	return &ValidationError{Violations: []Violation{{Field: field, Message: message}}}
}
