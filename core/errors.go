package core

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific form or struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err *ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// APIError is the normalized form of any non-2xx API response.
// It carries a single human-readable message; raw transport errors
// never cross the service client boundary.
type APIError struct {
	StatusCode int
	Message    string
}

func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{StatusCode: statusCode, Message: message}
}

func (err *APIError) Error() string {
	return err.Message
}

func (err *APIError) NotFound() bool {
	return err.StatusCode == http.StatusNotFound
}

// ErrorMessage extracts the user-facing message from any error coming
// out of a service client. Unexpected errors fall back to fallback.
func ErrorMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) && vErr.Err != nil {
		return vErr.Error()
	}
	if fallback != "" {
		return fallback
	}
	return fmt.Sprintf("unexpected error: %v", err)
}
