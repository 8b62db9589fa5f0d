package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType defines the category of the error
type ErrorType string

const (
	ErrorTypeValidation       ErrorType = "VALIDATION_ERROR"
	ErrorTypeConfiguration    ErrorType = "CONFIGURATION_ERROR"
	ErrorTypeModelUnavailable ErrorType = "MODEL_UNAVAILABLE"
	ErrorTypeMalformedOutput  ErrorType = "MALFORMED_INGREDIENT_OUTPUT"
	ErrorTypeInternal         ErrorType = "INTERNAL_ERROR"
)

// AppError represents a structured error for the application
type AppError struct {
	Type          ErrorType `json:"type"`
	Message       string    `json:"message"`
	StatusCode    int       `json:"statusCode"`
	ErrorCode     string    `json:"errorCode"`
	IsOperational bool      `json:"isOperational"`
	Recovery      string    `json:"recoverySuggestion,omitempty"`
	Err           error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Code returns the application-specific error code
func (e *AppError) Code() string {
	return e.ErrorCode
}

// RecoverySuggestion returns the suggestion on how to recover from the error
func (e *AppError) RecoverySuggestion() string {
	return e.Recovery
}

// permanentModelFailures are model error codes that repeat on every attempt.
var permanentModelFailures = map[string]bool{
	"AUTHENTICATION_FAILED": true,
	"CLIENT_ERROR":          true,
	"CANCELED":              true,
}

// IsRetryable reports whether a caller could reasonably try the same request again.
// Nothing in this module retries on its own; the flag is surfaced to clients.
func (e *AppError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeModelUnavailable:
		return !permanentModelFailures[e.ErrorCode]
	default:
		return false
	}
}

// As returns the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsType reports whether err's chain holds an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	appErr, ok := As(err)
	return ok && appErr.Type == t
}

// NewValidationError creates a new validation error (400)
func NewValidationError(message string, errorCode string, suggestion string) *AppError {
	return &AppError{
		Type:          ErrorTypeValidation,
		Message:       message,
		StatusCode:    http.StatusBadRequest,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      suggestion,
	}
}

// NewConfigurationError creates a configuration error. These are fatal at startup.
func NewConfigurationError(message string, errorCode string) *AppError {
	return &AppError{
		Type:          ErrorTypeConfiguration,
		Message:       message,
		StatusCode:    http.StatusInternalServerError,
		ErrorCode:     errorCode,
		IsOperational: false,
		Recovery:      "Set the missing value in the environment, .env or config.yaml and restart.",
	}
}

// NewModelUnavailableError creates an error for a failed model call (502).
// Rate limited calls carry 429 so clients can back off.
func NewModelUnavailableError(message string, errorCode string, err error) *AppError {
	status := http.StatusBadGateway
	if errorCode == "RATE_LIMIT" {
		status = http.StatusTooManyRequests
	}
	return &AppError{
		Type:          ErrorTypeModelUnavailable,
		Message:       message,
		StatusCode:    status,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      "The model service could not be reached. Wait a moment and try again.",
		Err:           err,
	}
}

// NewMalformedOutputError creates an error for model output that does not fit the ingredient shape (422).
func NewMalformedOutputError(message string, errorCode string, err error) *AppError {
	return &AppError{
		Type:          ErrorTypeMalformedOutput,
		Message:       message,
		StatusCode:    http.StatusUnprocessableEntity,
		ErrorCode:     errorCode,
		IsOperational: true,
		Err:           err,
	}
}

// NewInternalError creates a new internal error (500)
func NewInternalError(message string, errorCode string, err error) *AppError {
	return &AppError{
		Type:          ErrorTypeInternal,
		Message:       message,
		StatusCode:    http.StatusInternalServerError,
		ErrorCode:     errorCode,
		IsOperational: false,
		Err:           err,
	}
}
