// Package apperrors defines the error taxonomy the HTTP layer turns into
// JSON envelopes.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ValidationError      ErrorType = "VALIDATION_ERROR"
	StoreValidationError ErrorType = "STORE_VALIDATION_ERROR"
	BadRequestError      ErrorType = "BAD_REQUEST"
	DatabaseError        ErrorType = "DATABASE_ERROR"
	ServerError          ErrorType = "SERVER_ERROR"
)

// AppError is a structured error carrying the status and user-facing message.
// Summary, when set, is rendered as the "error" field of the envelope.
type AppError struct {
	Type       ErrorType `json:"type"`
	Summary    string    `json:"error,omitempty"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Raw
}

func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: statusFor(errType),
	}
}

// Wrap attaches AppError context to err. It returns nil for a nil err.
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: statusFor(errType),
		Raw:        err,
	}
}

func ValidationFailed(message string, detail string) *AppError {
	return New(ValidationError, message, detail)
}

// StoreValidationFailed reports schema constraint violations as one message.
func StoreValidationFailed(messages []string) *AppError {
	return New(StoreValidationError, strings.Join(messages, ", "), "")
}

func BadRequest(message string) *AppError {
	return New(BadRequestError, message, "")
}

// Database reports a failed store operation. The raw error stays out of the
// response body.
func Database(err error, summary string) *AppError {
	return &AppError{
		Type:       DatabaseError,
		Summary:    summary,
		Message:    summary,
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

func Internal(err error, message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

// As extracts an *AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func statusFor(errType ErrorType) int {
	switch errType {
	case ValidationError, StoreValidationError, BadRequestError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
