package apperror

import "net/http"

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	// ErrForbidden is deliberately generic: callers never learn which rule denied them.
	ErrForbidden = New(
		CodeForbidden,
		"Access denied",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)

	ErrTooManyRequests = New(
		CodeRateLimited,
		"Too many requests",
		http.StatusTooManyRequests,
	)
)

// RequiredField reports a missing mandatory input.
func RequiredField(field string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    field + " is required",
		HTTPStatus: http.StatusBadRequest,
		Field:      field,
	}
}

// InvalidField reports a present but malformed input.
func InvalidField(field string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    field + " is invalid",
		HTTPStatus: http.StatusBadRequest,
		Field:      field,
	}
}

// FieldError reports a field-specific rule violation with a custom message.
func FieldError(field, message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Field:      field,
	}
}
