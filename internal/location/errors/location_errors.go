package locationerrors

import (
	"net/http"

	"go-ems/internal/shared/apperror"
)

var (
	ErrStateNotFound = apperror.New(
		apperror.CodeNotFound,
		"State not found",
		http.StatusNotFound,
	)
	ErrStateCodeExists = &apperror.AppError{
		Code:       apperror.CodeConflict,
		Message:    "State code already exists",
		HTTPStatus: http.StatusConflict,
		Field:      "Code",
	}
	ErrCityExists = &apperror.AppError{
		Code:       apperror.CodeConflict,
		Message:    "City already exists in this state",
		HTTPStatus: http.StatusConflict,
		Field:      "Name",
	}
)
