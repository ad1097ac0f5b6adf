package usererrors

import (
	"net/http"

	"go-ems/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrUsernameExists = &apperror.AppError{
		Code:       apperror.CodeConflict,
		Message:    "Username is already taken",
		HTTPStatus: http.StatusConflict,
		Field:      "Username",
	}

	ErrEmployeeAlreadyLinked = &apperror.AppError{
		Code:       apperror.CodeConflict,
		Message:    "Employee already has an account",
		HTTPStatus: http.StatusConflict,
		Field:      "Employee ID",
	}

	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)

	ErrInvalidRole = apperror.FieldError(
		"Role",
		"Role must be HR_ADMIN or EMPLOYEE",
	)

	ErrInvalidUserID = apperror.InvalidField("User ID")

	ErrWrongPassword = apperror.FieldError(
		"Current Password",
		"Current password is incorrect",
	)

	ErrSamePassword = apperror.FieldError(
		"New Password",
		"New password must differ from the current one",
	)

	ErrSelfDeactivation = apperror.New(
		apperror.CodeInvalidState,
		"You cannot deactivate your own account",
		http.StatusConflict,
	)
)
