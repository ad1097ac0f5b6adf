package jobtitleerrors

import (
	"net/http"

	"go-ems/internal/shared/apperror"
)

var (
	ErrJobTitleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Job title not found",
		http.StatusNotFound,
	)
	ErrJobTitleExists = &apperror.AppError{
		Code:       apperror.CodeConflict,
		Message:    "Job title already exists",
		HTTPStatus: http.StatusConflict,
		Field:      "Title",
	}
	ErrJobTitleInUse = apperror.New(
		apperror.CodeConflict,
		"Job title is referenced by assignment history",
		http.StatusConflict,
	)
	ErrNegativeBaseSalary = apperror.FieldError("Base Salary", "Base salary must not be negative")
)
