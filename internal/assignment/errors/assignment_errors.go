package assignmenterrors

import (
	"net/http"

	"go-ems/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrDivisionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Division not found",
		http.StatusNotFound,
	)
	ErrJobTitleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Job title not found",
		http.StatusNotFound,
	)
	ErrAlreadyAssigned = apperror.New(
		apperror.CodeConflict,
		"Employee is already assigned there",
		http.StatusConflict,
	)
	ErrStartDateNotAfterCurrent = apperror.New(
		apperror.CodeInvalidState,
		"Start date must be after the current assignment's start date",
		http.StatusUnprocessableEntity,
	)
	ErrEmployeeTerminated = apperror.New(
		apperror.CodeInvalidState,
		"Employee is terminated",
		http.StatusUnprocessableEntity,
	)
)
