package employeeerrors

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
	ErrEmployeeAlreadyTerminated = apperror.New(
		apperror.CodeInvalidState,
		"Employee is already terminated",
		http.StatusUnprocessableEntity,
	)

	// Uniqueness violations are validation errors naming the field.
	ErrEmployeeNumberExists = apperror.FieldError(
		"Employee Number",
		"Employee number already exists",
	)
	ErrEmailExists = apperror.FieldError(
		"Email",
		"Email already exists",
	)
	ErrSSNExists = apperror.FieldError(
		"SSN",
		"SSN already exists",
	)

	ErrNegativeSalary   = apperror.FieldError("Salary", "Salary must not be negative")
	ErrInvalidStatus    = apperror.InvalidField("Status")
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
)
