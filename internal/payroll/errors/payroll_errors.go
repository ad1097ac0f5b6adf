package payrollerrors

import (
	"net/http"

	"go-ems/internal/shared/apperror"
)

var (
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payroll record not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrInvalidDateRange = apperror.FieldError(
		"End Date",
		"End Date must not be before Start Date",
	)
	ErrInvalidPeriod = apperror.FieldError(
		"Period End",
		"Period End must not be before Period Start",
	)
	ErrInvalidPayrollID = apperror.InvalidField("Payroll ID")
)

// ErrNegativeAmount names the amount field that went below zero.
func ErrNegativeAmount(field string) *apperror.AppError {
	return apperror.FieldError(field, field+" must not be negative")
}
