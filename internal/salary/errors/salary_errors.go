package salaryerrors

import "go-ems/internal/shared/apperror"

var (
	ErrInvalidRange = apperror.FieldError(
		"Max Salary",
		"Max Salary must be greater than or equal to Min Salary",
	)
	ErrNegativeBound = apperror.FieldError(
		"Min Salary",
		"Min Salary must not be negative",
	)
	ErrNonPositivePercentage = apperror.FieldError(
		"Percentage",
		"Percentage must be greater than zero",
	)
)
