package reporterrors

import "go-ems/internal/shared/apperror"

var (
	ErrInvalidDateRange = apperror.FieldError(
		"End Date",
		"End Date must not be before Start Date",
	)
	ErrInvalidMonth = apperror.FieldError(
		"Month",
		"Month must use the YYYY-MM format",
	)
	ErrInvalidFormat = apperror.FieldError(
		"Format",
		"Format must be json or xlsx",
	)
)
