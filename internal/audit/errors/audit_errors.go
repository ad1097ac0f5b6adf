package auditerrors

import (
	"net/http"

	"go-ems/internal/shared/apperror"
)

var (
	ErrActionRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Action is required",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"End date must not be before start date",
		http.StatusBadRequest,
	)
)
