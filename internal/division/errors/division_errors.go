package divisionerrors

import (
	"net/http"

	"go-ems/internal/shared/apperror"
)

var (
	ErrDivisionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Division not found",
		http.StatusNotFound,
	)
	ErrDivisionNameExists = &apperror.AppError{
		Code:       apperror.CodeConflict,
		Message:    "Division name already exists",
		HTTPStatus: http.StatusConflict,
		Field:      "Name",
	}
	ErrDivisionInUse = apperror.New(
		apperror.CodeConflict,
		"Division is referenced by assignment history",
		http.StatusConflict,
	)
)
