package analyticserrors

import (
	"net/http"

	"hris-core/internal/shared/apperror"
)

var (
	ErrInvalidDate = apperror.New(
		apperror.CodeValidationError,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidRange = apperror.New(
		apperror.CodeValidationError,
		"from must be before or equal to",
		http.StatusBadRequest,
	)
	ErrRangeTooLarge = apperror.New(
		apperror.CodeValidationError,
		"range must not exceed 366 days",
		http.StatusBadRequest,
	)
	ErrInvalidBucket = apperror.New(
		apperror.CodeValidationError,
		"bucket must be daily or monthly",
		http.StatusBadRequest,
	)
	ErrInvalidGroupBy = apperror.New(
		apperror.CodeValidationError,
		"group_by must be department",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeValidationError,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrForbiddenScope = apperror.New(
		apperror.CodeForbidden,
		"you can only view your own attendance analytics",
		http.StatusForbidden,
	)
)
