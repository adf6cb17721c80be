package attendanceerrors

import (
	"hris-core/internal/shared/apperror"
	"net/http"
)

var (
	ErrAlreadyClockedIn = apperror.New(
		apperror.CodeConflict,
		"Already clocked in for today",
		http.StatusConflict,
	)
	ErrAlreadyClockedOut = apperror.New(
		apperror.CodeConflict,
		"Already clocked out for today",
		http.StatusConflict,
	)
	ErrClockInNotFound = apperror.New(
		apperror.CodeNotFound,
		"Clock in not found for today",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeValidationError,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeValidationError,
		"Invalid date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidRange = apperror.New(
		apperror.CodeValidationError,
		"Invalid date range, end must not be before start",
		http.StatusBadRequest,
	)
	ErrRangeTooLarge = apperror.New(
		apperror.CodeValidationError,
		"Date range must not exceed 366 days",
		http.StatusBadRequest,
	)
	ErrEmptyImport = apperror.New(
		apperror.CodeValidationError,
		"At least one record is required",
		http.StatusBadRequest,
	)
	ErrForbiddenTimeline = apperror.New(
		apperror.CodeForbidden,
		"You can only view your own attendance",
		http.StatusForbidden,
	)
)

var ErrAbsenteeDateNotPast = apperror.New(
	apperror.CodeValidationError,
	"Absentees can only be marked for past dates",
	http.StatusBadRequest,
)
