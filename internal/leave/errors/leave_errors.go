package leaveerrors

import (
	"net/http"

	"hris-core/internal/shared/apperror"
)

var (
	ErrInvalidActorID = apperror.New(
		apperror.CodeValidationError,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeValidationError,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeValidationError,
		"invalid leave id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeValidationError,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeValidationError,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeValidationError,
		"year must be a four digit number",
		http.StatusBadRequest,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeValidationError,
		"status must be one of pending, approved, rejected, cancelled",
		http.StatusBadRequest,
	)
	ErrUnknownLeaveType = apperror.New(
		apperror.CodeValidationError,
		"unknown leave type",
		http.StatusBadRequest,
	)
	ErrNegativeDays = apperror.New(
		apperror.CodeValidationError,
		"day counts must not be negative",
		http.StatusBadRequest,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInvalidState,
		"requested days exceed the available leave balance",
		http.StatusUnprocessableEntity,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"leave already exists in overlapping period",
		http.StatusConflict,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid leave status transition",
		http.StatusBadRequest,
	)
	ErrNotPending = apperror.New(
		apperror.CodeInvalidState,
		"only pending leave can be edited",
		http.StatusBadRequest,
	)
	ErrConcurrentTransition = apperror.New(
		apperror.CodeConflict,
		"leave status was changed by another request, reload and retry",
		http.StatusConflict,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeValidationError,
		"rejection_reason is required when rejecting",
		http.StatusBadRequest,
	)
	ErrForbiddenEmployee = apperror.New(
		apperror.CodeForbidden,
		"you can only manage your own leave",
		http.StatusForbidden,
	)
)
