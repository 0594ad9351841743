package leaverequesterrors

import (
	"net/http"

	"go-attendance/internal/shared/apperror"
)

var (
	ErrLeaveRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave request not found",
		http.StatusNotFound,
	)
	ErrNotOwnRequest = apperror.New(
		apperror.CodeForbidden,
		"You are not authorized to access this leave request",
		http.StatusForbidden,
	)
	ErrSelfProcessing = apperror.New(
		apperror.CodeForbidden,
		"You cannot process your own leave request",
		http.StatusForbidden,
	)
	ErrAlreadyProcessed = apperror.New(
		apperror.CodeInvalidState,
		"Leave request has already been processed",
		http.StatusConflict,
	)
	ErrNotEditable = apperror.New(
		apperror.CodeInvalidState,
		"Only pending leave requests can be modified",
		http.StatusConflict,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInsufficientBalance,
		"No paid leaves available",
		http.StatusUnprocessableEntity,
	)
	ErrAttendanceConflict = apperror.New(
		apperror.CodeConflict,
		"An attendance record already exists for the requested date",
		http.StatusConflict,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Date must be in YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrInvalidRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"Leave request ID must be numeric",
		http.StatusBadRequest,
	)
	ErrIDGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Could not allocate a leave request ID",
		http.StatusInternalServerError,
	)
)
