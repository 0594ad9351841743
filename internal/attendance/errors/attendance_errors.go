package attendanceerrors

import (
	"net/http"

	"go-attendance/internal/shared/apperror"
)

var (
	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attendance record not found",
		http.StatusNotFound,
	)
	ErrDuplicateAttendance = apperror.New(
		apperror.CodeConflict,
		"An attendance record already exists for this employee and date",
		http.StatusConflict,
	)
	ErrInvalidMonthFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Month must be in YYYY-MM format",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Date must be in YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Status must be one of PRESENT, LATE, ABSENT, ON_LEAVE",
		http.StatusBadRequest,
	)
	ErrNotOwnRecord = apperror.New(
		apperror.CodeForbidden,
		"You are not authorized to access this resource",
		http.StatusForbidden,
	)
	ErrSelfAttendance = apperror.New(
		apperror.CodeForbidden,
		"You cannot record your own attendance",
		http.StatusForbidden,
	)
)
