package apperrors

import (
	"net/http"
)

// Factories for wrapping repository errors.

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound and
// friends) into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidState marks an operation that is not valid for the entity's
// current lifecycle state, e.g. feedback before resolution.
func ErrInvalidState(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// Predeclared errors for the frequent static cases.

var ErrComplaintNotFound = New(
	CodeNotFound,
	"complaint",
	"Complaint not found",
	http.StatusNotFound,
)

var ErrComplaintAccessDenied = New(
	CodeForbidden,
	"complaint",
	"Access denied",
	http.StatusForbidden,
)

var ErrAdminOnly = New(
	CodeForbidden,
	"auth",
	"Admin only",
	http.StatusForbidden,
)

var ErrInvalidAgent = New(
	CodeValidationFailed,
	"complaint",
	"Invalid agent",
	http.StatusBadRequest,
)

var ErrFeedbackNotAllowed = New(
	CodeInvalidStatus,
	"complaint",
	"Feedback only after resolution",
	http.StatusBadRequest,
)

var ErrSuggestionTextRequired = New(
	CodeValidationFailed,
	"complaint",
	"Suggestion text required",
	http.StatusBadRequest,
)

var ErrNotificationNotFound = New(
	CodeNotFound,
	"notification",
	"Notification not found",
	http.StatusNotFound,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"User already exists with this email",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password must be at least 6 characters",
	http.StatusBadRequest,
)

// ErrPendingApproval blocks unapproved agents from logging in.
var ErrPendingApproval = New(
	CodePendingApproval,
	"auth",
	"Your account is pending approval by Admin",
	http.StatusForbidden,
)

// ErrRoleMismatch is a UX check, not a security boundary: the stored
// role is authoritative, the caller-declared one must simply agree.
var ErrRoleMismatch = New(
	CodeRoleMismatch,
	"auth",
	"Account role does not match selected role",
	http.StatusForbidden,
)

var ErrFileTooLarge = New(
	CodeValidationFailed,
	"upload",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"upload",
	"Invalid file type. Allowed: images, PDF, DOC",
	http.StatusUnsupportedMediaType,
)
