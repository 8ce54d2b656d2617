package apperrors

import (
	"net/http"
)

// =========================================================================
// Factories
// =========================================================================

// ErrInvalidStatus is a 400 for status values outside the allowed set.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// ErrIllegalTransition is a 409 for a valid status the record cannot move to.
func ErrIllegalTransition(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// =========================================================================
// Predefined errors
// =========================================================================

// --- Auth ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid username or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrAuthRequired = New(
	CodeUnauthorized,
	"auth",
	"Authentication required",
	http.StatusUnauthorized,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// ErrUserAlreadyExists is a 400: the signup form reports it next to the e-mail field.
var ErrUserAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"User already exists",
	http.StatusBadRequest,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password must be at least 6 characters",
	http.StatusBadRequest,
)

// --- Users ---

var ErrUserNotFound = New(CodeNotFound, "user", "User not found", http.StatusNotFound)

var ErrHelperNotFound = New(CodeNotFound, "user", "Helper not found", http.StatusNotFound)

// --- Contact requests ---

var ErrContactRequestNotFound = New(CodeNotFound, "contact", "Contact request not found", http.StatusNotFound)

var ErrInvalidPhone = New(
	CodeValidationFailed,
	"validation",
	"Please enter a valid phone number",
	http.StatusBadRequest,
)

// --- Verification ---

var ErrVerificationNotFound = New(CodeNotFound, "verification", "Verification not found", http.StatusNotFound)

var ErrVerificationExists = New(
	CodeConflict,
	"verification",
	"A pending or approved verification already exists",
	http.StatusConflict,
)

var ErrVerificationReviewed = New(
	CodeConflict,
	"verification",
	"Verification has already been reviewed",
	http.StatusConflict,
)

// --- Catalog ---

var ErrServiceNotFound = New(CodeNotFound, "service", "Service not found", http.StatusNotFound)

var ErrBookingNotFound = New(CodeNotFound, "booking", "Booking not found", http.StatusNotFound)

var ErrPaymentNotFound = New(CodeNotFound, "payment", "Payment not found", http.StatusNotFound)

var ErrInvalidPaymentSplit = New(
	CodeValidationFailed,
	"payment",
	"studentAmount and platformAmount must add up to amount",
	http.StatusBadRequest,
)

var ErrReviewExists = New(
	CodeConflict,
	"review",
	"Booking has already been reviewed",
	http.StatusConflict,
)

// --- Applications ---

var ErrApplicationNotFound = New(CodeNotFound, "application", "Application not found", http.StatusNotFound)

// --- Transport ---

var ErrRateLimited = New(
	CodeRateLimited,
	"http",
	"Too many requests, please try again later",
	http.StatusTooManyRequests,
)
