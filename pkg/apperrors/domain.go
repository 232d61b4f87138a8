package apperrors

import (
	"net/http"
)

// Factories and predeclared variables for domain errors shared across
// services. One-off errors stay local to their service.

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound and
// friends) into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a unique-key violation into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// --- Auth ---

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
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
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)

// ErrRoleNotSelfService rejects registration with an elevated role.
var ErrRoleNotSelfService = New(
	CodeForbidden,
	"auth",
	"This role cannot be self-assigned at registration",
	http.StatusForbidden,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Subscriptions & quotas ---
// Denial reasons are distinct codes so clients can react to each without
// parsing messages. NO_ACTIVE_SUBSCRIPTION is 402, ceilings are 403.

var ErrNoActiveSubscription = New(
	CodeNoActiveSubscription,
	"subscription",
	"No active subscription",
	http.StatusPaymentRequired,
)

var ErrQuotaExceeded = New(
	CodeQuotaExceeded,
	"subscription",
	"Letter quota for the current plan has been exhausted",
	http.StatusForbidden,
)

var ErrAudioQuotaExceeded = New(
	CodeAudioQuotaExceeded,
	"subscription",
	"Audio-minute quota for the current plan has been exhausted",
	http.StatusForbidden,
)

var ErrMaxDreamsReached = New(
	CodeMaxDreamsReached,
	"subscription",
	"Maximum dream count for the current plan has been reached",
	http.StatusForbidden,
)

var ErrPlanNotAvailable = New(
	CodeInvalidOperation,
	"subscription",
	"Plan is inactive or does not exist",
	http.StatusBadRequest,
)

// --- Payments ---

var ErrPaymentSignature = New(
	CodeForbidden,
	"payment",
	"Webhook signature verification failed",
	http.StatusBadRequest,
)

var ErrPaymentProvider = New(
	CodeExternalServiceError,
	"payment",
	"Payment provider error",
	http.StatusServiceUnavailable,
)

// --- Messaging ---

// ErrInterpreterNotAssigned guards messaging and chat: both read and write
// paths are closed until an interpreter is assigned.
var ErrInterpreterNotAssigned = New(
	CodeInvalidOperation,
	"messaging",
	"Messaging is unavailable until an interpreter is assigned",
	http.StatusForbidden,
)

var ErrCannotDeleteMessage = New(
	CodeForbidden,
	"messaging",
	"You do not have permission to delete this message",
	http.StatusForbidden,
)
