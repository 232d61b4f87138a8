package apperrors

// ErrorCode is a machine-readable error identifier returned to clients.
type ErrorCode string

const (
	// System and unknown failures
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Generic business-logic codes
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// Authentication and authorization
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	// Subscription and quota denials. These are expected outcomes,
	// never faults; handlers surface them verbatim in the `code` field.
	CodeNoActiveSubscription ErrorCode = "NO_ACTIVE_SUBSCRIPTION"
	CodeQuotaExceeded        ErrorCode = "QUOTA_EXCEEDED"
	CodeAudioQuotaExceeded   ErrorCode = "AUDIO_QUOTA_EXCEEDED"
	CodeMaxDreamsReached     ErrorCode = "MAX_DREAMS_REACHED"
)
