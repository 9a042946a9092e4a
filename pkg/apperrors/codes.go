package apperrors

// ErrorCode identifies an error kind in API responses.
type ErrorCode string

const (
	// System errors
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

	// Posting lifecycle codes
	CodeAlreadyActive   ErrorCode = "ALREADY_ACTIVE"
	CodeAlreadyInactive ErrorCode = "ALREADY_INACTIVE"
	CodeExpired         ErrorCode = "EXPIRED"

	// Payment collaborator codes
	CodeInvalidSignature ErrorCode = "INVALID_SIGNATURE"
)
