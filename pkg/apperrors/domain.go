package apperrors

import (
	"net/http"
)

/*
Factories and predefined variables for posting-domain errors.
The lifecycle controller returns these so handlers can respond with
specific, actionable messages instead of generic failures.
*/

// ErrNotFound converts a repository not-found (e.g. gorm.ErrRecordNotFound)
// into a 404. Used for both slug and edit-token lookups; the message never
// distinguishes a wrong token from a deleted posting.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "posting", "Job posting not found", http.StatusNotFound)
}

// ErrRetrievalFailed wraps a store read error. Opaque to the caller beyond
// "try again".
func ErrRetrievalFailed(err error) *AppError {
	return Wrap(err, CodeDatabaseError, "posting", "Failed to load job posting", http.StatusInternalServerError)
}

// ErrPersistenceFailed wraps a store write error.
func ErrPersistenceFailed(err error) *AppError {
	return Wrap(err, CodeDatabaseError, "posting", "Failed to update job posting", http.StatusInternalServerError)
}

// ErrPaymentFailed wraps an error from the hosted checkout provider.
func ErrPaymentFailed(err error) *AppError {
	return Wrap(err, CodeExternalServiceError, "payment", "Payment provider request failed", http.StatusBadGateway)
}

// Lifecycle precondition violations. Static, no wrapped cause.

var ErrAlreadyActive = New(
	CodeAlreadyActive,
	"posting",
	"Job posting is already active",
	http.StatusConflict,
)

var ErrAlreadyInactive = New(
	CodeAlreadyInactive,
	"posting",
	"Job posting is already inactive",
	http.StatusConflict,
)

// ErrPostingExpired rejects update/reactivate after the expiry timestamp.
// Renewal happens out-of-band, hence the support pointer in the message.
var ErrPostingExpired = New(
	CodeExpired,
	"posting",
	"Job posting has expired, contact support to renew it",
	http.StatusGone,
)

// ErrInvalidWebhookSignature rejects payment callbacks whose signature does
// not verify.
var ErrInvalidWebhookSignature = New(
	CodeInvalidSignature,
	"payment",
	"Webhook signature verification failed",
	http.StatusBadRequest,
)

// ErrAlertNotFound is returned for unknown unsubscribe tokens.
var ErrAlertNotFound = New(
	CodeNotFound,
	"alert",
	"Job alert subscription not found",
	http.StatusNotFound,
)
