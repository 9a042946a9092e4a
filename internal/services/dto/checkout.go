package dto

// CreateCheckoutRequest starts the hosted checkout handoff for a draft.
type CreateCheckoutRequest struct {
	PostingID string `json:"posting_id" validate:"required,uuid"`
	Plan      string `json:"plan" validate:"required,oneof=standard featured"`
}

// CheckoutSessionResponse points the client at the provider's hosted page.
type CheckoutSessionResponse struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

// PaymentCompletedEvent is the asynchronous "payment completed" callback
// payload extracted from the provider webhook.
type PaymentCompletedEvent struct {
	PostingID        string
	Plan             string
	PaymentReference string
}
