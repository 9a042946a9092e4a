package dto

// CreateAlertRequest subscribes an email address to digest matching.
type CreateAlertRequest struct {
	Email      string   `json:"email" validate:"required,email"`
	State      string   `json:"state" validate:"omitempty,is-us-state"`
	Categories []string `json:"categories" validate:"max=3"`
	Keywords   string   `json:"keywords" validate:"max=200"`
	Frequency  string   `json:"frequency" validate:"omitempty,is-alert-frequency"`

	// Prefs carries optional channel settings, currently max_results to cap
	// the digest size.
	Prefs map[string]interface{} `json:"prefs"`
}

// AlertResponse confirms a subscription without echoing the unsubscribe
// token.
type AlertResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Frequency string `json:"frequency"`
}
