package handlers

import (
	"farmwork_backend/internal/config"
	"farmwork_backend/internal/services"
	"farmwork_backend/internal/validator"
)

// AppHandlers bundles every HTTP handler the router mounts.
type AppHandlers struct {
	Posting  *PostingHandler
	Manage   *ManageHandler
	Checkout *CheckoutHandler
	Alert    *AlertHandler
}

func NewAppHandlers(cfg *config.Config, v *validator.Validator, sc *services.ServiceContainer) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Posting:  NewPostingHandler(base, sc.PostingService, sc.ListingService),
		Manage:   NewManageHandler(base, sc.PostingService),
		Checkout: NewCheckoutHandler(base, sc.PostingService, sc.EmailService, sc.StripeService, sc.Clock, cfg.Server.BaseURL),
		Alert:    NewAlertHandler(base, sc.AlertService),
	}
}
