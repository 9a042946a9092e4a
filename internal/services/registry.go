package services

import (
	"farmwork_backend/internal/clock"
	"farmwork_backend/internal/email"
	"farmwork_backend/internal/payments"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	PostingService PostingService
	ListingService ListingService
	AlertService   AlertService
	EmailService   *EmailService
	StripeService  *payments.StripeService
	EmailProvider  email.Provider
	Clock          clock.Clock
}
