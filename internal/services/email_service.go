package services

import (
	"fmt"

	"farmwork_backend/internal/email"
	"farmwork_backend/internal/logger"
	"farmwork_backend/internal/models"
	"farmwork_backend/internal/services/dto"
)

// EmailService assembles the transactional messages the core hands to the
// email collaborator. Fire-and-forget: failures are logged, not retried.
type EmailService struct {
	provider email.Provider
	baseURL  string
}

func NewEmailService(provider email.Provider, baseURL string) *EmailService {
	return &EmailService{
		provider: provider,
		baseURL:  baseURL,
	}
}

// SendPostingConfirmation delivers the edit and view links after activation.
// This is the only channel that ever exposes the edit token.
func (s *EmailService) SendPostingConfirmation(posting *models.JobPosting, editToken string) {
	data := email.TemplateData{
		"Title":    posting.Title,
		"Company":  posting.Company,
		"ViewLink": fmt.Sprintf("%s/jobs/%s", s.baseURL, posting.Slug),
		"EditLink": fmt.Sprintf("%s/manage/%s", s.baseURL, editToken),
	}

	msg := &email.Email{
		To:      []string{posting.CompanyEmail},
		Subject: fmt.Sprintf("Your posting is live: %s", posting.Title),
	}

	if err := s.provider.SendWithTemplate(email.TemplateConfirmation, data, msg); err != nil {
		logger.WithError(err).Error("failed to send posting confirmation",
			"posting_id", posting.ID)
	}
}

// SendAlertDigest delivers a digest of matched postings to a subscriber.
func (s *EmailService) SendAlertDigest(alert *models.JobAlert, matched []dto.PostingListItem) {
	if len(matched) == 0 {
		return
	}

	if max := alert.MaxResults(); max > 0 && len(matched) > max {
		matched = matched[:max]
	}

	type digestItem struct {
		Title    string
		Company  string
		Location string
		Link     string
	}

	items := make([]digestItem, 0, len(matched))
	for _, p := range matched {
		items = append(items, digestItem{
			Title:    p.Title,
			Company:  p.Company,
			Location: p.Location,
			Link:     fmt.Sprintf("%s/jobs/%s", s.baseURL, p.Slug),
		})
	}

	data := email.TemplateData{
		"Postings":  items,
		"UnsubLink": fmt.Sprintf("%s/alerts/unsubscribe/%s", s.baseURL, alert.UnsubToken),
	}

	msg := &email.Email{
		To:      []string{alert.Email},
		Subject: fmt.Sprintf("%d new farm jobs matching your alert", len(matched)),
	}

	if err := s.provider.SendWithTemplate(email.TemplateAlertDigest, data, msg); err != nil {
		logger.WithError(err).Error("failed to send alert digest",
			"alert_id", alert.ID)
	}
}
