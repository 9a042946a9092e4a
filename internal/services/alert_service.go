package services

import (
	"errors"
	"strings"

	"farmwork_backend/internal/auth"
	"farmwork_backend/internal/clock"
	"farmwork_backend/internal/models"
	"farmwork_backend/internal/repositories"
	"farmwork_backend/internal/services/dto"
	"farmwork_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AlertService manages job-alert subscriptions and assembles digests of
// matching postings for the email collaborator.
type AlertService interface {
	Subscribe(db *gorm.DB, req *dto.CreateAlertRequest) (*dto.AlertResponse, error)
	Unsubscribe(db *gorm.DB, unsubToken string) error
	RunDigest(db *gorm.DB) error
}

type alertService struct {
	alertRepo    repositories.AlertRepository
	postingRepo  repositories.PostingRepository
	emailService *EmailService
	clock        clock.Clock
}

func NewAlertService(
	alertRepo repositories.AlertRepository,
	postingRepo repositories.PostingRepository,
	emailService *EmailService,
	clk clock.Clock,
) AlertService {
	return &alertService{
		alertRepo:    alertRepo,
		postingRepo:  postingRepo,
		emailService: emailService,
		clock:        clk,
	}
}

func (s *alertService) Subscribe(db *gorm.DB, req *dto.CreateAlertRequest) (*dto.AlertResponse, error) {
	unsubToken, err := auth.NewEditToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	frequency := models.AlertFrequency(req.Frequency)
	if frequency == "" {
		frequency = models.AlertWeekly
	}

	alert := &models.JobAlert{
		BaseModel:  models.BaseModel{ID: uuid.New().String()},
		Email:      req.Email,
		State:      req.State,
		Categories: req.Categories,
		Keywords:   req.Keywords,
		Frequency:  frequency,
		Prefs:      datatypes.JSONMap(req.Prefs),
		Confirmed:  true,
		UnsubToken: unsubToken,
	}

	if err := s.alertRepo.Create(db, alert); err != nil {
		if errors.Is(err, repositories.ErrAlertAlreadyExists) {
			return nil, apperrors.New(apperrors.CodeAlreadyExists, "alert",
				"A job alert already exists for this email", 409)
		}
		return nil, apperrors.ErrPersistenceFailed(err)
	}

	return &dto.AlertResponse{
		ID:        alert.ID,
		Email:     alert.Email,
		Frequency: string(alert.Frequency),
	}, nil
}

func (s *alertService) Unsubscribe(db *gorm.DB, unsubToken string) error {
	alert, err := s.alertRepo.FindByUnsubToken(db, unsubToken)
	if err != nil {
		if errors.Is(err, repositories.ErrAlertNotFound) {
			return apperrors.ErrAlertNotFound
		}
		return apperrors.ErrRetrievalFailed(err)
	}

	if err := s.alertRepo.Delete(db, alert.ID); err != nil {
		return apperrors.ErrPersistenceFailed(err)
	}
	return nil
}

// RunDigest delivers one digest to every due subscriber. Send failures are
// logged inside the email service; the alert is still marked sent so a flaky
// mailbox cannot wedge the sweep.
func (s *alertService) RunDigest(db *gorm.DB) error {
	now := s.clock.Now()

	alerts, err := s.alertRepo.FindDue(db, now)
	if err != nil {
		return apperrors.ErrRetrievalFailed(err)
	}
	if len(alerts) == 0 {
		return nil
	}

	postings, err := s.postingRepo.FindVisible(db, now)
	if err != nil {
		return apperrors.ErrRetrievalFailed(err)
	}

	for i := range alerts {
		alert := &alerts[i]
		matched := MatchAlert(alert, postings)
		if len(matched) > 0 {
			s.emailService.SendAlertDigest(alert, matched)
		}
		if err := s.alertRepo.MarkSent(db, alert.ID, now); err != nil {
			return apperrors.ErrPersistenceFailed(err)
		}
	}

	return nil
}

// MatchAlert filters visible postings against one subscription: state in
// either code or name form, category overlap, keyword substring. Dimensions
// AND together; an empty dimension matches everything.
func MatchAlert(alert *models.JobAlert, postings []models.JobPosting) []dto.PostingListItem {
	var matched []dto.PostingListItem

	for i := range postings {
		p := &postings[i]

		if alert.State != "" && !models.StateMatches(p.State, alert.State) {
			continue
		}
		if len(alert.Categories) > 0 && !models.HasAnyTag(p.Categories, alert.Categories) {
			continue
		}
		if alert.Keywords != "" && !keywordMatches(p, alert.Keywords) {
			continue
		}

		matched = append(matched, dto.NewPostingListItem(p))
	}

	return matched
}

func keywordMatches(p *models.JobPosting, keywords string) bool {
	needle := strings.ToLower(keywords)
	return strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.Company), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle)
}
