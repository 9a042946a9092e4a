package services

import (
	"testing"
	"time"

	"farmwork_backend/internal/clock"
	"farmwork_backend/internal/email"
	"farmwork_backend/internal/models"
	"farmwork_backend/internal/repositories"
	"farmwork_backend/internal/services/dto"
	"farmwork_backend/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type fakeAlertRepo struct {
	alerts map[string]*models.JobAlert
}

func newFakeAlertRepo() *fakeAlertRepo {
	return &fakeAlertRepo{alerts: make(map[string]*models.JobAlert)}
}

func (f *fakeAlertRepo) Create(db *gorm.DB, alert *models.JobAlert) error {
	for _, a := range f.alerts {
		if a.Email == alert.Email {
			return repositories.ErrAlertAlreadyExists
		}
	}
	copied := *alert
	f.alerts[alert.ID] = &copied
	return nil
}

func (f *fakeAlertRepo) FindByUnsubToken(db *gorm.DB, token string) (*models.JobAlert, error) {
	for _, a := range f.alerts {
		if a.UnsubToken == token {
			copied := *a
			return &copied, nil
		}
	}
	return nil, repositories.ErrAlertNotFound
}

func (f *fakeAlertRepo) FindDue(db *gorm.DB, now time.Time) ([]models.JobAlert, error) {
	var due []models.JobAlert
	for _, a := range f.alerts {
		if !a.Confirmed {
			continue
		}
		window := 7 * 24 * time.Hour
		if a.Frequency == models.AlertDaily {
			window = 24 * time.Hour
		}
		if a.LastSentAt == nil || a.LastSentAt.Before(now.Add(-window)) {
			due = append(due, *a)
		}
	}
	return due, nil
}

func (f *fakeAlertRepo) MarkSent(db *gorm.DB, id string, sentAt time.Time) error {
	a, ok := f.alerts[id]
	if !ok {
		return repositories.ErrAlertNotFound
	}
	a.LastSentAt = &sentAt
	return nil
}

func (f *fakeAlertRepo) Delete(db *gorm.DB, id string) error {
	if _, ok := f.alerts[id]; !ok {
		return repositories.ErrAlertNotFound
	}
	delete(f.alerts, id)
	return nil
}

// recordingProvider captures outgoing messages for assertions.
type recordingProvider struct {
	sent []string // template names in send order
	data []email.TemplateData
}

func (r *recordingProvider) Send(msg *email.Email) error { return nil }
func (r *recordingProvider) SendWithTemplate(templateName string, data email.TemplateData, msg *email.Email) error {
	r.sent = append(r.sent, templateName)
	r.data = append(r.data, data)
	return nil
}
func (r *recordingProvider) Validate() error { return nil }
func (r *recordingProvider) Close() error    { return nil }

func newTestAlertService() (AlertService, *fakeAlertRepo, *fakePostingRepo, *recordingProvider, *clock.Fixed) {
	alertRepo := newFakeAlertRepo()
	postingRepo := newFakePostingRepo()
	provider := &recordingProvider{}
	emailSvc := NewEmailService(provider, "http://localhost:4000")
	clk := &clock.Fixed{Time: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := NewAlertService(alertRepo, postingRepo, emailSvc, clk)
	return svc, alertRepo, postingRepo, provider, clk
}

func TestSubscribe_DefaultsToWeekly(t *testing.T) {
	svc, repo, _, _, _ := newTestAlertService()

	resp, err := svc.Subscribe(nil, &dto.CreateAlertRequest{Email: "farmer@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "weekly", resp.Frequency)

	stored := repo.alerts[resp.ID]
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.UnsubToken)
}

func TestSubscribe_StoresPrefs(t *testing.T) {
	svc, repo, _, _, _ := newTestAlertService()

	resp, err := svc.Subscribe(nil, &dto.CreateAlertRequest{
		Email: "farmer@example.com",
		Prefs: map[string]interface{}{"max_results": float64(5)},
	})
	require.NoError(t, err)

	stored := repo.alerts[resp.ID]
	require.NotNil(t, stored)
	assert.Equal(t, 5, stored.MaxResults())
}

func TestSubscribe_DuplicateEmail(t *testing.T) {
	svc, _, _, _, _ := newTestAlertService()

	_, err := svc.Subscribe(nil, &dto.CreateAlertRequest{Email: "farmer@example.com"})
	require.NoError(t, err)

	_, err = svc.Subscribe(nil, &dto.CreateAlertRequest{Email: "farmer@example.com"})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeAlreadyExists, appErr.Code)
}

func TestUnsubscribe(t *testing.T) {
	svc, repo, _, _, _ := newTestAlertService()

	resp, err := svc.Subscribe(nil, &dto.CreateAlertRequest{Email: "farmer@example.com"})
	require.NoError(t, err)
	token := repo.alerts[resp.ID].UnsubToken

	require.NoError(t, svc.Unsubscribe(nil, token))
	assert.Empty(t, repo.alerts)

	err = svc.Unsubscribe(nil, token)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestRunDigest_SendsAndMarks(t *testing.T) {
	svc, alertRepo, postingRepo, provider, clk := newTestAlertService()

	seedPosting(postingRepo, func(p *models.JobPosting) {
		p.State = "WI"
		p.Categories = pq.StringArray{"livestock"}
	})

	alert := &models.JobAlert{
		BaseModel:  models.BaseModel{ID: uuid.New().String()},
		Email:      "farmer@example.com",
		State:      "Wisconsin",
		Frequency:  models.AlertWeekly,
		Confirmed:  true,
		UnsubToken: "tok",
	}
	alertRepo.alerts[alert.ID] = alert

	require.NoError(t, svc.RunDigest(nil))

	assert.Equal(t, []string{email.TemplateAlertDigest}, provider.sent)
	require.NotNil(t, alertRepo.alerts[alert.ID].LastSentAt)
	assert.Equal(t, clk.Time, *alertRepo.alerts[alert.ID].LastSentAt)
}

func TestRunDigest_HonorsMaxResultsPref(t *testing.T) {
	svc, alertRepo, postingRepo, provider, _ := newTestAlertService()

	seedPosting(postingRepo, func(p *models.JobPosting) { p.State = "WI" })
	seedPosting(postingRepo, func(p *models.JobPosting) { p.State = "WI" })
	seedPosting(postingRepo, func(p *models.JobPosting) { p.State = "WI" })

	alert := &models.JobAlert{
		BaseModel:  models.BaseModel{ID: uuid.New().String()},
		Email:      "farmer@example.com",
		State:      "Wisconsin",
		Frequency:  models.AlertWeekly,
		Prefs:      datatypes.JSONMap{"max_results": float64(1)},
		Confirmed:  true,
		UnsubToken: "tok",
	}
	alertRepo.alerts[alert.ID] = alert

	require.NoError(t, svc.RunDigest(nil))

	require.Len(t, provider.data, 1)
	assert.Len(t, provider.data[0]["Postings"], 1, "digest must be capped by the subscriber preference")
}

func TestRunDigest_NoMatchStillMarksSent(t *testing.T) {
	svc, alertRepo, postingRepo, provider, _ := newTestAlertService()

	seedPosting(postingRepo, func(p *models.JobPosting) { p.State = "TX" })

	alert := &models.JobAlert{
		BaseModel:  models.BaseModel{ID: uuid.New().String()},
		Email:      "farmer@example.com",
		State:      "Wisconsin",
		Frequency:  models.AlertDaily,
		Confirmed:  true,
		UnsubToken: "tok",
	}
	alertRepo.alerts[alert.ID] = alert

	require.NoError(t, svc.RunDigest(nil))

	assert.Empty(t, provider.sent)
	assert.NotNil(t, alertRepo.alerts[alert.ID].LastSentAt)
}

func TestMatchAlert(t *testing.T) {
	postings := []models.JobPosting{
		{Slug: "a", Title: "Dairy Herd Manager", Company: "Meadowbrook", State: "WI",
			Categories: pq.StringArray{"livestock"}, Description: "milking and feeding"},
		{Slug: "b", Title: "Vineyard Crew", Company: "Sunset Cellars", State: "CA",
			Categories: pq.StringArray{"crops"}, Description: "harvest season work"},
	}

	tests := []struct {
		name  string
		alert models.JobAlert
		slugs []string
	}{
		{"empty alert matches all", models.JobAlert{}, []string{"a", "b"}},
		{"state by full name", models.JobAlert{State: "Wisconsin"}, []string{"a"}},
		{"state by code", models.JobAlert{State: "ca"}, []string{"b"}},
		{"category overlap", models.JobAlert{Categories: pq.StringArray{"crops"}}, []string{"b"}},
		{"keyword in description", models.JobAlert{Keywords: "harvest"}, []string{"b"}},
		{"keyword case-insensitive", models.JobAlert{Keywords: "DAIRY"}, []string{"a"}},
		{"dimensions AND together", models.JobAlert{State: "WI", Keywords: "harvest"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched := MatchAlert(&tt.alert, postings)
			var slugs []string
			for _, m := range matched {
				slugs = append(slugs, m.Slug)
			}
			assert.Equal(t, tt.slugs, slugs)
		})
	}
}
