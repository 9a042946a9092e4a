package repositories

import (
	"errors"
	"time"

	"farmwork_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrAlertNotFound      = errors.New("job alert not found")
	ErrAlertAlreadyExists = errors.New("job alert already exists for this email")
)

type AlertRepository interface {
	Create(db *gorm.DB, alert *models.JobAlert) error
	FindByUnsubToken(db *gorm.DB, token string) (*models.JobAlert, error)
	FindDue(db *gorm.DB, now time.Time) ([]models.JobAlert, error)
	MarkSent(db *gorm.DB, id string, sentAt time.Time) error
	Delete(db *gorm.DB, id string) error
}

type AlertRepositoryImpl struct{}

func NewAlertRepository() AlertRepository {
	return &AlertRepositoryImpl{}
}

func (r *AlertRepositoryImpl) Create(db *gorm.DB, alert *models.JobAlert) error {
	var existing models.JobAlert
	if err := db.Where("email = ?", alert.Email).First(&existing).Error; err == nil {
		return ErrAlertAlreadyExists
	}
	return db.Create(alert).Error
}

func (r *AlertRepositoryImpl) FindByUnsubToken(db *gorm.DB, token string) (*models.JobAlert, error) {
	var alert models.JobAlert
	err := db.First(&alert, "unsub_token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, err
	}
	return &alert, nil
}

// FindDue returns confirmed alerts whose last digest is older than their
// frequency window.
func (r *AlertRepositoryImpl) FindDue(db *gorm.DB, now time.Time) ([]models.JobAlert, error) {
	var alerts []models.JobAlert
	dayAgo := now.Add(-24 * time.Hour)
	weekAgo := now.Add(-7 * 24 * time.Hour)

	err := db.Where("confirmed = ?", true).
		Where(
			"(frequency = ? AND (last_sent_at IS NULL OR last_sent_at < ?)) OR (frequency = ? AND (last_sent_at IS NULL OR last_sent_at < ?))",
			models.AlertDaily, dayAgo, models.AlertWeekly, weekAgo,
		).
		Find(&alerts).Error
	return alerts, err
}

func (r *AlertRepositoryImpl) MarkSent(db *gorm.DB, id string, sentAt time.Time) error {
	result := db.Model(&models.JobAlert{}).Where("id = ?", id).
		Update("last_sent_at", sentAt)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlertNotFound
	}
	return nil
}

func (r *AlertRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.JobAlert{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlertNotFound
	}
	return nil
}
