package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// AlertFrequency controls how often a digest is assembled for a subscriber.
type AlertFrequency string

const (
	AlertDaily  AlertFrequency = "daily"
	AlertWeekly AlertFrequency = "weekly"
)

// JobAlert is a saved search subscribed to email digests of matching postings.
type JobAlert struct {
	BaseModel

	Email      string         `json:"email"`
	State      string         `json:"state"`
	Categories pq.StringArray `gorm:"type:text[]" json:"categories"`
	Keywords   string         `json:"keywords"`
	Frequency  AlertFrequency `json:"frequency"`

	// Prefs holds optional channel settings (plain-text body, max results)
	// without a schema migration per knob.
	Prefs datatypes.JSONMap `gorm:"type:jsonb" json:"prefs"`

	Confirmed  bool       `json:"confirmed"`
	UnsubToken string     `gorm:"uniqueIndex" json:"-"`
	LastSentAt *time.Time `json:"last_sent_at"`
}

// MaxResults reads the max_results preference. Zero means no cap. JSON
// numbers round-trip as float64 through jsonb, so both forms are accepted.
func (a *JobAlert) MaxResults() int {
	switch v := a.Prefs["max_results"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
