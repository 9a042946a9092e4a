package models

import (
	"time"

	"github.com/lib/pq"
)

// SalaryType distinguishes annual from hourly pay figures.
type SalaryType string

const (
	SalaryTypeAnnual SalaryType = "annual"
	SalaryTypeHourly SalaryType = "hourly"
)

// Plan is the purchased tier. Featured postings sort ahead of all standard
// postings in every sort mode.
type Plan string

const (
	PlanStandard Plan = "standard"
	PlanFeatured Plan = "featured"
)

// PostingLifetime is how long a posting stays editable and visible after
// creation. Renewal past this window happens out-of-band.
const PostingLifetime = 60 * 24 * time.Hour

// MaxCategories bounds the categories tag set at creation and at every update.
const MaxCategories = 3

// JobPosting is the sole entity of the system: one job listing.
//
// EditToken is possession-based authorization: whoever holds it may mutate
// the posting. It is generated once at creation and only ever leaves the
// system through the confirmation email.
type JobPosting struct {
	ID        string `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Slug      string `gorm:"uniqueIndex" json:"slug"`
	EditToken string `gorm:"uniqueIndex" json:"-"`

	Title        string `json:"title"`
	Company      string `json:"company"`
	CompanyEmail string `json:"company_email"`
	Description  string `json:"description"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Location     string `json:"location"`
	Remote       bool   `json:"remote"`

	SalaryMin  *int64     `json:"salary_min"`
	SalaryMax  *int64     `json:"salary_max"`
	SalaryType SalaryType `json:"salary_type"`

	JobTypes   pq.StringArray `gorm:"type:text[]" json:"job_types"`
	FarmTypes  pq.StringArray `gorm:"type:text[]" json:"farm_types"`
	Categories pq.StringArray `gorm:"type:text[]" json:"categories"`
	Tags       pq.StringArray `gorm:"type:text[]" json:"tags"`
	Benefits   pq.StringArray `gorm:"type:text[]" json:"benefits"`

	ApplyURL   string `json:"apply_url"`
	ApplyEmail string `json:"apply_email"`

	Featured        bool    `json:"featured"`
	Active          bool    `json:"active"`
	Views           int64   `json:"views"`
	StripePaymentID *string `json:"-"`

	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsVisible reports whether the posting appears in public queries: active and
// not yet expired. Expiry is a computed predicate, never a stored state.
func (p *JobPosting) IsVisible(now time.Time) bool {
	return p.Active && now.Before(p.ExpiresAt)
}

// IsExpired reports whether the posting is past its expiry timestamp, after
// which update and reactivate are permanently rejected.
func (p *JobPosting) IsExpired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}

// HasAnyTag reports whether any of the wanted values occurs in the set.
// Unknown values simply match nothing.
func HasAnyTag(set []string, wanted []string) bool {
	for _, w := range wanted {
		for _, s := range set {
			if s == w {
				return true
			}
		}
	}
	return false
}
