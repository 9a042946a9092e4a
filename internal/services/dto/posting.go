package dto

import (
	"time"

	"farmwork_backend/internal/models"
)

// CreatePostingRequest is the draft submission payload. Exactly one of
// apply_url/apply_email and the salary ordering are cross-field rules checked
// by the lifecycle controller on top of these tags.
type CreatePostingRequest struct {
	Title        string   `json:"title" validate:"required,max=200"`
	Company      string   `json:"company" validate:"required,max=200"`
	CompanyEmail string   `json:"company_email" validate:"required,email"`
	Description  string   `json:"description" validate:"required,min=100"`
	City         string   `json:"city" validate:"max=100"`
	State        string   `json:"state" validate:"omitempty,is-us-state"`
	PostalCode   string   `json:"postal_code" validate:"max=20"`
	Location     string   `json:"location" validate:"required,max=200"`
	Remote       bool     `json:"remote"`
	SalaryMin    *int64   `json:"salary_min" validate:"omitempty,gte=0"`
	SalaryMax    *int64   `json:"salary_max" validate:"omitempty,gte=0"`
	SalaryType   string   `json:"salary_type" validate:"omitempty,is-salary-type"`
	JobTypes     []string `json:"job_types" validate:"required,min=1"`
	FarmTypes    []string `json:"farm_types" validate:"required,min=1"`
	Categories   []string `json:"categories" validate:"max=3"`
	Tags         []string `json:"tags"`
	Benefits     []string `json:"benefits"`
	ApplyURL     string   `json:"apply_url" validate:"omitempty,url"`
	ApplyEmail   string   `json:"apply_email" validate:"omitempty,email"`
	Plan         string   `json:"plan" validate:"omitempty,oneof=standard featured"`
}

// UpdatePostingRequest carries the mutable field set. Token, slug, active,
// featured, payment reference and expiry are immutable through this path.
type UpdatePostingRequest struct {
	Title        string   `json:"title" validate:"required,max=200"`
	Company      string   `json:"company" validate:"required,max=200"`
	CompanyEmail string   `json:"company_email" validate:"required,email"`
	Description  string   `json:"description" validate:"required,min=100"`
	City         string   `json:"city" validate:"max=100"`
	State        string   `json:"state" validate:"omitempty,is-us-state"`
	PostalCode   string   `json:"postal_code" validate:"max=20"`
	Location     string   `json:"location" validate:"required,max=200"`
	Remote       bool     `json:"remote"`
	SalaryMin    *int64   `json:"salary_min" validate:"omitempty,gte=0"`
	SalaryMax    *int64   `json:"salary_max" validate:"omitempty,gte=0"`
	SalaryType   string   `json:"salary_type" validate:"omitempty,is-salary-type"`
	JobTypes     []string `json:"job_types" validate:"required,min=1"`
	FarmTypes    []string `json:"farm_types" validate:"required,min=1"`
	Categories   []string `json:"categories" validate:"max=3"`
	Tags         []string `json:"tags"`
	Benefits     []string `json:"benefits"`
	ApplyURL     string   `json:"apply_url" validate:"omitempty,url"`
	ApplyEmail   string   `json:"apply_email" validate:"omitempty,email"`
}

// ListPostingsRequest is the flat query-string filter set of the public
// listing endpoint.
type ListPostingsRequest struct {
	Search     string   `form:"search"`
	State      string   `form:"state"`
	Categories []string `form:"categories"`
	JobTypes   []string `form:"job_types"`
	FarmTypes  []string `form:"farm_types"`
	Benefits   []string `form:"benefits"`
	SortBy     string   `form:"sort_by" validate:"omitempty,oneof=latest highest-paid most-viewed"`
}

// PostingListItem is the reduced list projection: no edit token, no full
// description.
type PostingListItem struct {
	Slug       string            `json:"slug"`
	Title      string            `json:"title"`
	Company    string            `json:"company"`
	Location   string            `json:"location"`
	City       string            `json:"city"`
	State      string            `json:"state"`
	Remote     bool              `json:"remote"`
	SalaryMin  *int64            `json:"salary_min"`
	SalaryMax  *int64            `json:"salary_max"`
	SalaryType models.SalaryType `json:"salary_type"`
	JobTypes   []string          `json:"job_types"`
	FarmTypes  []string          `json:"farm_types"`
	Categories []string          `json:"categories"`
	Featured   bool              `json:"featured"`
	CreatedAt  time.Time         `json:"created_at"`
}

// PostingDetail is the full public projection, still excluding the edit token.
type PostingDetail struct {
	PostingListItem
	Description string    `json:"description"`
	PostalCode  string    `json:"postal_code"`
	Tags        []string  `json:"tags"`
	Benefits    []string  `json:"benefits"`
	ApplyURL    string    `json:"apply_url,omitempty"`
	ApplyEmail  string    `json:"apply_email,omitempty"`
	Views       int64     `json:"views"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// OwnerPosting is the editable projection returned on the token-gated
// surface: the only read path exposing active, views and both timestamps
// together.
type OwnerPosting struct {
	PostingDetail
	Active    bool      `json:"active"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreatePostingResponse hands the freshly minted edit token back exactly
// once, for the confirmation email and the checkout metadata. Plan echoes
// the requested tier so the client can seed the checkout session with it.
type CreatePostingResponse struct {
	Posting   OwnerPosting `json:"posting"`
	EditToken string       `json:"edit_token"`
	Plan      string       `json:"plan"`
}

func NewPostingListItem(p *models.JobPosting) PostingListItem {
	return PostingListItem{
		Slug:       p.Slug,
		Title:      p.Title,
		Company:    p.Company,
		Location:   p.Location,
		City:       p.City,
		State:      p.State,
		Remote:     p.Remote,
		SalaryMin:  p.SalaryMin,
		SalaryMax:  p.SalaryMax,
		SalaryType: p.SalaryType,
		JobTypes:   p.JobTypes,
		FarmTypes:  p.FarmTypes,
		Categories: p.Categories,
		Featured:   p.Featured,
		CreatedAt:  p.CreatedAt,
	}
}

func NewPostingDetail(p *models.JobPosting) PostingDetail {
	return PostingDetail{
		PostingListItem: NewPostingListItem(p),
		Description:     p.Description,
		PostalCode:      p.PostalCode,
		Tags:            p.Tags,
		Benefits:        p.Benefits,
		ApplyURL:        p.ApplyURL,
		ApplyEmail:      p.ApplyEmail,
		Views:           p.Views,
		ExpiresAt:       p.ExpiresAt,
	}
}

func NewOwnerPosting(p *models.JobPosting) OwnerPosting {
	return OwnerPosting{
		PostingDetail: NewPostingDetail(p),
		Active:        p.Active,
		UpdatedAt:     p.UpdatedAt,
	}
}

// PostingListResponse is the bounded, sorted listing page.
type PostingListResponse struct {
	Postings []PostingListItem `json:"postings"`
	Total    int64             `json:"total"`
}
