package services

import (
	"errors"

	"farmwork_backend/internal/auth"
	"farmwork_backend/internal/clock"
	"farmwork_backend/internal/models"
	"farmwork_backend/internal/repositories"
	"farmwork_backend/internal/services/dto"
	"farmwork_backend/internal/utils"
	"farmwork_backend/internal/validator"
	"farmwork_backend/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// PostingService governs the posting lifecycle: draft creation, payment-driven
// activation, and the token-gated mutation paths.
type PostingService interface {
	CreateDraft(db *gorm.DB, req *dto.CreatePostingRequest) (*dto.CreatePostingResponse, error)
	Activate(db *gorm.DB, postingID string, plan models.Plan, paymentRef string) (*models.JobPosting, error)
	LookupByToken(db *gorm.DB, token string) (*dto.OwnerPosting, error)
	Update(db *gorm.DB, token string, req *dto.UpdatePostingRequest) (*dto.OwnerPosting, error)
	Deactivate(db *gorm.DB, token string) (*dto.OwnerPosting, error)
	Reactivate(db *gorm.DB, token string) (*dto.OwnerPosting, error)
	GetBySlug(db *gorm.DB, slug string) (*dto.PostingDetail, *models.JobPosting, error)
}

type postingService struct {
	postingRepo repositories.PostingRepository
	validator   *validator.Validator
	clock       clock.Clock
}

func NewPostingService(postingRepo repositories.PostingRepository, v *validator.Validator, clk clock.Clock) PostingService {
	return &postingService{
		postingRepo: postingRepo,
		validator:   v,
		clock:       clk,
	}
}

// CreateDraft validates the submission, mints the slug and edit token and
// stores the posting inactive. Activation only ever happens through the
// payment event.
func (s *postingService) CreateDraft(db *gorm.DB, req *dto.CreatePostingRequest) (*dto.CreatePostingResponse, error) {
	if err := s.validateFields(req.ApplyURL, req.ApplyEmail, req.SalaryMin, req.SalaryMax, req.Categories, req); err != nil {
		return nil, err
	}

	token, err := auth.NewEditToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := s.clock.Now()

	posting := &models.JobPosting{
		ID:           uuid.New().String(),
		Slug:         utils.PostingSlug(req.Title, req.Company, now),
		EditToken:    token,
		Title:        req.Title,
		Company:      req.Company,
		CompanyEmail: req.CompanyEmail,
		Description:  req.Description,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Location:     req.Location,
		Remote:       req.Remote,
		SalaryMin:    req.SalaryMin,
		SalaryMax:    req.SalaryMax,
		SalaryType:   salaryTypeOrDefault(req.SalaryType),
		JobTypes:     req.JobTypes,
		FarmTypes:    req.FarmTypes,
		Categories:   req.Categories,
		Tags:         req.Tags,
		Benefits:     req.Benefits,
		ApplyURL:     req.ApplyURL,
		ApplyEmail:   req.ApplyEmail,
		Featured:     false,
		Active:       false,
		CreatedAt:    now,
		UpdatedAt:    now,
		ExpiresAt:    now.Add(models.PostingLifetime),
	}

	if err := s.postingRepo.Create(db, posting); err != nil {
		return nil, apperrors.ErrPersistenceFailed(err)
	}

	plan := req.Plan
	if plan == "" {
		plan = string(models.PlanStandard)
	}

	return &dto.CreatePostingResponse{
		Posting:   dto.NewOwnerPosting(posting),
		EditToken: token,
		Plan:      plan,
	}, nil
}

// Activate unconditionally flips the posting active and records the payment
// reference. Idempotency is the payment collaborator's responsibility; the
// provider delivers one completed event per successful capture.
func (s *postingService) Activate(db *gorm.DB, postingID string, plan models.Plan, paymentRef string) (*models.JobPosting, error) {
	fields := map[string]interface{}{
		"active":            true,
		"featured":          plan == models.PlanFeatured,
		"stripe_payment_id": paymentRef,
		"updated_at":        s.clock.Now(),
	}

	if err := s.postingRepo.UpdateFields(db, postingID, fields); err != nil {
		if errors.Is(err, repositories.ErrPostingNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.ErrPersistenceFailed(err)
	}

	posting, err := s.postingRepo.FindByID(db, postingID)
	if err != nil {
		return nil, apperrors.ErrRetrievalFailed(err)
	}
	return posting, nil
}

// LookupByToken is the sole read path exposing the full editable field set.
// Any unrecognized token yields the same not-found, wrong or gone alike.
func (s *postingService) LookupByToken(db *gorm.DB, token string) (*dto.OwnerPosting, error) {
	posting, err := s.findByToken(db, token)
	if err != nil {
		return nil, err
	}
	owner := dto.NewOwnerPosting(posting)
	return &owner, nil
}

// Update applies the mutable field set. The expiry check runs before field
// validation; an expired posting rejects the edit regardless of payload.
func (s *postingService) Update(db *gorm.DB, token string, req *dto.UpdatePostingRequest) (*dto.OwnerPosting, error) {
	posting, err := s.findByToken(db, token)
	if err != nil {
		return nil, err
	}

	if posting.IsExpired(s.clock.Now()) {
		return nil, apperrors.ErrPostingExpired
	}

	if err := s.validateFields(req.ApplyURL, req.ApplyEmail, req.SalaryMin, req.SalaryMax, req.Categories, req); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"title":         req.Title,
		"company":       req.Company,
		"company_email": req.CompanyEmail,
		"description":   req.Description,
		"city":          req.City,
		"state":         req.State,
		"postal_code":   req.PostalCode,
		"location":      req.Location,
		"remote":        req.Remote,
		"salary_min":    req.SalaryMin,
		"salary_max":    req.SalaryMax,
		"salary_type":   salaryTypeOrDefault(req.SalaryType),
		"job_types":     pq.StringArray(req.JobTypes),
		"farm_types":    pq.StringArray(req.FarmTypes),
		"categories":    pq.StringArray(req.Categories),
		"tags":          pq.StringArray(req.Tags),
		"benefits":      pq.StringArray(req.Benefits),
		"apply_url":     req.ApplyURL,
		"apply_email":   req.ApplyEmail,
		"updated_at":    s.clock.Now(),
	}

	if err := s.postingRepo.UpdateFields(db, posting.ID, fields); err != nil {
		return nil, apperrors.ErrPersistenceFailed(err)
	}

	updated, err := s.postingRepo.FindByID(db, posting.ID)
	if err != nil {
		return nil, apperrors.ErrRetrievalFailed(err)
	}
	owner := dto.NewOwnerPosting(updated)
	return &owner, nil
}

// Deactivate hides the posting. Calling it on an already-inactive posting is
// a reported error, not a silent no-op.
func (s *postingService) Deactivate(db *gorm.DB, token string) (*dto.OwnerPosting, error) {
	posting, err := s.findByToken(db, token)
	if err != nil {
		return nil, err
	}

	if !posting.Active {
		return nil, apperrors.ErrAlreadyInactive
	}

	return s.setActive(db, posting, false)
}

// Reactivate restores visibility while the posting is still inside its expiry
// window. Expired postings are renewed out-of-band.
func (s *postingService) Reactivate(db *gorm.DB, token string) (*dto.OwnerPosting, error) {
	posting, err := s.findByToken(db, token)
	if err != nil {
		return nil, err
	}

	if posting.Active {
		return nil, apperrors.ErrAlreadyActive
	}
	if posting.IsExpired(s.clock.Now()) {
		return nil, apperrors.ErrPostingExpired
	}

	return s.setActive(db, posting, true)
}

// GetBySlug serves the public detail page and bumps the view counter.
// Non-visible postings read as not found.
func (s *postingService) GetBySlug(db *gorm.DB, slug string) (*dto.PostingDetail, *models.JobPosting, error) {
	posting, err := s.postingRepo.FindBySlug(db, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrPostingNotFound) {
			return nil, nil, apperrors.ErrNotFound(err)
		}
		return nil, nil, apperrors.ErrRetrievalFailed(err)
	}

	if !posting.IsVisible(s.clock.Now()) {
		return nil, nil, apperrors.ErrNotFound(repositories.ErrPostingNotFound)
	}

	// Best-effort counter; a lost increment is acceptable.
	if err := s.postingRepo.IncrementViews(db, posting.ID); err == nil {
		posting.Views++
	}

	detail := dto.NewPostingDetail(posting)
	return &detail, posting, nil
}

func (s *postingService) findByToken(db *gorm.DB, token string) (*models.JobPosting, error) {
	posting, err := s.postingRepo.FindByEditToken(db, token)
	if err != nil {
		if errors.Is(err, repositories.ErrPostingNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.ErrRetrievalFailed(err)
	}

	if !auth.SecureCompare(posting.EditToken, token) {
		return nil, apperrors.ErrNotFound(repositories.ErrPostingNotFound)
	}

	return posting, nil
}

func (s *postingService) setActive(db *gorm.DB, posting *models.JobPosting, active bool) (*dto.OwnerPosting, error) {
	fields := map[string]interface{}{
		"active":     active,
		"updated_at": s.clock.Now(),
	}
	if err := s.postingRepo.UpdateFields(db, posting.ID, fields); err != nil {
		return nil, apperrors.ErrPersistenceFailed(err)
	}

	posting.Active = active
	owner := dto.NewOwnerPosting(posting)
	return &owner, nil
}

// validateFields runs the struct tags plus the cross-field rules: exactly one
// apply method, salary ordering, category cardinality.
func (s *postingService) validateFields(applyURL, applyEmail string, salaryMin, salaryMax *int64, categories []string, req interface{}) error {
	if err := s.validator.Validate(req); err != nil {
		var vErr *validator.ValidationError
		if errors.As(err, &vErr) {
			return apperrors.ValidationError(vErr.Errors)
		}
		return apperrors.InternalError(err)
	}

	fieldErrors := make(map[string]string)

	if (applyURL == "") == (applyEmail == "") {
		fieldErrors["apply_url"] = "Exactly one of apply_url or apply_email must be provided"
	}
	if salaryMin != nil && salaryMax != nil && *salaryMin > *salaryMax {
		fieldErrors["salary_min"] = "salary_min must not exceed salary_max"
	}
	if len(categories) > models.MaxCategories {
		fieldErrors["categories"] = "At most 3 categories are allowed"
	}

	if len(fieldErrors) > 0 {
		return apperrors.ValidationError(fieldErrors)
	}
	return nil
}

func salaryTypeOrDefault(t string) models.SalaryType {
	if t == "" {
		return models.SalaryTypeAnnual
	}
	return models.SalaryType(t)
}
