package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"farmwork_backend/internal/middleware"
	"farmwork_backend/internal/models"
	"farmwork_backend/internal/services/dto"
	"farmwork_backend/internal/validator"
	"farmwork_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// stubPostingService returns canned results so handler tests exercise only
// routing, binding and error rendering.
type stubPostingService struct {
	owner     *dto.OwnerPosting
	activated *models.JobPosting
	err       error
}

func (s *stubPostingService) CreateDraft(db *gorm.DB, req *dto.CreatePostingRequest) (*dto.CreatePostingResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.CreatePostingResponse{Posting: *s.owner, EditToken: "tok"}, nil
}

func (s *stubPostingService) Activate(db *gorm.DB, postingID string, plan models.Plan, paymentRef string) (*models.JobPosting, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.activated, nil
}

func (s *stubPostingService) LookupByToken(db *gorm.DB, token string) (*dto.OwnerPosting, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.owner, nil
}

func (s *stubPostingService) Update(db *gorm.DB, token string, req *dto.UpdatePostingRequest) (*dto.OwnerPosting, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.owner, nil
}

func (s *stubPostingService) Deactivate(db *gorm.DB, token string) (*dto.OwnerPosting, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.owner, nil
}

func (s *stubPostingService) Reactivate(db *gorm.DB, token string) (*dto.OwnerPosting, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.owner, nil
}

func (s *stubPostingService) GetBySlug(db *gorm.DB, slug string) (*dto.PostingDetail, *models.JobPosting, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	detail := s.owner.PostingDetail
	return &detail, nil, nil
}

func newManageTestRouter(svc *stubPostingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.DBMiddleware(nil))

	handler := NewManageHandler(NewBaseHandler(validator.New()), svc)
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func ownerFixture() *dto.OwnerPosting {
	return &dto.OwnerPosting{
		PostingDetail: dto.PostingDetail{
			PostingListItem: dto.PostingListItem{
				Slug:  "ranch-hand-bar-t-1756700000",
				Title: "Ranch Hand",
			},
		},
		Active: true,
	}
}

func TestManage_GetPosting(t *testing.T) {
	router := newManageTestRouter(&stubPostingService{owner: ownerFixture()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/manage/sometoken", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ranch-hand-bar-t-1756700000")
	assert.Contains(t, w.Body.String(), `"active":true`)
}

func TestManage_UnknownTokenIs404(t *testing.T) {
	router := newManageTestRouter(&stubPostingService{
		err: apperrors.ErrNotFound(assert.AnError),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/manage/wrong", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestManage_DeactivateConflict(t *testing.T) {
	router := newManageTestRouter(&stubPostingService{err: apperrors.ErrAlreadyInactive})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/manage/tok/deactivate", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ALREADY_INACTIVE")
}

func TestManage_ReactivateExpiredIsGone(t *testing.T) {
	router := newManageTestRouter(&stubPostingService{err: apperrors.ErrPostingExpired})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/manage/tok/reactivate", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusGone, w.Code)
	assert.Contains(t, w.Body.String(), "EXPIRED")
}

func TestManage_UpdateRejectsMalformedBody(t *testing.T) {
	router := newManageTestRouter(&stubPostingService{owner: ownerFixture()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/manage/tok", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
