package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"farmwork_backend/internal/middleware"
	"farmwork_backend/internal/services/dto"
	"farmwork_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type stubListingService struct {
	resp *dto.PostingListResponse
	err  error
}

func (s *stubListingService) ListPostings(db *gorm.DB, req *dto.ListPostingsRequest) (*dto.PostingListResponse, error) {
	return s.resp, s.err
}

func (s *stubListingService) ListByCategory(db *gorm.DB, category, sortBy string) (*dto.PostingListResponse, error) {
	return s.resp, s.err
}

func (s *stubListingService) ListByState(db *gorm.DB, state, sortBy string) (*dto.PostingListResponse, error) {
	return s.resp, s.err
}

func newPostingTestRouter(postingSvc *stubPostingService, listingSvc *stubListingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.DBMiddleware(nil))

	handler := NewPostingHandler(NewBaseHandler(validator.New()), postingSvc, listingSvc)
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func listFixture() *dto.PostingListResponse {
	return &dto.PostingListResponse{
		Postings: []dto.PostingListItem{{Slug: "ranch-hand-1756700000", Title: "Ranch Hand"}},
		Total:    1,
	}
}

// The slug route shares its prefix with the category and state landing
// pages; every variant must dispatch to its own handler.
func TestJobs_RoutesDispatch(t *testing.T) {
	router := newPostingTestRouter(
		&stubPostingService{owner: ownerFixture()},
		&stubListingService{resp: listFixture()},
	)

	paths := []string{
		"/api/v1/jobs",
		"/api/v1/jobs?state=MT&sort_by=highest-paid",
		"/api/v1/jobs/category/livestock",
		"/api/v1/jobs/state/California",
		"/api/v1/jobs/ranch-hand-1756700000",
	}

	for _, path := range paths {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "GET %s", path)
	}
}

func TestJobs_ListRejectsUnknownSortMode(t *testing.T) {
	router := newPostingTestRouter(
		&stubPostingService{owner: ownerFixture()},
		&stubListingService{resp: listFixture()},
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs?sort_by=alphabetical", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_FAILED")
}

func TestJobs_CreateDraftReturnsCreated(t *testing.T) {
	router := newPostingTestRouter(
		&stubPostingService{owner: ownerFixture()},
		&stubListingService{resp: listFixture()},
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", strings.NewReader(`{"title":"Ranch Hand"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "edit_token")
}
