package services

import (
	"farmwork_backend/internal/clock"
	"farmwork_backend/internal/repositories"
	"farmwork_backend/internal/services/dto"
	"farmwork_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ListingService translates the public filter parameters into a bounded,
// sorted selection of visible postings. Pure read path, no side effects.
type ListingService interface {
	ListPostings(db *gorm.DB, req *dto.ListPostingsRequest) (*dto.PostingListResponse, error)
	ListByCategory(db *gorm.DB, category, sortBy string) (*dto.PostingListResponse, error)
	ListByState(db *gorm.DB, state, sortBy string) (*dto.PostingListResponse, error)
}

type listingService struct {
	postingRepo repositories.PostingRepository
	clock       clock.Clock
}

func NewListingService(postingRepo repositories.PostingRepository, clk clock.Clock) ListingService {
	return &listingService{
		postingRepo: postingRepo,
		clock:       clk,
	}
}

func (s *listingService) ListPostings(db *gorm.DB, req *dto.ListPostingsRequest) (*dto.PostingListResponse, error) {
	criteria := repositories.PostingSearchCriteria{
		Search:     req.Search,
		State:      req.State,
		Categories: req.Categories,
		JobTypes:   req.JobTypes,
		FarmTypes:  req.FarmTypes,
		Benefits:   req.Benefits,
		SortBy:     sortByOrDefault(req.SortBy),
		Limit:      repositories.GeneralPageLimit,
		Now:        s.clock.Now(),
	}

	return s.search(db, criteria)
}

// ListByCategory backs the per-category landing pages, capped at 20 records.
func (s *listingService) ListByCategory(db *gorm.DB, category, sortBy string) (*dto.PostingListResponse, error) {
	criteria := repositories.PostingSearchCriteria{
		Categories: []string{category},
		SortBy:     sortByOrDefault(sortBy),
		Limit:      repositories.CategoryPageLimit,
		Now:        s.clock.Now(),
	}

	return s.search(db, criteria)
}

// ListByState backs the per-state landing pages. The state may arrive as a
// code or a full name; the repository matches stored rows in either form.
func (s *listingService) ListByState(db *gorm.DB, state, sortBy string) (*dto.PostingListResponse, error) {
	criteria := repositories.PostingSearchCriteria{
		State:  state,
		SortBy: sortByOrDefault(sortBy),
		Limit:  repositories.StatePageLimit,
		Now:    s.clock.Now(),
	}

	return s.search(db, criteria)
}

func (s *listingService) search(db *gorm.DB, criteria repositories.PostingSearchCriteria) (*dto.PostingListResponse, error) {
	postings, total, err := s.postingRepo.Search(db, criteria)
	if err != nil {
		return nil, apperrors.ErrRetrievalFailed(err)
	}

	items := make([]dto.PostingListItem, 0, len(postings))
	for i := range postings {
		items = append(items, dto.NewPostingListItem(&postings[i]))
	}

	return &dto.PostingListResponse{
		Postings: items,
		Total:    total,
	}, nil
}

func sortByOrDefault(sortBy string) string {
	switch sortBy {
	case repositories.SortHighestPaid, repositories.SortMostViewed:
		return sortBy
	default:
		return repositories.SortLatest
	}
}
