package repositories

import (
	"errors"
	"time"

	"farmwork_backend/internal/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrPostingNotFound = errors.New("job posting not found")
)

// Sort modes for the public listing query.
const (
	SortLatest      = "latest"
	SortHighestPaid = "highest-paid"
	SortMostViewed  = "most-viewed"
)

// Result caps per listing surface.
const (
	GeneralPageLimit  = 50
	CategoryPageLimit = 20
	StatePageLimit    = 50
)

type PostingRepository interface {
	Create(db *gorm.DB, posting *models.JobPosting) error
	FindByID(db *gorm.DB, id string) (*models.JobPosting, error)
	FindBySlug(db *gorm.DB, slug string) (*models.JobPosting, error)
	FindByEditToken(db *gorm.DB, token string) (*models.JobPosting, error)
	UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error
	IncrementViews(db *gorm.DB, id string) error
	Search(db *gorm.DB, criteria PostingSearchCriteria) ([]models.JobPosting, int64, error)
	FindVisible(db *gorm.DB, now time.Time) ([]models.JobPosting, error)
}

// PostingSearchCriteria is the flat filter set of the public listing query.
// Now feeds the visibility predicate; the repository never reads the wall
// clock itself.
type PostingSearchCriteria struct {
	Search     string
	State      string
	Categories []string
	JobTypes   []string
	FarmTypes  []string
	Benefits   []string
	SortBy     string
	Limit      int
	Now        time.Time
}

type PostingRepositoryImpl struct{}

func NewPostingRepository() PostingRepository {
	return &PostingRepositoryImpl{}
}

func (r *PostingRepositoryImpl) Create(db *gorm.DB, posting *models.JobPosting) error {
	return db.Create(posting).Error
}

func (r *PostingRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.JobPosting, error) {
	var posting models.JobPosting
	err := db.First(&posting, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostingNotFound
		}
		return nil, err
	}
	return &posting, nil
}

func (r *PostingRepositoryImpl) FindBySlug(db *gorm.DB, slug string) (*models.JobPosting, error) {
	var posting models.JobPosting
	err := db.First(&posting, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostingNotFound
		}
		return nil, err
	}
	return &posting, nil
}

// FindByEditToken resolves the owner credential. A miss never says whether the
// token is wrong or the posting is gone.
func (r *PostingRepositoryImpl) FindByEditToken(db *gorm.DB, token string) (*models.JobPosting, error) {
	var posting models.JobPosting
	err := db.First(&posting, "edit_token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostingNotFound
		}
		return nil, err
	}
	return &posting, nil
}

func (r *PostingRepositoryImpl) UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error {
	result := db.Model(&models.JobPosting{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostingNotFound
	}
	return nil
}

// IncrementViews bumps the view counter. Best-effort: callers log failures and
// move on.
func (r *PostingRepositoryImpl) IncrementViews(db *gorm.DB, id string) error {
	return db.Model(&models.JobPosting{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *PostingRepositoryImpl) Search(db *gorm.DB, criteria PostingSearchCriteria) ([]models.JobPosting, int64, error) {
	var postings []models.JobPosting

	// Visibility predicate is always applied, recomputed per query.
	query := db.Model(&models.JobPosting{}).
		Where("active = ? AND expires_at > ?", true, criteria.Now)

	if criteria.Search != "" {
		search := "%" + criteria.Search + "%"
		query = query.Where(
			"title ILIKE ? OR company ILIKE ? OR location ILIKE ? OR description ILIKE ?",
			search, search, search, search,
		)
	}

	if criteria.State != "" {
		// Historical data holds both "CA" and "California"; match either form.
		code, name := models.ResolveState(criteria.State)
		query = query.Where("LOWER(state) IN ?", []string{code, name})
	}

	query = applyTagFilter(query, "categories", criteria.Categories)
	query = applyTagFilter(query, "job_types", criteria.JobTypes)
	query = applyTagFilter(query, "farm_types", criteria.FarmTypes)
	query = applyTagFilter(query, "benefits", criteria.Benefits)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Featured partitioning precedes every sort mode.
	query = query.Order("featured DESC").Order(sortClause(criteria.SortBy))

	limit := criteria.Limit
	if limit <= 0 || limit > GeneralPageLimit {
		limit = GeneralPageLimit
	}

	if err := query.Limit(limit).Find(&postings).Error; err != nil {
		return nil, 0, err
	}

	return postings, total, nil
}

// FindVisible returns every publicly visible posting. Used by the alert digest
// worker.
func (r *PostingRepositoryImpl) FindVisible(db *gorm.DB, now time.Time) ([]models.JobPosting, error) {
	var postings []models.JobPosting
	err := db.Where("active = ? AND expires_at > ?", true, now).
		Order("featured DESC").Order("created_at DESC").
		Find(&postings).Error
	return postings, err
}

// applyTagFilter restricts to rows whose tag-set column overlaps the supplied
// values (OR within the dimension). Distinct dimensions AND together through
// chained Wheres. Unknown values overlap nothing and yield an empty result,
// not an error.
func applyTagFilter(query *gorm.DB, column string, values []string) *gorm.DB {
	if len(values) == 0 {
		return query
	}
	return query.Where(column+" && ?", pq.Array(values))
}

func sortClause(sortBy string) string {
	switch sortBy {
	case SortHighestPaid:
		return "salary_max DESC NULLS LAST"
	case SortMostViewed:
		return "views DESC"
	default:
		return "created_at DESC"
	}
}
