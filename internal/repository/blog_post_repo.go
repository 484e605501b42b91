package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/draftforge/draftforge-backend/internal/domain"
)

// BlogPostRepository data access for blog posts
type BlogPostRepository interface {
	WithTx(tx *gorm.DB) BlogPostRepository
	Create(post *domain.BlogPost) error
	FindByID(companyID, id uuid.UUID) (*domain.BlogPost, error)
	Get(id uuid.UUID) (*domain.BlogPost, error)
	ListByCompany(companyID uuid.UUID, page domain.Pagination) ([]*domain.BlogPost, int64, error)
	Save(post *domain.BlogPost) error
	Delete(companyID, id uuid.UUID) error
}

type blogPostRepository struct {
	db *gorm.DB
}

// NewBlogPostRepository creates a new BlogPostRepository
func NewBlogPostRepository(db *gorm.DB) BlogPostRepository {
	return &blogPostRepository{db: db}
}

func (r *blogPostRepository) WithTx(tx *gorm.DB) BlogPostRepository {
	return &blogPostRepository{db: tx}
}

func (r *blogPostRepository) Create(post *domain.BlogPost) error {
	return r.db.Create(post).Error
}

func (r *blogPostRepository) FindByID(companyID, id uuid.UUID) (*domain.BlogPost, error) {
	var post domain.BlogPost
	err := r.db.Where("company_id = ? AND id = ?", companyID, id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Get loads a post by ID alone, used by the versioning services which
// identify entities without tenant context
func (r *blogPostRepository) Get(id uuid.UUID) (*domain.BlogPost, error) {
	var post domain.BlogPost
	if err := r.db.First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *blogPostRepository) ListByCompany(companyID uuid.UUID, page domain.Pagination) ([]*domain.BlogPost, int64, error) {
	var posts []*domain.BlogPost
	var total int64

	q := r.db.Model(&domain.BlogPost{}).Where("company_id = ?", companyID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("updated_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *blogPostRepository) Save(post *domain.BlogPost) error {
	return r.db.Save(post).Error
}

func (r *blogPostRepository) Delete(companyID, id uuid.UUID) error {
	return r.db.Where("company_id = ? AND id = ?", companyID, id).Delete(&domain.BlogPost{}).Error
}
