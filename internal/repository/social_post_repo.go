package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/draftforge/draftforge-backend/internal/domain"
)

// SocialPostRepository data access for social posts
type SocialPostRepository interface {
	WithTx(tx *gorm.DB) SocialPostRepository
	Create(post *domain.SocialPost) error
	FindByID(companyID, id uuid.UUID) (*domain.SocialPost, error)
	Get(id uuid.UUID) (*domain.SocialPost, error)
	ListByCompany(companyID uuid.UUID, platform domain.SocialPlatform, page domain.Pagination) ([]*domain.SocialPost, int64, error)
	Save(post *domain.SocialPost) error
	Delete(companyID, id uuid.UUID) error
}

type socialPostRepository struct {
	db *gorm.DB
}

// NewSocialPostRepository creates a new SocialPostRepository
func NewSocialPostRepository(db *gorm.DB) SocialPostRepository {
	return &socialPostRepository{db: db}
}

func (r *socialPostRepository) WithTx(tx *gorm.DB) SocialPostRepository {
	return &socialPostRepository{db: tx}
}

func (r *socialPostRepository) Create(post *domain.SocialPost) error {
	return r.db.Create(post).Error
}

func (r *socialPostRepository) FindByID(companyID, id uuid.UUID) (*domain.SocialPost, error) {
	var post domain.SocialPost
	err := r.db.Where("company_id = ? AND id = ?", companyID, id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *socialPostRepository) Get(id uuid.UUID) (*domain.SocialPost, error) {
	var post domain.SocialPost
	if err := r.db.First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *socialPostRepository) ListByCompany(companyID uuid.UUID, platform domain.SocialPlatform, page domain.Pagination) ([]*domain.SocialPost, int64, error) {
	var posts []*domain.SocialPost
	var total int64

	q := r.db.Model(&domain.SocialPost{}).Where("company_id = ?", companyID)
	if platform != "" {
		q = q.Where("platform = ?", platform)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("updated_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *socialPostRepository) Save(post *domain.SocialPost) error {
	return r.db.Save(post).Error
}

func (r *socialPostRepository) Delete(companyID, id uuid.UUID) error {
	return r.db.Where("company_id = ? AND id = ?", companyID, id).Delete(&domain.SocialPost{}).Error
}
