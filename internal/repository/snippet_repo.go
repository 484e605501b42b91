package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/draftforge/draftforge-backend/internal/domain"
)

// SnippetRepository data access for reusable snippets
type SnippetRepository interface {
	WithTx(tx *gorm.DB) SnippetRepository
	Create(snippet *domain.Snippet) error
	FindByID(companyID, id uuid.UUID) (*domain.Snippet, error)
	Get(id uuid.UUID) (*domain.Snippet, error)
	ListByCompany(companyID uuid.UUID, category string, page domain.Pagination) ([]*domain.Snippet, int64, error)
	Save(snippet *domain.Snippet) error
	Delete(companyID, id uuid.UUID) error
}

type snippetRepository struct {
	db *gorm.DB
}

// NewSnippetRepository creates a new SnippetRepository
func NewSnippetRepository(db *gorm.DB) SnippetRepository {
	return &snippetRepository{db: db}
}

func (r *snippetRepository) WithTx(tx *gorm.DB) SnippetRepository {
	return &snippetRepository{db: tx}
}

func (r *snippetRepository) Create(snippet *domain.Snippet) error {
	return r.db.Create(snippet).Error
}

func (r *snippetRepository) FindByID(companyID, id uuid.UUID) (*domain.Snippet, error) {
	var snippet domain.Snippet
	err := r.db.Where("company_id = ? AND id = ?", companyID, id).First(&snippet).Error
	if err != nil {
		return nil, err
	}
	return &snippet, nil
}

func (r *snippetRepository) Get(id uuid.UUID) (*domain.Snippet, error) {
	var snippet domain.Snippet
	if err := r.db.First(&snippet, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &snippet, nil
}

func (r *snippetRepository) ListByCompany(companyID uuid.UUID, category string, page domain.Pagination) ([]*domain.Snippet, int64, error) {
	var snippets []*domain.Snippet
	var total int64

	q := r.db.Model(&domain.Snippet{}).Where("company_id = ?", companyID)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("name ASC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&snippets).Error
	return snippets, total, err
}

func (r *snippetRepository) Save(snippet *domain.Snippet) error {
	return r.db.Save(snippet).Error
}

func (r *snippetRepository) Delete(companyID, id uuid.UUID) error {
	return r.db.Where("company_id = ? AND id = ?", companyID, id).Delete(&domain.Snippet{}).Error
}
