package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/draftforge/draftforge-backend/internal/domain"
)

// RevisionRepository data access for the text-level revision log
type RevisionRepository interface {
	WithTx(tx *gorm.DB) RevisionRepository
	Create(revision *domain.ContentRevision) error
	List(entityType domain.EntityType, entityID uuid.UUID, filter domain.HistoryFilter, page domain.Pagination) ([]*domain.ContentRevision, error)
	Count(entityType domain.EntityType, entityID uuid.UUID, filter domain.HistoryFilter) (int64, error)
}

type revisionRepository struct {
	db *gorm.DB
}

// NewRevisionRepository creates a new RevisionRepository
func NewRevisionRepository(db *gorm.DB) RevisionRepository {
	return &revisionRepository{db: db}
}

func (r *revisionRepository) WithTx(tx *gorm.DB) RevisionRepository {
	return &revisionRepository{db: tx}
}

func (r *revisionRepository) Create(revision *domain.ContentRevision) error {
	return r.db.Create(revision).Error
}

func (r *revisionRepository) List(entityType domain.EntityType, entityID uuid.UUID, filter domain.HistoryFilter, page domain.Pagination) ([]*domain.ContentRevision, error) {
	var revisions []*domain.ContentRevision
	q := r.scoped(entityType, entityID, filter)
	err := q.Order("changed_at DESC, id DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&revisions).Error
	return revisions, err
}

func (r *revisionRepository) Count(entityType domain.EntityType, entityID uuid.UUID, filter domain.HistoryFilter) (int64, error) {
	var count int64
	err := r.scoped(entityType, entityID, filter).Count(&count).Error
	return count, err
}

// entityColumn maps an entity type to the owner column of the
// mutually-exclusive scope triple
func entityColumn(entityType domain.EntityType) string {
	switch entityType {
	case domain.EntitySocialPost:
		return "social_post_id"
	case domain.EntitySnippet:
		return "snippet_id"
	default:
		return "blog_post_id"
	}
}

func (r *revisionRepository) scoped(entityType domain.EntityType, entityID uuid.UUID, filter domain.HistoryFilter) *gorm.DB {
	q := r.db.Model(&domain.ContentRevision{}).
		Where(entityColumn(entityType)+" = ?", entityID)
	if len(filter.Sources) > 0 {
		q = q.Where("change_source IN ?", filter.Sources)
	}
	if len(filter.ChangedBy) > 0 {
		q = q.Where("changed_by IN ?", filter.ChangedBy)
	}
	if filter.StartDate != nil {
		q = q.Where("changed_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("changed_at <= ?", *filter.EndDate)
	}
	if filter.SectionID != nil {
		q = q.Where("section_id = ?", *filter.SectionID)
	}
	if filter.ParagraphIndex != nil {
		q = q.Where("paragraph_index = ?", *filter.ParagraphIndex)
	}
	return q
}
