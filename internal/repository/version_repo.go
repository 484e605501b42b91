package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/draftforge/draftforge-backend/internal/domain"
)

// VersionRepository data access for the append-only version log
type VersionRepository interface {
	// WithTx returns a copy of the repository bound to tx so version
	// writes can join a caller-owned transaction
	WithTx(tx *gorm.DB) VersionRepository

	// Append persists a new version row and, when the row has a
	// predecessor, sets that predecessor's next_version_id. The two
	// writes happen in one transaction.
	Append(version *domain.ContentVersion) error

	FindByEntityAndNumber(entityType domain.EntityType, entityID uuid.UUID, number int) (*domain.ContentVersion, error)
	FindLatest(entityType domain.EntityType, entityID uuid.UUID) (*domain.ContentVersion, error)
	MaxVersionNumber(entityType domain.EntityType, entityID uuid.UUID) (int, error)

	// List returns one page of versions, newest first
	List(entityType domain.EntityType, entityID uuid.UUID, filter domain.HistoryFilter, page domain.Pagination) ([]*domain.ContentVersion, error)
	Count(entityType domain.EntityType, entityID uuid.UUID, filter domain.HistoryFilter) (int64, error)

	// ListAll returns every version for the entity in ascending
	// version order, for summary computation
	ListAll(entityType domain.EntityType, entityID uuid.UUID) ([]*domain.ContentVersion, error)
	// ListRange returns versions with numbers in [from, to] ascending
	ListRange(entityType domain.EntityType, entityID uuid.UUID, from, to int) ([]*domain.ContentVersion, error)
}

type versionRepository struct {
	db *gorm.DB
}

// NewVersionRepository creates a new VersionRepository
func NewVersionRepository(db *gorm.DB) VersionRepository {
	return &versionRepository{db: db}
}

func (r *versionRepository) WithTx(tx *gorm.DB) VersionRepository {
	return &versionRepository{db: tx}
}

func (r *versionRepository) Append(version *domain.ContentVersion) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(version).Error; err != nil {
			return err
		}
		if version.PreviousVersionID != nil {
			// The tail row's next pointer is written exactly once,
			// here, when its successor appears
			if err := tx.Model(&domain.ContentVersion{}).
				Where("id = ? AND next_version_id IS NULL", *version.PreviousVersionID).
				Update("next_version_id", version.ID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *versionRepository) FindByEntityAndNumber(entityType domain.EntityType, entityID uuid.UUID, number int) (*domain.ContentVersion, error) {
	var version domain.ContentVersion
	err := r.db.Where("entity_type = ? AND entity_id = ? AND version_number = ?", entityType, entityID, number).
		First(&version).Error
	if err != nil {
		return nil, err
	}
	return &version, nil
}

func (r *versionRepository) FindLatest(entityType domain.EntityType, entityID uuid.UUID) (*domain.ContentVersion, error) {
	var version domain.ContentVersion
	err := r.db.Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("version_number DESC").
		First(&version).Error
	if err != nil {
		return nil, err
	}
	return &version, nil
}

func (r *versionRepository) MaxVersionNumber(entityType domain.EntityType, entityID uuid.UUID) (int, error) {
	var max *int
	err := r.db.Model(&domain.ContentVersion{}).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Select("MAX(version_number)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

func (r *versionRepository) List(entityType domain.EntityType, entityID uuid.UUID, filter domain.HistoryFilter, page domain.Pagination) ([]*domain.ContentVersion, error) {
	var versions []*domain.ContentVersion
	q := r.scoped(entityType, entityID, filter)
	err := q.Order("version_number DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&versions).Error
	return versions, err
}

func (r *versionRepository) Count(entityType domain.EntityType, entityID uuid.UUID, filter domain.HistoryFilter) (int64, error) {
	var count int64
	err := r.scoped(entityType, entityID, filter).Count(&count).Error
	return count, err
}

func (r *versionRepository) ListAll(entityType domain.EntityType, entityID uuid.UUID) ([]*domain.ContentVersion, error) {
	var versions []*domain.ContentVersion
	err := r.db.Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("version_number ASC").
		Find(&versions).Error
	return versions, err
}

func (r *versionRepository) ListRange(entityType domain.EntityType, entityID uuid.UUID, from, to int) ([]*domain.ContentVersion, error) {
	var versions []*domain.ContentVersion
	err := r.db.Where("entity_type = ? AND entity_id = ? AND version_number BETWEEN ? AND ?", entityType, entityID, from, to).
		Order("version_number ASC").
		Find(&versions).Error
	return versions, err
}

func (r *versionRepository) scoped(entityType domain.EntityType, entityID uuid.UUID, filter domain.HistoryFilter) *gorm.DB {
	q := r.db.Model(&domain.ContentVersion{}).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID)
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
	return q
}
