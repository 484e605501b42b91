package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/draftforge/draftforge-backend/internal/domain"
)

// WriterProfileRepository data access for writer personas
type WriterProfileRepository interface {
	Create(profile *domain.WriterProfile) error
	FindByID(companyID, id uuid.UUID) (*domain.WriterProfile, error)
	ListByCompany(companyID uuid.UUID) ([]*domain.WriterProfile, error)
	Save(profile *domain.WriterProfile) error
	Delete(companyID, id uuid.UUID) error
}

type writerProfileRepository struct {
	db *gorm.DB
}

// NewWriterProfileRepository creates a new WriterProfileRepository
func NewWriterProfileRepository(db *gorm.DB) WriterProfileRepository {
	return &writerProfileRepository{db: db}
}

func (r *writerProfileRepository) Create(profile *domain.WriterProfile) error {
	return r.db.Create(profile).Error
}

func (r *writerProfileRepository) FindByID(companyID, id uuid.UUID) (*domain.WriterProfile, error) {
	var profile domain.WriterProfile
	err := r.db.Where("company_id = ? AND id = ?", companyID, id).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *writerProfileRepository) ListByCompany(companyID uuid.UUID) ([]*domain.WriterProfile, error) {
	var profiles []*domain.WriterProfile
	err := r.db.Where("company_id = ?", companyID).Order("name ASC").Find(&profiles).Error
	return profiles, err
}

func (r *writerProfileRepository) Save(profile *domain.WriterProfile) error {
	return r.db.Save(profile).Error
}

func (r *writerProfileRepository) Delete(companyID, id uuid.UUID) error {
	return r.db.Where("company_id = ? AND id = ?", companyID, id).Delete(&domain.WriterProfile{}).Error
}
