package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/draftforge/draftforge-backend/internal/domain"
)

// CompanyRepository data access for tenants
type CompanyRepository interface {
	Create(company *domain.Company) error
	FindByID(id uuid.UUID) (*domain.Company, error)
	List(page domain.Pagination) ([]*domain.Company, int64, error)
	Save(company *domain.Company) error
	Delete(id uuid.UUID) error
}

type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(company *domain.Company) error {
	return r.db.Create(company).Error
}

func (r *companyRepository) FindByID(id uuid.UUID) (*domain.Company, error) {
	var company domain.Company
	if err := r.db.First(&company, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) List(page domain.Pagination) ([]*domain.Company, int64, error) {
	var companies []*domain.Company
	var total int64

	if err := r.db.Model(&domain.Company{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Order("name ASC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&companies).Error
	return companies, total, err
}

func (r *companyRepository) Save(company *domain.Company) error {
	return r.db.Save(company).Error
}

func (r *companyRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&domain.Company{}, "id = ?", id).Error
}
