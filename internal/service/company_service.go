package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/draftforge/draftforge-backend/internal/common"
	"github.com/draftforge/draftforge-backend/internal/domain"
	"github.com/draftforge/draftforge-backend/internal/repository"
)

// CompanyService business logic for tenants
type CompanyService interface {
	List(page domain.Pagination) ([]*domain.Company, *common.Meta, error)
	Get(id uuid.UUID) (*domain.Company, error)
	Create(req *domain.CreateCompanyRequest) (*domain.Company, error)
	Update(id uuid.UUID, req *domain.UpdateCompanyRequest) (*domain.Company, error)
	Delete(id uuid.UUID) error
}

type companyService struct {
	repo repository.CompanyRepository
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(repo repository.CompanyRepository) CompanyService {
	return &companyService{repo: repo}
}

func (s *companyService) List(page domain.Pagination) ([]*domain.Company, *common.Meta, error) {
	page.Normalize()

	companies, total, err := s.repo.List(page)
	if err != nil {
		return nil, nil, err
	}

	meta := &common.Meta{Page: page.Page, Limit: page.Limit, Total: total}
	return companies, meta, nil
}

func (s *companyService) Get(id uuid.UUID) (*domain.Company, error) {
	company, err := s.repo.FindByID(id)
	if err != nil {
		return nil, common.ErrCompanyNotFound
	}
	return company, nil
}

func (s *companyService) Create(req *domain.CreateCompanyRequest) (*domain.Company, error) {
	company := &domain.Company{
		Name:        req.Name,
		Website:     req.Website,
		Industry:    req.Industry,
		Description: req.Description,
		BrandVoice:  req.BrandVoice,
	}
	if err := s.repo.Create(company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *companyService) Update(id uuid.UUID, req *domain.UpdateCompanyRequest) (*domain.Company, error) {
	company, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrCompanyNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Website != nil {
		company.Website = *req.Website
	}
	if req.Industry != nil {
		company.Industry = *req.Industry
	}
	if req.Description != nil {
		company.Description = *req.Description
	}
	if req.BrandVoice != nil {
		company.BrandVoice = *req.BrandVoice
	}

	if err := s.repo.Save(company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *companyService) Delete(id uuid.UUID) error {
	if _, err := s.repo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrCompanyNotFound
		}
		return err
	}
	return s.repo.Delete(id)
}
