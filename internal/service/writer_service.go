package service

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/draftforge/draftforge-backend/internal/common"
	"github.com/draftforge/draftforge-backend/internal/domain"
	"github.com/draftforge/draftforge-backend/internal/repository"
)

// WriterProfileService business logic for writer personas
type WriterProfileService interface {
	List(companyID uuid.UUID) ([]*domain.WriterProfile, error)
	Get(companyID, id uuid.UUID) (*domain.WriterProfile, error)
	Create(companyID uuid.UUID, req *domain.CreateWriterProfileRequest) (*domain.WriterProfile, error)
	Update(companyID, id uuid.UUID, req *domain.UpdateWriterProfileRequest) (*domain.WriterProfile, error)
	Delete(companyID, id uuid.UUID) error
}

type writerProfileService struct {
	repo repository.WriterProfileRepository
}

// NewWriterProfileService creates a new WriterProfileService
func NewWriterProfileService(repo repository.WriterProfileRepository) WriterProfileService {
	return &writerProfileService{repo: repo}
}

func (s *writerProfileService) List(companyID uuid.UUID) ([]*domain.WriterProfile, error) {
	return s.repo.ListByCompany(companyID)
}

func (s *writerProfileService) Get(companyID, id uuid.UUID) (*domain.WriterProfile, error) {
	profile, err := s.repo.FindByID(companyID, id)
	if err != nil {
		return nil, common.ErrWriterProfileNotFound
	}
	return profile, nil
}

func (s *writerProfileService) Create(companyID uuid.UUID, req *domain.CreateWriterProfileRequest) (*domain.WriterProfile, error) {
	profile := &domain.WriterProfile{
		CompanyID: companyID,
		Name:      req.Name,
		Tone:      req.Tone,
		Audience:  req.Audience,
	}
	if len(req.Specialties) > 0 {
		encoded, err := json.Marshal(req.Specialties)
		if err != nil {
			return nil, err
		}
		profile.Specialties = encoded
	}

	if err := s.repo.Create(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *writerProfileService) Update(companyID, id uuid.UUID, req *domain.UpdateWriterProfileRequest) (*domain.WriterProfile, error) {
	profile, err := s.repo.FindByID(companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrWriterProfileNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Tone != nil {
		profile.Tone = *req.Tone
	}
	if req.Audience != nil {
		profile.Audience = *req.Audience
	}
	if req.Specialties != nil {
		encoded, err := json.Marshal(req.Specialties)
		if err != nil {
			return nil, err
		}
		profile.Specialties = encoded
	}

	if err := s.repo.Save(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *writerProfileService) Delete(companyID, id uuid.UUID) error {
	if _, err := s.repo.FindByID(companyID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrWriterProfileNotFound
		}
		return err
	}
	return s.repo.Delete(companyID, id)
}
