package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/draftforge/draftforge-backend/internal/common"
	"github.com/draftforge/draftforge-backend/internal/domain"
	"github.com/draftforge/draftforge-backend/internal/repository"
)

// SocialPostService business logic for social posts
type SocialPostService interface {
	List(companyID uuid.UUID, platform domain.SocialPlatform, page domain.Pagination) ([]*domain.SocialPost, *common.Meta, error)
	Get(companyID, id uuid.UUID) (*domain.SocialPost, error)
	Create(companyID uuid.UUID, req *domain.CreateSocialPostRequest, actorID string) (*domain.SocialPost, error)
	Update(companyID, id uuid.UUID, req *domain.UpdateSocialPostRequest, actorID string) (*domain.SocialPost, error)
	Delete(companyID, id uuid.UUID, actorID string) error
	Generate(companyID uuid.UUID, req *domain.GenerateSocialPostRequest, actorID string) (*domain.SocialPost, error)
}

type socialPostService struct {
	repo      repository.SocialPostRepository
	companies repository.CompanyRepository
	profiles  repository.WriterProfileRepository
	tracker   VersionService
	generator GenerationService
}

// NewSocialPostService creates a new SocialPostService
func NewSocialPostService(
	repo repository.SocialPostRepository,
	companies repository.CompanyRepository,
	profiles repository.WriterProfileRepository,
	tracker VersionService,
	generator GenerationService,
) SocialPostService {
	return &socialPostService{
		repo:      repo,
		companies: companies,
		profiles:  profiles,
		tracker:   tracker,
		generator: generator,
	}
}

func (s *socialPostService) List(companyID uuid.UUID, platform domain.SocialPlatform, page domain.Pagination) ([]*domain.SocialPost, *common.Meta, error) {
	page.Normalize()

	posts, total, err := s.repo.ListByCompany(companyID, platform, page)
	if err != nil {
		return nil, nil, err
	}

	meta := &common.Meta{
		CompanyID: companyID.String(),
		Page:      page.Page,
		Limit:     page.Limit,
		Total:     total,
	}
	return posts, meta, nil
}

func (s *socialPostService) Get(companyID, id uuid.UUID) (*domain.SocialPost, error) {
	post, err := s.repo.FindByID(companyID, id)
	if err != nil {
		return nil, common.ErrSocialPostNotFound
	}
	return post, nil
}

func (s *socialPostService) Create(companyID uuid.UUID, req *domain.CreateSocialPostRequest, actorID string) (*domain.SocialPost, error) {
	post := &domain.SocialPost{
		CompanyID:       companyID,
		WriterProfileID: req.WriterProfileID,
		Platform:        req.Platform,
		Body:            req.Body,
		Hashtags:        req.Hashtags,
		Status:          domain.StatusDraft,
	}
	if err := s.repo.Create(post); err != nil {
		return nil, err
	}

	if err := s.trackCreate(post, actorID, domain.SourceHumanEdit, nil, nil); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *socialPostService) Update(companyID, id uuid.UUID, req *domain.UpdateSocialPostRequest, actorID string) (*domain.SocialPost, error) {
	post, err := s.repo.FindByID(companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrSocialPostNotFound
		}
		return nil, err
	}

	previousSnapshot, err := post.Snapshot()
	if err != nil {
		return nil, err
	}
	previousBody := post.Body

	if req.Platform != nil {
		post.Platform = *req.Platform
	}
	if req.Body != nil {
		post.Body = *req.Body
	}
	if req.Hashtags != nil {
		post.Hashtags = *req.Hashtags
	}
	if req.Status != nil {
		post.Status = *req.Status
	}

	if err := s.repo.Save(post); err != nil {
		return nil, err
	}

	snapshot, err := post.Snapshot()
	if err != nil {
		return nil, err
	}
	if _, err := s.tracker.TrackChange(TrackChangeInput{
		EntityType:       domain.EntitySocialPost,
		EntityID:         post.ID,
		ChangeType:       domain.ChangeEdit,
		ChangeSource:     domain.SourceHumanEdit,
		ChangedBy:        actorID,
		Snapshot:         snapshot,
		PreviousSnapshot: previousSnapshot,
	}); err != nil {
		return nil, err
	}
	if previousBody != post.Body {
		if _, err := s.tracker.TrackRevision(TrackRevisionInput{
			EntityType:      domain.EntitySocialPost,
			EntityID:        post.ID,
			ChangeType:      domain.ChangeEdit,
			ChangeSource:    domain.SourceHumanEdit,
			ChangedBy:       actorID,
			PreviousContent: previousBody,
			NewContent:      post.Body,
		}); err != nil {
			return nil, err
		}
	}

	return post, nil
}

func (s *socialPostService) Delete(companyID, id uuid.UUID, actorID string) error {
	post, err := s.repo.FindByID(companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrSocialPostNotFound
		}
		return err
	}

	snapshot, err := post.Snapshot()
	if err != nil {
		return err
	}

	if err := s.repo.Delete(companyID, id); err != nil {
		return err
	}

	_, err = s.tracker.TrackChange(TrackChangeInput{
		EntityType:   domain.EntitySocialPost,
		EntityID:     id,
		ChangeType:   domain.ChangeDelete,
		ChangeSource: domain.SourceHumanEdit,
		ChangedBy:    actorID,
		Snapshot:     snapshot,
	})
	return err
}

func (s *socialPostService) Generate(companyID uuid.UUID, req *domain.GenerateSocialPostRequest, actorID string) (*domain.SocialPost, error) {
	company, err := s.companies.FindByID(companyID)
	if err != nil {
		return nil, common.ErrCompanyNotFound
	}
	profile, err := s.profiles.FindByID(companyID, req.WriterProfileID)
	if err != nil {
		return nil, common.ErrWriterProfileNotFound
	}

	draft := s.generator.SocialDraft(company, profile, req.Platform, req.Topic)

	post := &domain.SocialPost{
		CompanyID:       companyID,
		WriterProfileID: &profile.ID,
		Platform:        req.Platform,
		Body:            draft.Body,
		Hashtags:        draft.Hashtags,
		Status:          domain.StatusDraft,
	}
	if err := s.repo.Create(post); err != nil {
		return nil, err
	}

	if err := s.trackCreate(post, actorID, domain.SourceAIGenerated, &draft.Prompt, &draft.Model); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *socialPostService) trackCreate(post *domain.SocialPost, actorID string, source domain.ChangeSource, aiPrompt, aiModel *string) error {
	snapshot, err := post.Snapshot()
	if err != nil {
		return err
	}
	if _, err := s.tracker.TrackChange(TrackChangeInput{
		EntityType:   domain.EntitySocialPost,
		EntityID:     post.ID,
		ChangeType:   domain.ChangeCreate,
		ChangeSource: source,
		ChangedBy:    actorID,
		Snapshot:     snapshot,
	}); err != nil {
		return err
	}
	_, err = s.tracker.TrackRevision(TrackRevisionInput{
		EntityType:   domain.EntitySocialPost,
		EntityID:     post.ID,
		ChangeType:   domain.ChangeCreate,
		ChangeSource: source,
		ChangedBy:    actorID,
		NewContent:   post.Body,
		AIPrompt:     aiPrompt,
		AIModel:      aiModel,
	})
	return err
}
