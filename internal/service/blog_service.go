package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/draftforge/draftforge-backend/internal/common"
	"github.com/draftforge/draftforge-backend/internal/domain"
	"github.com/draftforge/draftforge-backend/internal/repository"
)

// BlogPostService business logic for blog posts. Every mutation is
// recorded in both history logs before returning.
type BlogPostService interface {
	List(companyID uuid.UUID, page domain.Pagination) ([]*domain.BlogPost, *common.Meta, error)
	Get(companyID, id uuid.UUID) (*domain.BlogPost, error)
	Create(companyID uuid.UUID, req *domain.CreateBlogPostRequest, actorID string) (*domain.BlogPost, error)
	Update(companyID, id uuid.UUID, req *domain.UpdateBlogPostRequest, actorID string) (*domain.BlogPost, error)
	Delete(companyID, id uuid.UUID, actorID string) error
	Generate(companyID uuid.UUID, req *domain.GenerateBlogPostRequest, actorID string) (*domain.BlogPost, error)
}

type blogPostService struct {
	repo      repository.BlogPostRepository
	companies repository.CompanyRepository
	profiles  repository.WriterProfileRepository
	tracker   VersionService
	generator GenerationService
}

// NewBlogPostService creates a new BlogPostService
func NewBlogPostService(
	repo repository.BlogPostRepository,
	companies repository.CompanyRepository,
	profiles repository.WriterProfileRepository,
	tracker VersionService,
	generator GenerationService,
) BlogPostService {
	return &blogPostService{
		repo:      repo,
		companies: companies,
		profiles:  profiles,
		tracker:   tracker,
		generator: generator,
	}
}

func (s *blogPostService) List(companyID uuid.UUID, page domain.Pagination) ([]*domain.BlogPost, *common.Meta, error) {
	page.Normalize()

	posts, total, err := s.repo.ListByCompany(companyID, page)
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

func (s *blogPostService) Get(companyID, id uuid.UUID) (*domain.BlogPost, error) {
	post, err := s.repo.FindByID(companyID, id)
	if err != nil {
		return nil, common.ErrBlogPostNotFound
	}
	return post, nil
}

func (s *blogPostService) Create(companyID uuid.UUID, req *domain.CreateBlogPostRequest, actorID string) (*domain.BlogPost, error) {
	post := &domain.BlogPost{
		CompanyID:       companyID,
		WriterProfileID: req.WriterProfileID,
		Title:           req.Title,
		Body:            req.Body,
		Excerpt:         req.Excerpt,
		MetaDescription: req.MetaDescription,
		Keywords:        req.Keywords,
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

func (s *blogPostService) Update(companyID, id uuid.UUID, req *domain.UpdateBlogPostRequest, actorID string) (*domain.BlogPost, error) {
	post, err := s.repo.FindByID(companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrBlogPostNotFound
		}
		return nil, err
	}

	previousSnapshot, err := post.Snapshot()
	if err != nil {
		return nil, err
	}
	previousBody := post.Body

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Body != nil {
		post.Body = *req.Body
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.MetaDescription != nil {
		post.MetaDescription = *req.MetaDescription
	}
	if req.Keywords != nil {
		post.Keywords = *req.Keywords
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
		EntityType:       domain.EntityBlogPost,
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
			EntityType:      domain.EntityBlogPost,
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

func (s *blogPostService) Delete(companyID, id uuid.UUID, actorID string) error {
	post, err := s.repo.FindByID(companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrBlogPostNotFound
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

	// The history log outlives the entity row
	_, err = s.tracker.TrackChange(TrackChangeInput{
		EntityType:   domain.EntityBlogPost,
		EntityID:     id,
		ChangeType:   domain.ChangeDelete,
		ChangeSource: domain.SourceHumanEdit,
		ChangedBy:    actorID,
		Snapshot:     snapshot,
	})
	return err
}

func (s *blogPostService) Generate(companyID uuid.UUID, req *domain.GenerateBlogPostRequest, actorID string) (*domain.BlogPost, error) {
	company, err := s.companies.FindByID(companyID)
	if err != nil {
		return nil, common.ErrCompanyNotFound
	}
	profile, err := s.profiles.FindByID(companyID, req.WriterProfileID)
	if err != nil {
		return nil, common.ErrWriterProfileNotFound
	}

	draft := s.generator.BlogDraft(company, profile, req.Topic, req.Keywords)

	post := &domain.BlogPost{
		CompanyID:       companyID,
		WriterProfileID: &profile.ID,
		Title:           draft.Title,
		Body:            draft.Body,
		Excerpt:         draft.Excerpt,
		Keywords:        req.Keywords,
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

// trackCreate records the initial version and revision for a new post
func (s *blogPostService) trackCreate(post *domain.BlogPost, actorID string, source domain.ChangeSource, aiPrompt, aiModel *string) error {
	snapshot, err := post.Snapshot()
	if err != nil {
		return err
	}
	if _, err := s.tracker.TrackChange(TrackChangeInput{
		EntityType:   domain.EntityBlogPost,
		EntityID:     post.ID,
		ChangeType:   domain.ChangeCreate,
		ChangeSource: source,
		ChangedBy:    actorID,
		Snapshot:     snapshot,
	}); err != nil {
		return err
	}
	_, err = s.tracker.TrackRevision(TrackRevisionInput{
		EntityType:   domain.EntityBlogPost,
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
