package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/draftforge/draftforge-backend/internal/common"
	"github.com/draftforge/draftforge-backend/internal/domain"
	"github.com/draftforge/draftforge-backend/internal/repository"
)

// SnippetService business logic for reusable snippets
type SnippetService interface {
	List(companyID uuid.UUID, category string, page domain.Pagination) ([]*domain.Snippet, *common.Meta, error)
	Get(companyID, id uuid.UUID) (*domain.Snippet, error)
	Create(companyID uuid.UUID, req *domain.CreateSnippetRequest, actorID string) (*domain.Snippet, error)
	Update(companyID, id uuid.UUID, req *domain.UpdateSnippetRequest, actorID string) (*domain.Snippet, error)
	Delete(companyID, id uuid.UUID, actorID string) error
}

type snippetService struct {
	repo    repository.SnippetRepository
	tracker VersionService
}

// NewSnippetService creates a new SnippetService
func NewSnippetService(repo repository.SnippetRepository, tracker VersionService) SnippetService {
	return &snippetService{repo: repo, tracker: tracker}
}

func (s *snippetService) List(companyID uuid.UUID, category string, page domain.Pagination) ([]*domain.Snippet, *common.Meta, error) {
	page.Normalize()

	snippets, total, err := s.repo.ListByCompany(companyID, category, page)
	if err != nil {
		return nil, nil, err
	}

	meta := &common.Meta{
		CompanyID: companyID.String(),
		Page:      page.Page,
		Limit:     page.Limit,
		Total:     total,
	}
	return snippets, meta, nil
}

func (s *snippetService) Get(companyID, id uuid.UUID) (*domain.Snippet, error) {
	snippet, err := s.repo.FindByID(companyID, id)
	if err != nil {
		return nil, common.ErrSnippetNotFound
	}
	return snippet, nil
}

func (s *snippetService) Create(companyID uuid.UUID, req *domain.CreateSnippetRequest, actorID string) (*domain.Snippet, error) {
	snippet := &domain.Snippet{
		CompanyID: companyID,
		Name:      req.Name,
		Body:      req.Body,
		Category:  req.Category,
	}
	if err := s.repo.Create(snippet); err != nil {
		return nil, err
	}

	snapshot, err := snippet.Snapshot()
	if err != nil {
		return nil, err
	}
	if _, err := s.tracker.TrackChange(TrackChangeInput{
		EntityType:   domain.EntitySnippet,
		EntityID:     snippet.ID,
		ChangeType:   domain.ChangeCreate,
		ChangeSource: domain.SourceHumanEdit,
		ChangedBy:    actorID,
		Snapshot:     snapshot,
	}); err != nil {
		return nil, err
	}
	if _, err := s.tracker.TrackRevision(TrackRevisionInput{
		EntityType:   domain.EntitySnippet,
		EntityID:     snippet.ID,
		ChangeType:   domain.ChangeCreate,
		ChangeSource: domain.SourceHumanEdit,
		ChangedBy:    actorID,
		NewContent:   snippet.Body,
	}); err != nil {
		return nil, err
	}

	return snippet, nil
}

func (s *snippetService) Update(companyID, id uuid.UUID, req *domain.UpdateSnippetRequest, actorID string) (*domain.Snippet, error) {
	snippet, err := s.repo.FindByID(companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrSnippetNotFound
		}
		return nil, err
	}

	previousSnapshot, err := snippet.Snapshot()
	if err != nil {
		return nil, err
	}
	previousBody := snippet.Body

	if req.Name != nil {
		snippet.Name = *req.Name
	}
	if req.Body != nil {
		snippet.Body = *req.Body
	}
	if req.Category != nil {
		snippet.Category = *req.Category
	}

	if err := s.repo.Save(snippet); err != nil {
		return nil, err
	}

	snapshot, err := snippet.Snapshot()
	if err != nil {
		return nil, err
	}
	if _, err := s.tracker.TrackChange(TrackChangeInput{
		EntityType:       domain.EntitySnippet,
		EntityID:         snippet.ID,
		ChangeType:       domain.ChangeEdit,
		ChangeSource:     domain.SourceHumanEdit,
		ChangedBy:        actorID,
		Snapshot:         snapshot,
		PreviousSnapshot: previousSnapshot,
	}); err != nil {
		return nil, err
	}
	if previousBody != snippet.Body {
		if _, err := s.tracker.TrackRevision(TrackRevisionInput{
			EntityType:      domain.EntitySnippet,
			EntityID:        snippet.ID,
			ChangeType:      domain.ChangeEdit,
			ChangeSource:    domain.SourceHumanEdit,
			ChangedBy:       actorID,
			PreviousContent: previousBody,
			NewContent:      snippet.Body,
		}); err != nil {
			return nil, err
		}
	}

	return snippet, nil
}

func (s *snippetService) Delete(companyID, id uuid.UUID, actorID string) error {
	snippet, err := s.repo.FindByID(companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrSnippetNotFound
		}
		return err
	}

	snapshot, err := snippet.Snapshot()
	if err != nil {
		return err
	}

	if err := s.repo.Delete(companyID, id); err != nil {
		return err
	}

	_, err = s.tracker.TrackChange(TrackChangeInput{
		EntityType:   domain.EntitySnippet,
		EntityID:     id,
		ChangeType:   domain.ChangeDelete,
		ChangeSource: domain.SourceHumanEdit,
		ChangedBy:    actorID,
		Snapshot:     snapshot,
	})
	return err
}
