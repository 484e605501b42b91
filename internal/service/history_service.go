package service

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/draftforge/draftforge-backend/internal/common"
	"github.com/draftforge/draftforge-backend/internal/domain"
	"github.com/draftforge/draftforge-backend/internal/repository"
	"github.com/draftforge/draftforge-backend/pkg/cache"
)

// HistoryService filtered, paginated reads over both history logs
type HistoryService interface {
	GetContentHistory(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, filter domain.HistoryFilter, page domain.Pagination) (*domain.ContentHistory, error)
}

type historyService struct {
	versions  repository.VersionRepository
	revisions repository.RevisionRepository
	cache     cache.Service
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(versions repository.VersionRepository, revisions repository.RevisionRepository, cacheSvc cache.Service) HistoryService {
	return &historyService{versions: versions, revisions: revisions, cache: cacheSvc}
}

// GetContentHistory returns one page of versions and revisions plus the
// full-log summary. Version and revision pages share page/limit but are
// counted independently; totalPages is derived from the version count
// alone, so the revision list may run out earlier or later than the
// version list.
func (s *historyService) GetContentHistory(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, filter domain.HistoryFilter, page domain.Pagination) (*domain.ContentHistory, error) {
	if !entityType.Valid() {
		return nil, common.ErrInvalidEntityType
	}
	page.Normalize()

	// Section scoping only applies to the revision log
	versionFilter := filter
	versionFilter.SectionID = nil
	versionFilter.ParagraphIndex = nil

	versions, err := s.versions.List(entityType, entityID, versionFilter, page)
	if err != nil {
		return nil, err
	}

	revisions, err := s.revisions.List(entityType, entityID, filter, page)
	if err != nil {
		return nil, err
	}

	summary, err := s.summarize(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}

	// The full-log summary already counted every version; only filtered
	// requests need a separate count
	total := int64(summary.TotalChanges)
	if !versionFilter.Unfiltered() {
		total, err = s.versions.Count(entityType, entityID, versionFilter)
		if err != nil {
			return nil, err
		}
	}

	return &domain.ContentHistory{
		Versions:   versions,
		Revisions:  revisions,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(page.Limit))),
		Summary:    summary,
	}, nil
}

// summarize scans the entity's full version log. The result is cached
// briefly; any tracked write invalidates it.
func (s *historyService) summarize(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) (domain.HistorySummary, error) {
	// The summary covers the full log independent of request filters,
	// so one cache entry serves every history query for the entity
	var summary domain.HistorySummary
	if err := s.cache.GetHistorySummary(ctx, string(entityType), entityID.String(), &summary); err == nil {
		return summary, nil
	}

	all, err := s.versions.ListAll(entityType, entityID)
	if err != nil {
		return domain.HistorySummary{}, err
	}

	summary = summarizeVersions(all)
	_ = s.cache.SetHistorySummary(ctx, string(entityType), entityID.String(), summary)
	return summary, nil
}

func summarizeVersions(all []*domain.ContentVersion) domain.HistorySummary {
	summary := domain.HistorySummary{Contributors: []domain.ContributorStats{}}
	if len(all) == 0 {
		return summary
	}

	first := all[0].ChangedAt
	last := all[len(all)-1].ChangedAt
	summary.FirstVersionAt = &first
	summary.LastModifiedAt = &last
	summary.TotalChanges = len(all)

	byActor := map[string]*domain.ContributorStats{}
	var order []string
	for _, v := range all {
		switch v.ChangeSource {
		case domain.SourceAIGenerated:
			summary.AIChanges++
		case domain.SourceHumanEdit:
			summary.HumanChanges++
		}

		stats, ok := byActor[v.ChangedBy]
		if !ok {
			stats = &domain.ContributorStats{ChangedBy: v.ChangedBy}
			byActor[v.ChangedBy] = stats
			order = append(order, v.ChangedBy)
		}
		stats.Changes++
		if v.ChangedAt.After(stats.LastChangeAt) {
			stats.LastChangeAt = v.ChangedAt
		}
	}

	for _, actor := range order {
		summary.Contributors = append(summary.Contributors, *byActor[actor])
	}
	return summary
}
