package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/draftforge/draftforge-backend/internal/common"
	"github.com/draftforge/draftforge-backend/internal/diff"
	"github.com/draftforge/draftforge-backend/internal/domain"
	"github.com/draftforge/draftforge-backend/internal/repository"
)

// ComparisonService computes diffs between two named versions
type ComparisonService interface {
	CompareVersions(entityType domain.EntityType, entityID uuid.UUID, fromVersion, toVersion int) (*domain.VersionComparison, error)
}

type comparisonService struct {
	versions repository.VersionRepository
}

// NewComparisonService creates a new ComparisonService
func NewComparisonService(versions repository.VersionRepository) ComparisonService {
	return &comparisonService{versions: versions}
}

// CompareVersions diffs two versions of one entity. Both endpoints must
// exist. The field diff is directional, from → to exactly as passed;
// the range summary covers the normalized numeric span [min, max], so
// an inverted call still yields a meaningful summary.
func (s *comparisonService) CompareVersions(entityType domain.EntityType, entityID uuid.UUID, fromVersion, toVersion int) (*domain.VersionComparison, error) {
	if !entityType.Valid() {
		return nil, common.ErrInvalidEntityType
	}
	if fromVersion < 1 || toVersion < 1 {
		return nil, common.ErrInvalidRange
	}

	from, err := s.versions.FindByEntityAndNumber(entityType, entityID, fromVersion)
	if err != nil {
		return nil, notFoundOr(err)
	}
	to, err := s.versions.FindByEntityAndNumber(entityType, entityID, toVersion)
	if err != nil {
		return nil, notFoundOr(err)
	}

	changes := diff.StructuralJSON(from.ContentSnapshot, to.ContentSnapshot)
	added, removed, modified := diff.Counts(changes)

	lo, hi := fromVersion, toVersion
	if lo > hi {
		lo, hi = hi, lo
	}
	span, err := s.versions.ListRange(entityType, entityID, lo, hi)
	if err != nil {
		return nil, err
	}

	summary := domain.ComparisonSummary{
		FieldsAdded:    added,
		FieldsRemoved:  removed,
		FieldsModified: modified,
		VersionsInSpan: len(span),
		BySource:       map[domain.ChangeSource]int{},
		ByActor:        map[string]int{},
	}
	for _, v := range span {
		summary.BySource[v.ChangeSource]++
		summary.ByActor[v.ChangedBy]++
	}

	return &domain.VersionComparison{
		EntityType:  entityType,
		EntityID:    entityID.String(),
		FromVersion: fromVersion,
		ToVersion:   toVersion,
		Changes:     changes,
		Summary:     summary,
	}, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.ErrVersionNotFound
	}
	return err
}
