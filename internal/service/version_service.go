package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/draftforge/draftforge-backend/internal/common"
	"github.com/draftforge/draftforge-backend/internal/diff"
	"github.com/draftforge/draftforge-backend/internal/domain"
	"github.com/draftforge/draftforge-backend/internal/repository"
	"github.com/draftforge/draftforge-backend/pkg/cache"
	"github.com/draftforge/draftforge-backend/pkg/logger"
)

// conflictRetries bounds how often a version append is retried after a
// version-number collision before surfacing ErrVersionConflict
const conflictRetries = 3

// TrackChangeInput parameters for recording a new version
type TrackChangeInput struct {
	EntityType   domain.EntityType
	EntityID     uuid.UUID
	ChangeType   domain.ChangeType
	ChangeSource domain.ChangeSource
	ChangedBy    string
	Snapshot     datatypes.JSON
	Description  string
	// PreviousSnapshot, when present, is the diff baseline. Without it
	// the stored ContentDiff stays null.
	PreviousSnapshot datatypes.JSON
	Tags             []string
	Metadata         map[string]interface{}
}

// TrackRevisionInput parameters for recording a text-level edit
type TrackRevisionInput struct {
	EntityType      domain.EntityType
	EntityID        uuid.UUID
	ChangeType      domain.ChangeType
	ChangeSource    domain.ChangeSource
	ChangedBy       string
	PreviousContent string
	NewContent      string
	Notes           *string
	SectionID       *string
	ParagraphIndex  *int
	AIPrompt        *string
	AIModel         *string
}

// VersionService records and reads the append-only content history
type VersionService interface {
	TrackChange(in TrackChangeInput) (*domain.ContentVersion, error)
	TrackRevision(in TrackRevisionInput) (*domain.ContentRevision, error)
	GetVersion(entityType domain.EntityType, entityID uuid.UUID, number int) (*domain.ContentVersion, error)
	GetLatestVersion(entityType domain.EntityType, entityID uuid.UUID) (*domain.ContentVersion, error)
}

type versionService struct {
	versions  repository.VersionRepository
	revisions repository.RevisionRepository
	// locks serializes writers per (entityType, entityID); shared with
	// the restore service so a restore and a trackChange on the same
	// entity never interleave
	locks *common.KeyedMutex
	cache cache.Service
}

// NewVersionService creates a new VersionService. The keyed mutex must
// be the same instance handed to NewRestoreService.
func NewVersionService(versions repository.VersionRepository, revisions repository.RevisionRepository, locks *common.KeyedMutex, cacheSvc cache.Service) VersionService {
	return &versionService{versions: versions, revisions: revisions, locks: locks, cache: cacheSvc}
}

// entityKey builds the per-entity lock key
func entityKey(entityType domain.EntityType, entityID uuid.UUID) string {
	return string(entityType) + ":" + entityID.String()
}

func (s *versionService) TrackChange(in TrackChangeInput) (*domain.ContentVersion, error) {
	if !in.EntityType.Valid() {
		return nil, common.ErrInvalidEntityType
	}

	key := entityKey(in.EntityType, in.EntityID)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	version, err := appendVersion(s.versions, in)
	if err != nil {
		return nil, err
	}
	_ = s.cache.InvalidateHistory(context.Background(), string(in.EntityType), in.EntityID.String())
	return version, nil
}

// appendVersion assigns the next version number, computes the stored
// diff, and persists the row with its chain links. Callers must hold
// the entity's write lock. The unique index on (entity_type, entity_id,
// version_number) catches writers in other processes; collisions are
// retried with a freshly read version number.
func appendVersion(versions repository.VersionRepository, in TrackChangeInput) (*domain.ContentVersion, error) {
	var lastErr error
	for attempt := 0; attempt < conflictRetries; attempt++ {
		version, err := buildVersion(versions, in)
		if err != nil {
			return nil, err
		}

		err = versions.Append(version)
		if err == nil {
			return version, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}

		lastErr = err
		logger.Get().Warn().
			Str("entity_type", string(in.EntityType)).
			Str("entity_id", in.EntityID.String()).
			Int("version_number", version.VersionNumber).
			Int("attempt", attempt+1).
			Msg("version number collision, retrying")
	}
	return nil, fmt.Errorf("%w: %v", common.ErrVersionConflict, lastErr)
}

func buildVersion(versions repository.VersionRepository, in TrackChangeInput) (*domain.ContentVersion, error) {
	maxNumber, err := versions.MaxVersionNumber(in.EntityType, in.EntityID)
	if err != nil {
		return nil, err
	}

	version := &domain.ContentVersion{
		EntityType:        in.EntityType,
		EntityID:          in.EntityID,
		VersionNumber:     maxNumber + 1,
		ChangeType:        in.ChangeType,
		ChangeSource:      in.ChangeSource,
		ChangedBy:         in.ChangedBy,
		ChangeDescription: in.Description,
		ContentSnapshot:   in.Snapshot,
	}

	if maxNumber > 0 {
		prev, err := versions.FindLatest(in.EntityType, in.EntityID)
		if err != nil {
			return nil, err
		}
		version.PreviousVersionID = &prev.ID
	}

	if in.PreviousSnapshot != nil {
		changes := diff.StructuralJSON(in.PreviousSnapshot, in.Snapshot)
		encoded, err := json.Marshal(changes)
		if err != nil {
			return nil, err
		}
		version.ContentDiff = encoded
	}

	if len(in.Tags) > 0 {
		encoded, err := json.Marshal(in.Tags)
		if err != nil {
			return nil, err
		}
		version.Tags = encoded
	}
	if len(in.Metadata) > 0 {
		encoded, err := json.Marshal(in.Metadata)
		if err != nil {
			return nil, err
		}
		version.Metadata = encoded
	}

	return version, nil
}

func (s *versionService) TrackRevision(in TrackRevisionInput) (*domain.ContentRevision, error) {
	if !in.EntityType.Valid() {
		return nil, common.ErrInvalidEntityType
	}
	return appendRevision(s.versions, s.revisions, in)
}

// appendRevision records a text edit. The from/to version numbers copy
// the entity's current version count, an advisory convention that keeps
// the two logs numerically aligned when callers track the version
// first. They are never validated against the version log.
func appendRevision(versions repository.VersionRepository, revisions repository.RevisionRepository, in TrackRevisionInput) (*domain.ContentRevision, error) {
	current, err := versions.MaxVersionNumber(in.EntityType, in.EntityID)
	if err != nil {
		return nil, err
	}
	from := current - 1
	if from < 0 {
		from = 0
	}

	segments := diff.Text(in.PreviousContent, in.NewContent)
	encoded, err := json.Marshal(segments)
	if err != nil {
		return nil, err
	}

	revision := &domain.ContentRevision{
		SectionID:       in.SectionID,
		ParagraphIndex:  in.ParagraphIndex,
		FromVersion:     from,
		ToVersion:       current,
		PreviousContent: in.PreviousContent,
		NewContent:      in.NewContent,
		ContentDiff:     encoded,
		ChangeType:      in.ChangeType,
		ChangeSource:    in.ChangeSource,
		ChangedBy:       in.ChangedBy,
		ChangeNotes:     in.Notes,
		AIPrompt:        in.AIPrompt,
		AIModel:         in.AIModel,
	}
	revision.SetEntity(in.EntityType, in.EntityID)

	if err := revisions.Create(revision); err != nil {
		return nil, err
	}
	return revision, nil
}

func (s *versionService) GetVersion(entityType domain.EntityType, entityID uuid.UUID, number int) (*domain.ContentVersion, error) {
	version, err := s.versions.FindByEntityAndNumber(entityType, entityID, number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrVersionNotFound
		}
		return nil, err
	}
	return version, nil
}

func (s *versionService) GetLatestVersion(entityType domain.EntityType, entityID uuid.UUID) (*domain.ContentVersion, error) {
	version, err := s.versions.FindLatest(entityType, entityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrVersionNotFound
		}
		return nil, err
	}
	return version, nil
}
