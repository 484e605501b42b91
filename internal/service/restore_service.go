package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/draftforge/draftforge-backend/internal/common"
	"github.com/draftforge/draftforge-backend/internal/domain"
	"github.com/draftforge/draftforge-backend/internal/repository"
	"github.com/draftforge/draftforge-backend/pkg/cache"
	"github.com/draftforge/draftforge-backend/pkg/logger"
)

// RestoreService makes a historical version the entity's live state.
// History is never rewritten: a restore appends a new version (and a
// revision when the entity has a text body) describing the rollback.
type RestoreService interface {
	RestoreVersion(entityType domain.EntityType, entityID uuid.UUID, targetVersion int, actorID string, notes *string) error
}

type restoreService struct {
	db        *gorm.DB
	versions  repository.VersionRepository
	revisions repository.RevisionRepository
	blogs     repository.BlogPostRepository
	socials   repository.SocialPostRepository
	snippets  repository.SnippetRepository
	locks     *common.KeyedMutex
	cache     cache.Service
}

// NewRestoreService creates a new RestoreService. The keyed mutex must
// be the same instance handed to NewVersionService so restores and
// concurrent trackChange calls on one entity serialize.
func NewRestoreService(
	db *gorm.DB,
	versions repository.VersionRepository,
	revisions repository.RevisionRepository,
	blogs repository.BlogPostRepository,
	socials repository.SocialPostRepository,
	snippets repository.SnippetRepository,
	locks *common.KeyedMutex,
	cacheSvc cache.Service,
) RestoreService {
	return &restoreService{
		db:        db,
		versions:  versions,
		revisions: revisions,
		blogs:     blogs,
		socials:   socials,
		snippets:  snippets,
		locks:     locks,
		cache:     cacheSvc,
	}
}

// RestoreVersion rewrites the live entity to match targetVersion's
// snapshot inside one transaction that also appends the audit rows.
// Either all three writes commit or none do; a failure leaves both the
// entity and the logs exactly as they were.
func (s *restoreService) RestoreVersion(entityType domain.EntityType, entityID uuid.UUID, targetVersion int, actorID string, notes *string) error {
	if !entityType.Valid() {
		return common.ErrInvalidEntityType
	}

	// Held across the whole transaction so a concurrent trackChange
	// cannot slot a version between the live-state read and the append
	key := entityKey(entityType, entityID)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		versions := s.versions.WithTx(tx)

		target, err := versions.FindByEntityAndNumber(entityType, entityID, targetVersion)
		if err != nil {
			return notFoundOr(err)
		}

		entity, save, err := s.loadEntity(tx, entityType, entityID)
		if err != nil {
			return err
		}

		previousSnapshot, err := entity.Snapshot()
		if err != nil {
			return err
		}
		previousBody := entity.TextBody()

		if err := entity.RestoreSnapshot(target.ContentSnapshot); err != nil {
			return fmt.Errorf("apply snapshot of version %d: %w", targetVersion, err)
		}
		if err := save(); err != nil {
			return err
		}

		description := fmt.Sprintf("restored to version %d", targetVersion)
		if notes != nil && *notes != "" {
			description = *notes
		}

		if _, err := appendVersion(versions, TrackChangeInput{
			EntityType:       entityType,
			EntityID:         entityID,
			ChangeType:       domain.ChangeRestore,
			ChangeSource:     domain.SourceHumanEdit,
			ChangedBy:        actorID,
			Snapshot:         target.ContentSnapshot,
			Description:      description,
			PreviousSnapshot: previousSnapshot,
		}); err != nil {
			return err
		}

		if _, err := appendRevision(versions, s.revisions.WithTx(tx), TrackRevisionInput{
			EntityType:      entityType,
			EntityID:        entityID,
			ChangeType:      domain.ChangeRestore,
			ChangeSource:    domain.SourceHumanEdit,
			ChangedBy:       actorID,
			PreviousContent: previousBody,
			NewContent:      entity.TextBody(),
			Notes:           notes,
		}); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return err
	}

	logger.Get().Info().
		Str("entity_type", string(entityType)).
		Str("entity_id", entityID.String()).
		Int("target_version", targetVersion).
		Str("actor", actorID).
		Msg("version restored")

	_ = s.cache.InvalidateHistory(context.Background(), string(entityType), entityID.String())
	return nil
}

// loadEntity reads the live entity inside the transaction and returns
// it with a save closure bound to the same transaction
func (s *restoreService) loadEntity(tx *gorm.DB, entityType domain.EntityType, entityID uuid.UUID) (domain.ContentEntity, func() error, error) {
	switch entityType {
	case domain.EntityBlogPost:
		repo := s.blogs.WithTx(tx)
		post, err := repo.Get(entityID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, common.ErrBlogPostNotFound
			}
			return nil, nil, err
		}
		return post, func() error { return repo.Save(post) }, nil
	case domain.EntitySocialPost:
		repo := s.socials.WithTx(tx)
		post, err := repo.Get(entityID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, common.ErrSocialPostNotFound
			}
			return nil, nil, err
		}
		return post, func() error { return repo.Save(post) }, nil
	case domain.EntitySnippet:
		repo := s.snippets.WithTx(tx)
		snippet, err := repo.Get(entityID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, common.ErrSnippetNotFound
			}
			return nil, nil, err
		}
		return snippet, func() error { return repo.Save(snippet) }, nil
	}
	return nil, nil, common.ErrInvalidEntityType
}
