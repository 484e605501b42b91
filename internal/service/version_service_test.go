package service

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/draftforge/draftforge-backend/internal/common"
	"github.com/draftforge/draftforge-backend/internal/diff"
	"github.com/draftforge/draftforge-backend/internal/domain"
	"github.com/draftforge/draftforge-backend/internal/repository"
	"github.com/draftforge/draftforge-backend/pkg/cache"
)

// newTestDB opens an in-memory SQLite database with the full schema.
// TranslateError is on so duplicate-key errors surface the same way
// they do against MySQL.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory DB
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&domain.Company{},
		&domain.WriterProfile{},
		&domain.BlogPost{},
		&domain.SocialPost{},
		&domain.Snippet{},
		&domain.ContentVersion{},
		&domain.ContentRevision{},
	))
	return db
}

type versioningFixture struct {
	db           *gorm.DB
	versionRepo  repository.VersionRepository
	revisionRepo repository.RevisionRepository
	locks        *common.KeyedMutex
	versions     VersionService
}

func newVersioningFixture(t *testing.T) *versioningFixture {
	t.Helper()

	db := newTestDB(t)
	versionRepo := repository.NewVersionRepository(db)
	revisionRepo := repository.NewRevisionRepository(db)
	locks := common.NewKeyedMutex()

	return &versioningFixture{
		db:           db,
		versionRepo:  versionRepo,
		revisionRepo: revisionRepo,
		locks:        locks,
		versions:     NewVersionService(versionRepo, revisionRepo, locks, cache.NewService(nil)),
	}
}

func snapshotJSON(t *testing.T, fields map[string]interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(fields)
	require.NoError(t, err)
	return data
}

func TestTrackChangeAssignsSequentialNumbers(t *testing.T) {
	f := newVersioningFixture(t)
	entityID := uuid.New()

	for i := 0; i < 5; i++ {
		changeType := domain.ChangeEdit
		if i == 0 {
			changeType = domain.ChangeCreate
		}
		v, err := f.versions.TrackChange(TrackChangeInput{
			EntityType:   domain.EntityBlogPost,
			EntityID:     entityID,
			ChangeType:   changeType,
			ChangeSource: domain.SourceHumanEdit,
			ChangedBy:    "user-1",
			Snapshot:     snapshotJSON(t, map[string]interface{}{"title": "t", "rev": i}),
		})
		require.NoError(t, err)
		assert.Equal(t, i+1, v.VersionNumber)
	}

	// Chain links: each row points at its predecessor, and every row
	// except the tail has been back-patched with its successor
	all, err := f.versionRepo.ListAll(domain.EntityBlogPost, entityID)
	require.NoError(t, err)
	require.Len(t, all, 5)

	assert.Nil(t, all[0].PreviousVersionID)
	for i := 1; i < 5; i++ {
		require.NotNil(t, all[i].PreviousVersionID)
		assert.Equal(t, all[i-1].ID, *all[i].PreviousVersionID)
		require.NotNil(t, all[i-1].NextVersionID)
		assert.Equal(t, all[i].ID, *all[i-1].NextVersionID)
	}
	assert.Nil(t, all[4].NextVersionID)
}

func TestTrackChangeIsolatesEntities(t *testing.T) {
	f := newVersioningFixture(t)
	first, second := uuid.New(), uuid.New()

	for _, id := range []uuid.UUID{first, second} {
		v, err := f.versions.TrackChange(TrackChangeInput{
			EntityType:   domain.EntitySnippet,
			EntityID:     id,
			ChangeType:   domain.ChangeCreate,
			ChangeSource: domain.SourceHumanEdit,
			ChangedBy:    "user-1",
			Snapshot:     snapshotJSON(t, map[string]interface{}{"body": "x"}),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, v.VersionNumber)
	}

	// Same ID under a different entity type is its own sequence too
	v, err := f.versions.TrackChange(TrackChangeInput{
		EntityType:   domain.EntityBlogPost,
		EntityID:     first,
		ChangeType:   domain.ChangeCreate,
		ChangeSource: domain.SourceHumanEdit,
		ChangedBy:    "user-1",
		Snapshot:     snapshotJSON(t, map[string]interface{}{"title": "x"}),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, v.VersionNumber)
}

func TestTrackChangeStoresDiffAgainstBaseline(t *testing.T) {
	f := newVersioningFixture(t)
	entityID := uuid.New()

	v1, err := f.versions.TrackChange(TrackChangeInput{
		EntityType:   domain.EntityBlogPost,
		EntityID:     entityID,
		ChangeType:   domain.ChangeCreate,
		ChangeSource: domain.SourceAIGenerated,
		ChangedBy:    "model-bot",
		Snapshot:     snapshotJSON(t, map[string]interface{}{"title": "Old", "body": "same"}),
	})
	require.NoError(t, err)
	assert.Nil(t, v1.ContentDiff, "first version has no baseline")

	v2, err := f.versions.TrackChange(TrackChangeInput{
		EntityType:       domain.EntityBlogPost,
		EntityID:         entityID,
		ChangeType:       domain.ChangeEdit,
		ChangeSource:     domain.SourceHumanEdit,
		ChangedBy:        "user-1",
		Snapshot:         snapshotJSON(t, map[string]interface{}{"title": "New", "body": "same", "excerpt": "added"}),
		PreviousSnapshot: v1.ContentSnapshot,
	})
	require.NoError(t, err)
	require.NotNil(t, v2.ContentDiff)

	var changes []diff.FieldChange
	require.NoError(t, json.Unmarshal(v2.ContentDiff, &changes))

	byField := map[string]diff.FieldChange{}
	for _, c := range changes {
		byField[c.Field] = c
	}
	assert.Equal(t, diff.FieldModified, byField["title"].Type)
	assert.Equal(t, diff.FieldAdded, byField["excerpt"].Type)
	_, hasBody := byField["body"]
	assert.False(t, hasBody, "unchanged fields stay out of the diff")
}

func TestTrackChangeRejectsUnknownEntityType(t *testing.T) {
	f := newVersioningFixture(t)

	_, err := f.versions.TrackChange(TrackChangeInput{
		EntityType: domain.EntityType("landing_page"),
		EntityID:   uuid.New(),
	})
	assert.ErrorIs(t, err, common.ErrInvalidEntityType)
}

func TestConcurrentTrackChangeStaysContiguous(t *testing.T) {
	f := newVersioningFixture(t)
	entityID := uuid.New()

	const writers = 8
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = f.versions.TrackChange(TrackChangeInput{
				EntityType:   domain.EntityBlogPost,
				EntityID:     entityID,
				ChangeType:   domain.ChangeEdit,
				ChangeSource: domain.SourceHumanEdit,
				ChangedBy:    "user-1",
				Snapshot:     snapshotJSON(t, map[string]interface{}{"n": n}),
			})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	all, err := f.versionRepo.ListAll(domain.EntityBlogPost, entityID)
	require.NoError(t, err)
	require.Len(t, all, writers)
	for i, v := range all {
		assert.Equal(t, i+1, v.VersionNumber)
	}
}

func TestTrackRevisionAlignsWithVersionLog(t *testing.T) {
	f := newVersioningFixture(t)
	entityID := uuid.New()

	for i := 0; i < 3; i++ {
		_, err := f.versions.TrackChange(TrackChangeInput{
			EntityType:   domain.EntityBlogPost,
			EntityID:     entityID,
			ChangeType:   domain.ChangeEdit,
			ChangeSource: domain.SourceHumanEdit,
			ChangedBy:    "user-1",
			Snapshot:     snapshotJSON(t, map[string]interface{}{"n": i}),
		})
		require.NoError(t, err)
	}

	rev, err := f.versions.TrackRevision(TrackRevisionInput{
		EntityType:      domain.EntityBlogPost,
		EntityID:        entityID,
		ChangeType:      domain.ChangeEdit,
		ChangeSource:    domain.SourceHumanEdit,
		ChangedBy:       "user-1",
		PreviousContent: "first line\nsecond line\n",
		NewContent:      "first line\nrewritten line\n",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, rev.FromVersion)
	assert.Equal(t, 3, rev.ToVersion)
	require.NotNil(t, rev.BlogPostID)
	assert.Equal(t, entityID, *rev.BlogPostID)

	var segments []diff.TextSegment
	require.NoError(t, json.Unmarshal(rev.ContentDiff, &segments))
	require.NotEmpty(t, segments)

	var removed, added []string
	for _, seg := range segments {
		if seg.Removed {
			removed = append(removed, seg.Value)
		}
		if seg.Added {
			added = append(added, seg.Value)
		}
	}
	assert.Contains(t, removed, "second line\n")
	assert.Contains(t, added, "rewritten line\n")
}

func TestTrackRevisionOnUnversionedEntity(t *testing.T) {
	f := newVersioningFixture(t)

	rev, err := f.versions.TrackRevision(TrackRevisionInput{
		EntityType:      domain.EntitySnippet,
		EntityID:        uuid.New(),
		ChangeType:      domain.ChangeCreate,
		ChangeSource:    domain.SourceHumanEdit,
		ChangedBy:       "user-1",
		PreviousContent: "",
		NewContent:      "hello\n",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, rev.FromVersion)
	assert.Equal(t, 0, rev.ToVersion)
}

func TestGetVersion(t *testing.T) {
	f := newVersioningFixture(t)
	entityID := uuid.New()

	_, err := f.versions.GetVersion(domain.EntityBlogPost, entityID, 1)
	assert.ErrorIs(t, err, common.ErrVersionNotFound)

	_, err = f.versions.GetLatestVersion(domain.EntityBlogPost, entityID)
	assert.ErrorIs(t, err, common.ErrVersionNotFound)

	tracked, err := f.versions.TrackChange(TrackChangeInput{
		EntityType:   domain.EntityBlogPost,
		EntityID:     entityID,
		ChangeType:   domain.ChangeCreate,
		ChangeSource: domain.SourceHumanEdit,
		ChangedBy:    "user-1",
		Snapshot:     snapshotJSON(t, map[string]interface{}{"title": "t"}),
	})
	require.NoError(t, err)

	got, err := f.versions.GetVersion(domain.EntityBlogPost, entityID, 1)
	require.NoError(t, err)
	assert.Equal(t, tracked.ID, got.ID)

	latest, err := f.versions.GetLatestVersion(domain.EntityBlogPost, entityID)
	require.NoError(t, err)
	assert.Equal(t, tracked.ID, latest.ID)
}
