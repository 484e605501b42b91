package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/draftforge/draftforge-backend/internal/domain"
)

func newRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&domain.ContentVersion{}, &domain.ContentRevision{}))
	return db
}

func appendN(t *testing.T, repo VersionRepository, entityID uuid.UUID, n int) []*domain.ContentVersion {
	t.Helper()

	out := make([]*domain.ContentVersion, 0, n)
	var prevID *uint64
	for i := 1; i <= n; i++ {
		v := &domain.ContentVersion{
			EntityType:        domain.EntityBlogPost,
			EntityID:          entityID,
			VersionNumber:     i,
			ChangeType:        domain.ChangeEdit,
			ChangeSource:      domain.SourceHumanEdit,
			ChangedBy:         "user-1",
			ContentSnapshot:   []byte(`{}`),
			PreviousVersionID: prevID,
		}
		require.NoError(t, repo.Append(v))
		prevID = &v.ID
		out = append(out, v)
	}
	return out
}

func TestAppendLinksChain(t *testing.T) {
	repo := NewVersionRepository(newRepoTestDB(t))
	entityID := uuid.New()
	appendN(t, repo, entityID, 3)

	all, err := repo.ListAll(domain.EntityBlogPost, entityID)
	require.NoError(t, err)
	require.Len(t, all, 3)

	// Append back-patches the prior tail's next_version_id
	require.NotNil(t, all[0].NextVersionID)
	assert.Equal(t, all[1].ID, *all[0].NextVersionID)
	require.NotNil(t, all[1].NextVersionID)
	assert.Equal(t, all[2].ID, *all[1].NextVersionID)
	assert.Nil(t, all[2].NextVersionID)
}

func TestAppendDuplicateNumberIsTranslated(t *testing.T) {
	repo := NewVersionRepository(newRepoTestDB(t))
	entityID := uuid.New()
	appendN(t, repo, entityID, 1)

	err := repo.Append(&domain.ContentVersion{
		EntityType:      domain.EntityBlogPost,
		EntityID:        entityID,
		VersionNumber:   1,
		ChangeType:      domain.ChangeEdit,
		ChangeSource:    domain.SourceHumanEdit,
		ChangedBy:       "user-2",
		ContentSnapshot: []byte(`{}`),
	})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestMaxVersionNumber(t *testing.T) {
	repo := NewVersionRepository(newRepoTestDB(t))
	entityID := uuid.New()

	n, err := repo.MaxVersionNumber(domain.EntityBlogPost, entityID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	appendN(t, repo, entityID, 4)
	n, err = repo.MaxVersionNumber(domain.EntityBlogPost, entityID)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestListRange(t *testing.T) {
	repo := NewVersionRepository(newRepoTestDB(t))
	entityID := uuid.New()
	appendN(t, repo, entityID, 5)

	span, err := repo.ListRange(domain.EntityBlogPost, entityID, 2, 4)
	require.NoError(t, err)
	require.Len(t, span, 3)
	assert.Equal(t, 2, span[0].VersionNumber)
	assert.Equal(t, 4, span[2].VersionNumber)
}

func TestListFiltersByActorAndDate(t *testing.T) {
	db := newRepoTestDB(t)
	repo := NewVersionRepository(db)
	entityID := uuid.New()

	old := &domain.ContentVersion{
		EntityType: domain.EntityBlogPost, EntityID: entityID, VersionNumber: 1,
		ChangeType: domain.ChangeCreate, ChangeSource: domain.SourceAIGenerated,
		ChangedBy: "model-bot", ContentSnapshot: []byte(`{}`),
	}
	require.NoError(t, repo.Append(old))
	recent := &domain.ContentVersion{
		EntityType: domain.EntityBlogPost, EntityID: entityID, VersionNumber: 2,
		ChangeType: domain.ChangeEdit, ChangeSource: domain.SourceHumanEdit,
		ChangedBy: "user-1", ContentSnapshot: []byte(`{}`),
	}
	require.NoError(t, repo.Append(recent))

	// Push the first row into the past
	yesterday := time.Now().Add(-24 * time.Hour)
	require.NoError(t, db.Model(&domain.ContentVersion{}).Where("id = ?", old.ID).Update("changed_at", yesterday).Error)

	page := domain.Pagination{Page: 1, Limit: 10}

	byActor, err := repo.List(domain.EntityBlogPost, entityID, domain.HistoryFilter{ChangedBy: []string{"user-1"}}, page)
	require.NoError(t, err)
	require.Len(t, byActor, 1)
	assert.Equal(t, 2, byActor[0].VersionNumber)

	cutoff := time.Now().Add(-time.Hour)
	sinceCutoff, err := repo.List(domain.EntityBlogPost, entityID, domain.HistoryFilter{StartDate: &cutoff}, page)
	require.NoError(t, err)
	require.Len(t, sinceCutoff, 1)
	assert.Equal(t, 2, sinceCutoff[0].VersionNumber)

	until, err := repo.List(domain.EntityBlogPost, entityID, domain.HistoryFilter{EndDate: &cutoff}, page)
	require.NoError(t, err)
	require.Len(t, until, 1)
	assert.Equal(t, 1, until[0].VersionNumber)
}
