package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/draftforge/draftforge-backend/internal/common"
	"github.com/draftforge/draftforge-backend/internal/domain"
	"github.com/draftforge/draftforge-backend/internal/repository"
	"github.com/draftforge/draftforge-backend/pkg/cache"
)

type restoreFixture struct {
	*versioningFixture
	blogRepo repository.BlogPostRepository
	restore  RestoreService
}

func newRestoreFixture(t *testing.T) *restoreFixture {
	t.Helper()

	base := newVersioningFixture(t)
	blogRepo := repository.NewBlogPostRepository(base.db)
	socialRepo := repository.NewSocialPostRepository(base.db)
	snippetRepo := repository.NewSnippetRepository(base.db)

	return &restoreFixture{
		versioningFixture: base,
		blogRepo:          blogRepo,
		restore: NewRestoreService(
			base.db, base.versionRepo, base.revisionRepo,
			blogRepo, socialRepo, snippetRepo,
			base.locks, cache.NewService(nil),
		),
	}
}

// seedBlogPost persists a post and records a version per body, the way
// the blog service does on create and update.
func (f *restoreFixture) seedBlogPost(t *testing.T, bodies ...string) *domain.BlogPost {
	t.Helper()

	post := &domain.BlogPost{
		CompanyID: uuid.New(),
		Title:     "Launch notes",
		Body:      bodies[0],
		Status:    domain.StatusDraft,
	}
	require.NoError(t, f.blogRepo.Create(post))

	var previous []byte
	for i, body := range bodies {
		post.Body = body
		if i > 0 {
			require.NoError(t, f.blogRepo.Save(post))
		}
		snapshot, err := post.Snapshot()
		require.NoError(t, err)

		changeType := domain.ChangeEdit
		if i == 0 {
			changeType = domain.ChangeCreate
		}
		_, err = f.versions.TrackChange(TrackChangeInput{
			EntityType:       domain.EntityBlogPost,
			EntityID:         post.ID,
			ChangeType:       changeType,
			ChangeSource:     domain.SourceHumanEdit,
			ChangedBy:        "user-1",
			Snapshot:         snapshot,
			PreviousSnapshot: previous,
		})
		require.NoError(t, err)
		previous = snapshot
	}
	return post
}

func TestRestoreVersionRewindsLiveState(t *testing.T) {
	f := newRestoreFixture(t)
	post := f.seedBlogPost(t, "draft one\n", "draft two\n", "draft three\n")

	err := f.restore.RestoreVersion(domain.EntityBlogPost, post.ID, 1, "editor-9", nil)
	require.NoError(t, err)

	reloaded, err := f.blogRepo.Get(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "draft one\n", reloaded.Body)
	assert.Equal(t, post.CompanyID, reloaded.CompanyID, "restore never touches ownership")

	// The restore appended version 4 rather than rewriting history
	all, err := f.versionRepo.ListAll(domain.EntityBlogPost, post.ID)
	require.NoError(t, err)
	require.Len(t, all, 4)

	last := all[3]
	assert.Equal(t, 4, last.VersionNumber)
	assert.Equal(t, domain.ChangeRestore, last.ChangeType)
	assert.Equal(t, "editor-9", last.ChangedBy)
	assert.Equal(t, "restored to version 1", last.ChangeDescription)
	assert.JSONEq(t, string(all[0].ContentSnapshot), string(last.ContentSnapshot))
	assert.NotNil(t, last.ContentDiff, "diff against the pre-restore state")

	// And a matching revision with the text-level rollback
	revisions, err := f.revisionRepo.List(domain.EntityBlogPost, post.ID, domain.HistoryFilter{}, domain.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.NotEmpty(t, revisions)
	assert.Equal(t, "draft three\n", revisions[0].PreviousContent)
	assert.Equal(t, "draft one\n", revisions[0].NewContent)
	assert.Equal(t, domain.ChangeRestore, revisions[0].ChangeType)
}

func TestRestoreVersionUsesNotesAsDescription(t *testing.T) {
	f := newRestoreFixture(t)
	post := f.seedBlogPost(t, "one\n", "two\n")

	notes := "reverting the compliance edit"
	require.NoError(t, f.restore.RestoreVersion(domain.EntityBlogPost, post.ID, 1, "editor-9", &notes))

	latest, err := f.versionRepo.FindLatest(domain.EntityBlogPost, post.ID)
	require.NoError(t, err)
	assert.Equal(t, notes, latest.ChangeDescription)
}

func TestRestoreVersionMissingTargetLeavesStateUntouched(t *testing.T) {
	f := newRestoreFixture(t)
	post := f.seedBlogPost(t, "one\n", "two\n")

	err := f.restore.RestoreVersion(domain.EntityBlogPost, post.ID, 9, "editor-9", nil)
	assert.ErrorIs(t, err, common.ErrVersionNotFound)

	reloaded, err := f.blogRepo.Get(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "two\n", reloaded.Body)

	count, err := f.versionRepo.Count(domain.EntityBlogPost, post.ID, domain.HistoryFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, count, "failed restore appends nothing")
}

// failingRevisionRepo errors on every write, standing in for a
// revision store outage mid-restore
type failingRevisionRepo struct {
	repository.RevisionRepository
	err error
}

func (r *failingRevisionRepo) WithTx(tx *gorm.DB) repository.RevisionRepository { return r }

func (r *failingRevisionRepo) Create(*domain.ContentRevision) error { return r.err }

func TestRestoreVersionRollsBackOnRevisionWriteFailure(t *testing.T) {
	f := newRestoreFixture(t)
	post := f.seedBlogPost(t, "one\n", "two\n")

	storeErr := errors.New("revision store unavailable")
	broken := NewRestoreService(
		f.db, f.versionRepo,
		&failingRevisionRepo{RevisionRepository: f.revisionRepo, err: storeErr},
		f.blogRepo,
		repository.NewSocialPostRepository(f.db),
		repository.NewSnippetRepository(f.db),
		f.locks, cache.NewService(nil),
	)

	err := broken.RestoreVersion(domain.EntityBlogPost, post.ID, 1, "editor-9", nil)
	assert.ErrorIs(t, err, storeErr)

	// The entity rewrite and the version append share the failed
	// revision's transaction, so both rolled back
	reloaded, err := f.blogRepo.Get(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "two\n", reloaded.Body)

	count, err := f.versionRepo.Count(domain.EntityBlogPost, post.ID, domain.HistoryFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, count, "no restore version appended")

	revCount, err := f.revisionRepo.Count(domain.EntityBlogPost, post.ID, domain.HistoryFilter{})
	require.NoError(t, err)
	assert.Zero(t, revCount)
}

func TestRestoreVersionMissingEntity(t *testing.T) {
	f := newRestoreFixture(t)
	orphan := uuid.New()

	// A version log can outlive its entity after a delete
	_, err := f.versions.TrackChange(TrackChangeInput{
		EntityType:   domain.EntityBlogPost,
		EntityID:     orphan,
		ChangeType:   domain.ChangeCreate,
		ChangeSource: domain.SourceHumanEdit,
		ChangedBy:    "user-1",
		Snapshot:     snapshotJSON(t, map[string]interface{}{"title": "gone"}),
	})
	require.NoError(t, err)

	err = f.restore.RestoreVersion(domain.EntityBlogPost, orphan, 1, "editor-9", nil)
	assert.ErrorIs(t, err, common.ErrBlogPostNotFound)
}

func TestRestoreVersionRejectsUnknownEntityType(t *testing.T) {
	f := newRestoreFixture(t)

	err := f.restore.RestoreVersion(domain.EntityType("newsletter"), uuid.New(), 1, "editor-9", nil)
	assert.ErrorIs(t, err, common.ErrInvalidEntityType)
}
