package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ContentRevision is one row of the text-level edit log. Revisions are
// finer-grained than versions: they carry raw before/after text and a
// line diff, optionally scoped to a section or paragraph of the entity.
//
// Exactly one of BlogPostID / SocialPostID / SnippetID is set.
// FromVersion/ToVersion mirror the entity's version count at write time
// as an advisory convention; they are not validated against the version
// log and the two logs stay independent.
type ContentRevision struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`

	BlogPostID   *uuid.UUID `gorm:"column:blog_post_id;type:char(36);index" json:"blog_post_id,omitempty"`
	SocialPostID *uuid.UUID `gorm:"column:social_post_id;type:char(36);index" json:"social_post_id,omitempty"`
	SnippetID    *uuid.UUID `gorm:"column:snippet_id;type:char(36);index" json:"snippet_id,omitempty"`

	SectionID      *string `gorm:"column:section_id;type:varchar(100)" json:"section_id,omitempty"`
	ParagraphIndex *int    `gorm:"column:paragraph_index" json:"paragraph_index,omitempty"`

	FromVersion int `gorm:"column:from_version" json:"from_version"`
	ToVersion   int `gorm:"column:to_version" json:"to_version"`

	PreviousContent string         `gorm:"column:previous_content;type:mediumtext" json:"previous_content"`
	NewContent      string         `gorm:"column:new_content;type:mediumtext" json:"new_content"`
	ContentDiff     datatypes.JSON `gorm:"column:content_diff" json:"content_diff,omitempty"`

	ChangeType   ChangeType   `gorm:"column:change_type;type:varchar(20)" json:"change_type"`
	ChangeSource ChangeSource `gorm:"column:change_source;type:varchar(20)" json:"change_source"`
	ChangedBy    string       `gorm:"column:changed_by;type:varchar(100);index" json:"changed_by"`
	ChangeNotes  *string      `gorm:"column:change_notes;type:varchar(500)" json:"change_notes,omitempty"`

	// Generation provenance, set when the edit came from the mock AI
	AIPrompt *string `gorm:"column:ai_prompt;type:text" json:"ai_prompt,omitempty"`
	AIModel  *string `gorm:"column:ai_model;type:varchar(100)" json:"ai_model,omitempty"`

	ChangedAt time.Time `gorm:"column:changed_at;autoCreateTime;index" json:"changed_at"`
}

func (ContentRevision) TableName() string { return "content_revisions" }

// EntityID returns whichever owner ID is set
func (r *ContentRevision) EntityID() uuid.UUID {
	switch {
	case r.BlogPostID != nil:
		return *r.BlogPostID
	case r.SocialPostID != nil:
		return *r.SocialPostID
	case r.SnippetID != nil:
		return *r.SnippetID
	}
	return uuid.Nil
}

// SetEntity assigns the owner column matching the entity type
func (r *ContentRevision) SetEntity(entityType EntityType, entityID uuid.UUID) {
	switch entityType {
	case EntityBlogPost:
		r.BlogPostID = &entityID
	case EntitySocialPost:
		r.SocialPostID = &entityID
	case EntitySnippet:
		r.SnippetID = &entityID
	}
}
