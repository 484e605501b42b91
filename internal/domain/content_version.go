package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EntityType identifies which content table a version belongs to
type EntityType string

const (
	EntityBlogPost   EntityType = "blog_post"
	EntitySocialPost EntityType = "social_post"
	EntitySnippet    EntityType = "snippet"
)

// Valid reports whether the entity type is one of the known content kinds
func (t EntityType) Valid() bool {
	switch t {
	case EntityBlogPost, EntitySocialPost, EntitySnippet:
		return true
	}
	return false
}

// ChangeType classifies what kind of mutation produced a version
type ChangeType string

const (
	ChangeCreate  ChangeType = "create"
	ChangeEdit    ChangeType = "edit"
	ChangeRestore ChangeType = "restore"
	ChangeDelete  ChangeType = "delete"
)

// ChangeSource classifies who or what produced a change
type ChangeSource string

const (
	SourceAIGenerated ChangeSource = "ai_generated"
	SourceHumanEdit   ChangeSource = "human_edit"
	SourceSystem      ChangeSource = "system"
	SourceImport      ChangeSource = "import"
)

// ContentVersion is one row of the append-only version log. Every
// mutation to a content entity appends exactly one row; rows are never
// updated after creation except for NextVersionID, which is set once
// when the following version is appended.
//
// Versions for one (EntityType, EntityID) pair are numbered 1..n with
// no gaps, and the Previous/Next pointers mirror that numeric order.
// The unique index on (entity_type, entity_id, version_number) is the
// storage-level backstop for that invariant under concurrent writers.
type ContentVersion struct {
	ID            uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	EntityType    EntityType `gorm:"column:entity_type;type:varchar(20);uniqueIndex:idx_entity_version,priority:1" json:"entity_type"`
	EntityID      uuid.UUID  `gorm:"column:entity_id;type:char(36);uniqueIndex:idx_entity_version,priority:2" json:"entity_id"`
	VersionNumber int        `gorm:"column:version_number;uniqueIndex:idx_entity_version,priority:3" json:"version_number"`

	ChangeType        ChangeType   `gorm:"column:change_type;type:varchar(20)" json:"change_type"`
	ChangeSource      ChangeSource `gorm:"column:change_source;type:varchar(20)" json:"change_source"`
	ChangedBy         string       `gorm:"column:changed_by;type:varchar(100);index" json:"changed_by"`
	ChangeDescription string       `gorm:"column:change_description;type:varchar(500)" json:"change_description,omitempty"`

	// ContentSnapshot is the full serialized entity state at this
	// version, produced by the owning content service and opaque here.
	ContentSnapshot datatypes.JSON `gorm:"column:content_snapshot" json:"content_snapshot"`
	// ContentDiff is the shallow structural diff against the previous
	// snapshot, stored for display. Reconstruction always uses the
	// snapshot, never the diff.
	ContentDiff datatypes.JSON `gorm:"column:content_diff" json:"content_diff,omitempty"`

	PreviousVersionID *uint64 `gorm:"column:previous_version_id" json:"previous_version_id,omitempty"`
	NextVersionID     *uint64 `gorm:"column:next_version_id" json:"next_version_id,omitempty"`

	Tags     datatypes.JSON `gorm:"column:tags" json:"tags,omitempty"`
	Metadata datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`

	ChangedAt time.Time `gorm:"column:changed_at;autoCreateTime;index" json:"changed_at"`
}

func (ContentVersion) TableName() string { return "content_versions" }
