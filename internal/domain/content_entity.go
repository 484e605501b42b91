package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ContentEntity is implemented by every versioned content type. The
// versioning services only see content through this interface: they
// snapshot it, restore it, and read its main text body for revision
// tracking. What the snapshot contains is owned by each entity.
type ContentEntity interface {
	GetID() uuid.UUID
	GetCompanyID() uuid.UUID
	EntityKind() EntityType
	// Snapshot serializes the entity's full content state
	Snapshot() (datatypes.JSON, error)
	// RestoreSnapshot overwrites the entity's content fields from a
	// snapshot, preserving identity and ownership fields
	RestoreSnapshot(data datatypes.JSON) error
	// TextBody returns the entity's primary textual body, used as the
	// revision log's before/after text
	TextBody() string
}
