package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Snippet is a reusable copy block (taglines, boilerplate, CTAs) owned
// by a company
type Snippet struct {
	ID        uuid.UUID `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	CompanyID uuid.UUID `gorm:"column:company_id;type:char(36);index" json:"company_id"`
	Name      string    `gorm:"column:name;type:varchar(255)" json:"name"`
	Body      string    `gorm:"column:body;type:text" json:"body"`
	Category  string    `gorm:"column:category;type:varchar(100)" json:"category,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Snippet) TableName() string { return "snippets" }

// BeforeCreate assigns a UUID primary key
func (s *Snippet) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (s *Snippet) GetID() uuid.UUID        { return s.ID }
func (s *Snippet) GetCompanyID() uuid.UUID { return s.CompanyID }
func (s *Snippet) EntityKind() EntityType  { return EntitySnippet }
func (s *Snippet) TextBody() string        { return s.Body }

type snippetSnapshot struct {
	Name     string `json:"name"`
	Body     string `json:"body"`
	Category string `json:"category,omitempty"`
}

// Snapshot serializes the snippet's content fields
func (s *Snippet) Snapshot() (datatypes.JSON, error) {
	return json.Marshal(snippetSnapshot{Name: s.Name, Body: s.Body, Category: s.Category})
}

// RestoreSnapshot overwrites the snippet's content fields from a snapshot
func (s *Snippet) RestoreSnapshot(data datatypes.JSON) error {
	var snap snippetSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	s.Name = snap.Name
	s.Body = snap.Body
	s.Category = snap.Category
	return nil
}

// CreateSnippetRequest request body for creating a snippet
type CreateSnippetRequest struct {
	Name     string `json:"name" binding:"required"`
	Body     string `json:"body" binding:"required"`
	Category string `json:"category"`
}

// UpdateSnippetRequest request body for updating a snippet
type UpdateSnippetRequest struct {
	Name     *string `json:"name"`
	Body     *string `json:"body"`
	Category *string `json:"category"`
}
