package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// WriterProfile is a per-company author persona used by the generation
// service to shape tone and audience of produced copy.
type WriterProfile struct {
	ID        uuid.UUID `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	CompanyID uuid.UUID `gorm:"column:company_id;type:char(36);index" json:"company_id"`
	Name      string    `gorm:"column:name;type:varchar(255)" json:"name"`
	Tone      string    `gorm:"column:tone;type:varchar(100)" json:"tone,omitempty"`
	Audience  string    `gorm:"column:audience;type:varchar(255)" json:"audience,omitempty"`
	// Specialties is a JSON array of topic strings
	Specialties datatypes.JSON `gorm:"column:specialties" json:"specialties,omitempty"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (WriterProfile) TableName() string { return "writer_profiles" }

// BeforeCreate assigns a UUID primary key
func (w *WriterProfile) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// CreateWriterProfileRequest request body for creating a writer profile
type CreateWriterProfileRequest struct {
	Name        string   `json:"name" binding:"required"`
	Tone        string   `json:"tone"`
	Audience    string   `json:"audience"`
	Specialties []string `json:"specialties"`
}

// UpdateWriterProfileRequest request body for updating a writer profile
type UpdateWriterProfileRequest struct {
	Name        *string  `json:"name"`
	Tone        *string  `json:"tone"`
	Audience    *string  `json:"audience"`
	Specialties []string `json:"specialties"`
}
