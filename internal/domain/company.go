package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company represents a tenant. All content entities belong to exactly
// one company.
type Company struct {
	ID          uuid.UUID `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	Name        string    `gorm:"column:name;type:varchar(255)" json:"name"`
	Website     string    `gorm:"column:website;type:varchar(500)" json:"website,omitempty"`
	Industry    string    `gorm:"column:industry;type:varchar(100)" json:"industry,omitempty"`
	Description string    `gorm:"column:description;type:text" json:"description,omitempty"`
	// BrandVoice is a short free-text direction ("confident, playful,
	// no jargon") consumed by the generation service
	BrandVoice string    `gorm:"column:brand_voice;type:varchar(500)" json:"brand_voice,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Company) TableName() string { return "companies" }

// BeforeCreate assigns a UUID primary key
func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CreateCompanyRequest request body for creating a company
type CreateCompanyRequest struct {
	Name        string `json:"name" binding:"required"`
	Website     string `json:"website"`
	Industry    string `json:"industry"`
	Description string `json:"description"`
	BrandVoice  string `json:"brand_voice"`
}

// UpdateCompanyRequest request body for updating a company
type UpdateCompanyRequest struct {
	Name        *string `json:"name"`
	Website     *string `json:"website"`
	Industry    *string `json:"industry"`
	Description *string `json:"description"`
	BrandVoice  *string `json:"brand_voice"`
}
