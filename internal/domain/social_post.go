package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SocialPlatform target network for a social post
type SocialPlatform string

const (
	PlatformTwitter   SocialPlatform = "twitter"
	PlatformLinkedIn  SocialPlatform = "linkedin"
	PlatformFacebook  SocialPlatform = "facebook"
	PlatformInstagram SocialPlatform = "instagram"
)

// SocialPost is a short-form content entity owned by a company
type SocialPost struct {
	ID              uuid.UUID      `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	CompanyID       uuid.UUID      `gorm:"column:company_id;type:char(36);index" json:"company_id"`
	WriterProfileID *uuid.UUID     `gorm:"column:writer_profile_id;type:char(36)" json:"writer_profile_id,omitempty"`
	Platform        SocialPlatform `gorm:"column:platform;type:varchar(20)" json:"platform"`
	Body            string         `gorm:"column:body;type:text" json:"body"`
	Hashtags        string         `gorm:"column:hashtags;type:varchar(500)" json:"hashtags,omitempty"`
	Status          ContentStatus  `gorm:"column:status;type:varchar(20);default:'draft'" json:"status"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SocialPost) TableName() string { return "social_posts" }

// BeforeCreate assigns a UUID primary key
func (p *SocialPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *SocialPost) GetID() uuid.UUID        { return p.ID }
func (p *SocialPost) GetCompanyID() uuid.UUID { return p.CompanyID }
func (p *SocialPost) EntityKind() EntityType  { return EntitySocialPost }
func (p *SocialPost) TextBody() string        { return p.Body }

type socialPostSnapshot struct {
	Platform SocialPlatform `json:"platform"`
	Body     string         `json:"body"`
	Hashtags string         `json:"hashtags,omitempty"`
	Status   ContentStatus  `json:"status"`
}

// Snapshot serializes the post's content fields
func (p *SocialPost) Snapshot() (datatypes.JSON, error) {
	return json.Marshal(socialPostSnapshot{
		Platform: p.Platform,
		Body:     p.Body,
		Hashtags: p.Hashtags,
		Status:   p.Status,
	})
}

// RestoreSnapshot overwrites the post's content fields from a snapshot
func (p *SocialPost) RestoreSnapshot(data datatypes.JSON) error {
	var s socialPostSnapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	p.Platform = s.Platform
	p.Body = s.Body
	p.Hashtags = s.Hashtags
	p.Status = s.Status
	return nil
}

// CreateSocialPostRequest request body for creating a social post
type CreateSocialPostRequest struct {
	WriterProfileID *uuid.UUID     `json:"writer_profile_id"`
	Platform        SocialPlatform `json:"platform" binding:"required"`
	Body            string         `json:"body" binding:"required"`
	Hashtags        string         `json:"hashtags"`
}

// UpdateSocialPostRequest request body for updating a social post
type UpdateSocialPostRequest struct {
	Platform *SocialPlatform `json:"platform"`
	Body     *string         `json:"body"`
	Hashtags *string         `json:"hashtags"`
	Status   *ContentStatus  `json:"status"`
}

// GenerateSocialPostRequest request body for templated generation
type GenerateSocialPostRequest struct {
	WriterProfileID uuid.UUID      `json:"writer_profile_id" binding:"required"`
	Platform        SocialPlatform `json:"platform" binding:"required"`
	Topic           string         `json:"topic" binding:"required"`
}
