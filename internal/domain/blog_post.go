package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ContentStatus publishing state shared by blog and social posts
type ContentStatus string

const (
	StatusDraft     ContentStatus = "draft"
	StatusPublished ContentStatus = "published"
	StatusArchived  ContentStatus = "archived"
)

// BlogPost is a long-form content entity owned by a company
type BlogPost struct {
	ID              uuid.UUID     `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	CompanyID       uuid.UUID     `gorm:"column:company_id;type:char(36);index" json:"company_id"`
	WriterProfileID *uuid.UUID    `gorm:"column:writer_profile_id;type:char(36)" json:"writer_profile_id,omitempty"`
	Title           string        `gorm:"column:title;type:varchar(255)" json:"title"`
	Body            string        `gorm:"column:body;type:mediumtext" json:"body"`
	Excerpt         string        `gorm:"column:excerpt;type:varchar(500)" json:"excerpt,omitempty"`
	MetaDescription string        `gorm:"column:meta_description;type:varchar(300)" json:"meta_description,omitempty"`
	Keywords        string        `gorm:"column:keywords;type:varchar(500)" json:"keywords,omitempty"`
	Status          ContentStatus `gorm:"column:status;type:varchar(20);default:'draft'" json:"status"`
	CreatedAt       time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (BlogPost) TableName() string { return "blog_posts" }

// BeforeCreate assigns a UUID primary key
func (p *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *BlogPost) GetID() uuid.UUID        { return p.ID }
func (p *BlogPost) GetCompanyID() uuid.UUID { return p.CompanyID }
func (p *BlogPost) EntityKind() EntityType  { return EntityBlogPost }
func (p *BlogPost) TextBody() string        { return p.Body }

// blogPostSnapshot is the serialized content state stored in the
// version log. Identity and timestamps stay out: a restore must never
// change who owns the post or when it was created.
type blogPostSnapshot struct {
	Title           string        `json:"title"`
	Body            string        `json:"body"`
	Excerpt         string        `json:"excerpt,omitempty"`
	MetaDescription string        `json:"meta_description,omitempty"`
	Keywords        string        `json:"keywords,omitempty"`
	Status          ContentStatus `json:"status"`
}

// Snapshot serializes the post's content fields
func (p *BlogPost) Snapshot() (datatypes.JSON, error) {
	return json.Marshal(blogPostSnapshot{
		Title:           p.Title,
		Body:            p.Body,
		Excerpt:         p.Excerpt,
		MetaDescription: p.MetaDescription,
		Keywords:        p.Keywords,
		Status:          p.Status,
	})
}

// RestoreSnapshot overwrites the post's content fields from a snapshot
func (p *BlogPost) RestoreSnapshot(data datatypes.JSON) error {
	var s blogPostSnapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	p.Title = s.Title
	p.Body = s.Body
	p.Excerpt = s.Excerpt
	p.MetaDescription = s.MetaDescription
	p.Keywords = s.Keywords
	p.Status = s.Status
	return nil
}

// CreateBlogPostRequest request body for creating a blog post
type CreateBlogPostRequest struct {
	WriterProfileID *uuid.UUID `json:"writer_profile_id"`
	Title           string     `json:"title" binding:"required"`
	Body            string     `json:"body" binding:"required"`
	Excerpt         string     `json:"excerpt"`
	MetaDescription string     `json:"meta_description"`
	Keywords        string     `json:"keywords"`
}

// UpdateBlogPostRequest request body for updating a blog post
type UpdateBlogPostRequest struct {
	Title           *string        `json:"title"`
	Body            *string        `json:"body"`
	Excerpt         *string        `json:"excerpt"`
	MetaDescription *string        `json:"meta_description"`
	Keywords        *string        `json:"keywords"`
	Status          *ContentStatus `json:"status"`
}

// GenerateBlogPostRequest request body for templated generation
type GenerateBlogPostRequest struct {
	WriterProfileID uuid.UUID `json:"writer_profile_id" binding:"required"`
	Topic           string    `json:"topic" binding:"required"`
	Keywords        string    `json:"keywords"`
}
