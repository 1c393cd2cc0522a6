package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CampaignComment is one entry in the two-level discussion attached to a
// campaign. Root comments own zero or more replies; replies own none.
type CampaignComment struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid"`
	CampaignID      string    `json:"campaign_id" gorm:"type:uuid;not null;index"`
	AuthorID        string    `json:"author_id" gorm:"type:uuid;not null;index"`
	ParentCommentID *string   `json:"parent_comment_id,omitempty" gorm:"type:uuid;index"`
	Content         string    `json:"content" gorm:"type:text;not null"`
	CreatedAt       time.Time `json:"created_at" gorm:"index"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relationships
	Campaign Campaign `json:"-" gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE"`
	Author   User     `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the CampaignComment model
func (CampaignComment) TableName() string {
	return "campaign_comments"
}

// BeforeCreate is a GORM hook that runs before creating a new record
func (c *CampaignComment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// AddCommentRequest represents the request to post a comment
type AddCommentRequest struct {
	Content         string  `json:"content" binding:"required" example:"Can we raise the budget on Meta?"`
	ParentCommentID *string `json:"parent_comment_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// CommentResponse is a comment with its resolved replies. Replies never carry
// replies of their own.
type CommentResponse struct {
	ID              string            `json:"id"`
	CampaignID      string            `json:"campaign_id"`
	AuthorID        string            `json:"author_id"`
	AuthorName      string            `json:"author_name,omitempty"`
	ParentCommentID *string           `json:"parent_comment_id,omitempty"`
	Content         string            `json:"content"`
	CreatedAt       time.Time         `json:"created_at"`
	Replies         []CommentResponse `json:"replies,omitempty"`
}
