package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Campaign statuses
const (
	StatusDraft           = "draft"
	StatusSubmitted       = "submitted"
	StatusPendingReview   = "pending_review"
	StatusApproved        = "approved"
	StatusInProgress      = "in_progress"
	StatusWaitingOnClient = "waiting_on_client"
	StatusDelivered       = "delivered"
	StatusLive            = "live"
	StatusPaused          = "paused"
	StatusCompleted       = "completed"
	StatusFailed          = "failed"
)

// Campaign represents a client's configured advertising effort: audience
// snapshots, platform targets, budget, and schedule, tracked through an
// operational status. A campaign is created in draft and owned exclusively by
// its client until submission; afterwards mutation happens only through the
// status workflow or admin edits that also append activity.
type Campaign struct {
	ID       string `json:"id" gorm:"primaryKey;type:uuid"`
	ClientID string `json:"client_id" gorm:"type:uuid;not null;index"`
	Name     string `json:"name" gorm:"type:varchar(255);not null"`

	// Audience snapshot and platform targets
	Audiences             AudienceList   `json:"audiences" gorm:"type:jsonb"`
	SocialPlatforms       pq.StringArray `json:"social_platforms" gorm:"type:text[]"`
	ProgrammaticPlatforms pq.StringArray `json:"programmatic_platforms" gorm:"type:text[]"`

	// Budget and schedule
	Budget    float64    `json:"budget" gorm:"not null;default:0"`
	StartDate *time.Time `json:"start_date" gorm:"index"`
	EndDate   *time.Time `json:"end_date" gorm:"index"`

	Status     string     `json:"status" gorm:"type:varchar(30);not null;default:'draft';index"`
	Archived   bool       `json:"archived" gorm:"default:false;index"`
	ApprovedAt *time.Time `json:"approved_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Relationships
	Client User `json:"client,omitempty" gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Campaign model
func (Campaign) TableName() string {
	return "campaigns"
}

// BeforeCreate is a GORM hook that runs before creating a new record
func (c *Campaign) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// CreateCampaignRequest represents the request to create a new draft campaign
type CreateCampaignRequest struct {
	Name                  string            `json:"name" binding:"required" example:"Q3 Travel Push"`
	Audiences             []AudienceSegment `json:"audiences"`
	SocialPlatforms       []string          `json:"social_platforms" example:"meta,tiktok"`
	ProgrammaticPlatforms []string          `json:"programmatic_platforms" example:"dv360"`
	Budget                float64           `json:"budget" example:"5000"`
	StartDate             *time.Time        `json:"start_date" example:"2025-09-01T00:00:00Z"`
	EndDate               *time.Time        `json:"end_date" example:"2025-09-30T23:59:59Z"`
}

// UpdateCampaignRequest represents the request to update a draft campaign
type UpdateCampaignRequest struct {
	Name                  string            `json:"name" binding:"required" example:"Q3 Travel Push"`
	Audiences             []AudienceSegment `json:"audiences"`
	SocialPlatforms       []string          `json:"social_platforms"`
	ProgrammaticPlatforms []string          `json:"programmatic_platforms"`
	Budget                float64           `json:"budget" example:"5000"`
	StartDate             *time.Time        `json:"start_date"`
	EndDate               *time.Time        `json:"end_date"`
}

// UpdateCampaignStatusRequest represents the request to advance a campaign's status
type UpdateCampaignStatusRequest struct {
	Status string `json:"status" binding:"required" example:"in_progress"`
	Notes  string `json:"notes" example:"Creative assets received, launching"`
}

// AddAudienceRequest represents the request to add an audience snapshot to a campaign
type AddAudienceRequest struct {
	Audience AudienceSegment `json:"audience" binding:"required"`
}

// SubmitCampaignRequest represents the request to submit a draft for review
type SubmitCampaignRequest struct {
	Notes string `json:"notes" example:"Please review before the end of the week"`
}

// CampaignResponse represents the response for campaign operations
type CampaignResponse struct {
	ID                    string            `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	ClientID              string            `json:"client_id" example:"550e8400-e29b-41d4-a716-446655440001"`
	Name                  string            `json:"name" example:"Q3 Travel Push"`
	Audiences             []AudienceSegment `json:"audiences"`
	SocialPlatforms       []string          `json:"social_platforms"`
	ProgrammaticPlatforms []string          `json:"programmatic_platforms"`
	Budget                float64           `json:"budget" example:"5000"`
	StartDate             *time.Time        `json:"start_date"`
	EndDate               *time.Time        `json:"end_date"`
	Status                string            `json:"status" example:"approved"`
	StatusPhase           string            `json:"status_phase" example:"active"`
	Archived              bool              `json:"archived" example:"false"`
	ApprovedAt            *time.Time        `json:"approved_at,omitempty"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`
}
