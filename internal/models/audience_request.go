package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// AudienceRequest statuses
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// AudienceRequest is the durable record of a client's submission for admin
// approval. The audiences/platforms/budget/dates columns are a snapshot taken
// at submission time and stay immutable afterwards; only status, review notes
// and the archived flag change. On approval a Campaign is materialized from
// this snapshot and linked back via CampaignID.
type AudienceRequest struct {
	ID       string `json:"id" gorm:"primaryKey;type:uuid"`
	ClientID string `json:"client_id" gorm:"type:uuid;not null;index"`

	// Draft campaign the request was submitted from, and — after approval —
	// the campaign materialized from it.
	CampaignID *string `json:"campaign_id,omitempty" gorm:"type:uuid;index"`

	// Snapshot taken at submission time
	CampaignName          string         `json:"campaign_name" gorm:"type:varchar(255);not null"`
	Audiences             AudienceList   `json:"audiences" gorm:"type:jsonb"`
	SocialPlatforms       pq.StringArray `json:"social_platforms" gorm:"type:text[]"`
	ProgrammaticPlatforms pq.StringArray `json:"programmatic_platforms" gorm:"type:text[]"`
	Budget                float64        `json:"budget" gorm:"not null;default:0"`
	StartDate             *time.Time     `json:"start_date"`
	EndDate               *time.Time     `json:"end_date"`
	Notes                 string         `json:"notes" gorm:"type:text"`

	Status      string     `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	ReviewNotes string     `json:"review_notes" gorm:"type:text"`
	ReviewedBy  *string    `json:"reviewed_by,omitempty" gorm:"type:uuid"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	Archived    bool       `json:"archived" gorm:"default:false;index"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relationships
	Client User `json:"client,omitempty" gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the AudienceRequest model
func (AudienceRequest) TableName() string {
	return "audience_requests"
}

// BeforeCreate is a GORM hook that runs before creating a new record
func (r *AudienceRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// ReviewRequest represents the approve/reject payload from an admin
type ReviewRequest struct {
	Notes string `json:"notes" example:"Looks good, approved"`
}

// AudienceRequestResponse represents the response for request operations
type AudienceRequestResponse struct {
	ID                    string            `json:"id"`
	ClientID              string            `json:"client_id"`
	CampaignID            *string           `json:"campaign_id,omitempty"`
	CampaignName          string            `json:"campaign_name"`
	Audiences             []AudienceSegment `json:"audiences"`
	SocialPlatforms       []string          `json:"social_platforms"`
	ProgrammaticPlatforms []string          `json:"programmatic_platforms"`
	Budget                float64           `json:"budget"`
	StartDate             *time.Time        `json:"start_date"`
	EndDate               *time.Time        `json:"end_date"`
	Notes                 string            `json:"notes"`
	Status                string            `json:"status" example:"pending"`
	ReviewNotes           string            `json:"review_notes"`
	ReviewedBy            *string           `json:"reviewed_by,omitempty"`
	ReviewedAt            *time.Time        `json:"reviewed_at,omitempty"`
	Archived              bool              `json:"archived"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`
}
