package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity action types
const (
	ActionCreated         = "created"
	ActionUpdated         = "updated"
	ActionStatusChanged   = "status_changed"
	ActionCommentAdded    = "comment_added"
	ActionAudienceAdded   = "audience_added"
	ActionAudienceRemoved = "audience_removed"
	ActionApproved        = "approved"
	ActionRejected        = "rejected"
)

// CampaignActivity is the append-only log of all tracked actions on a
// campaign — a superset of the workflow history: every status transition also
// produces an activity row, but not vice versa.
type CampaignActivity struct {
	ID            string    `json:"id" gorm:"primaryKey;type:uuid"`
	CampaignID    string    `json:"campaign_id" gorm:"type:uuid;not null;index"`
	ActorID       string    `json:"actor_id" gorm:"type:uuid;not null;index"`
	ActionType    string    `json:"action_type" gorm:"type:varchar(30);not null;index"`
	ActionDetails JSON      `json:"action_details" gorm:"type:jsonb"`
	CreatedAt     time.Time `json:"created_at" gorm:"index"`

	// Relationships
	Campaign Campaign `json:"-" gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE"`
	Actor    User     `json:"actor,omitempty" gorm:"foreignKey:ActorID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the CampaignActivity model
func (CampaignActivity) TableName() string {
	return "campaign_activities"
}

// BeforeCreate is a GORM hook that runs before creating a new record
func (a *CampaignActivity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// Typed detail payloads, one per action type. Each converts to the jsonb
// column through Details(); readers switch on ActionType to know the shape.

// StatusChangeDetails is the payload for status_changed, approved and
// rejected activity rows.
type StatusChangeDetails struct {
	FromStatus string `json:"from_status,omitempty"`
	ToStatus   string `json:"to_status"`
	Notes      string `json:"notes,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
}

// Details converts the payload to a jsonb map
func (d StatusChangeDetails) Details() JSON {
	out := JSON{"to_status": d.ToStatus}
	if d.FromStatus != "" {
		out["from_status"] = d.FromStatus
	}
	if d.Notes != "" {
		out["notes"] = d.Notes
	}
	if d.RequestID != "" {
		out["request_id"] = d.RequestID
	}
	return out
}

// CommentDetails is the payload for comment_added activity rows. Preview is
// truncated, never the full comment body.
type CommentDetails struct {
	CommentID string `json:"comment_id"`
	Preview   string `json:"preview"`
	IsReply   bool   `json:"is_reply"`
}

// Details converts the payload to a jsonb map
func (d CommentDetails) Details() JSON {
	return JSON{
		"comment_id": d.CommentID,
		"preview":    d.Preview,
		"is_reply":   d.IsReply,
	}
}

// AudienceDetails is the payload for audience_added / audience_removed rows
type AudienceDetails struct {
	AudienceID   string `json:"audience_id"`
	AudienceName string `json:"audience_name"`
}

// Details converts the payload to a jsonb map
func (d AudienceDetails) Details() JSON {
	return JSON{
		"audience_id":   d.AudienceID,
		"audience_name": d.AudienceName,
	}
}

// FieldChangeDetails is the payload for created / updated activity rows
type FieldChangeDetails struct {
	Fields []string `json:"fields,omitempty"`
}

// Details converts the payload to a jsonb map
func (d FieldChangeDetails) Details() JSON {
	out := JSON{}
	if len(d.Fields) > 0 {
		fields := make([]interface{}, len(d.Fields))
		for i, f := range d.Fields {
			fields[i] = f
		}
		out["fields"] = fields
	}
	return out
}

// ActivityResponse represents one activity row
type ActivityResponse struct {
	ID            string    `json:"id"`
	CampaignID    string    `json:"campaign_id"`
	ActorID       string    `json:"actor_id"`
	ActionType    string    `json:"action_type"`
	ActionDetails JSON      `json:"action_details,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
