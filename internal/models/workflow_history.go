package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CampaignWorkflowHistory is the append-only log of status transitions on a
// campaign. FromStatus is null for the initial transition. One row per
// transition, chronological for audit, read descending for display.
type CampaignWorkflowHistory struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid"`
	CampaignID string    `json:"campaign_id" gorm:"type:uuid;not null;index"`
	ActorID    string    `json:"actor_id" gorm:"type:uuid;not null;index"`
	FromStatus *string   `json:"from_status,omitempty" gorm:"type:varchar(30)"`
	ToStatus   string    `json:"to_status" gorm:"type:varchar(30);not null"`
	Notes      string    `json:"notes" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`

	// Relationships
	Campaign Campaign `json:"-" gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE"`
	Actor    User     `json:"actor,omitempty" gorm:"foreignKey:ActorID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the CampaignWorkflowHistory model
func (CampaignWorkflowHistory) TableName() string {
	return "campaign_workflow_histories"
}

// BeforeCreate is a GORM hook that runs before creating a new record
func (h *CampaignWorkflowHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	return nil
}

// WorkflowHistoryResponse represents one transition row
type WorkflowHistoryResponse struct {
	ID         string    `json:"id"`
	CampaignID string    `json:"campaign_id"`
	ActorID    string    `json:"actor_id"`
	FromStatus *string   `json:"from_status,omitempty"`
	ToStatus   string    `json:"to_status"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
