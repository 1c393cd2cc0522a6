package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is one persisted message for one recipient. Rows are created
// only by the fan-out service and mutated only by the recipient (mark read /
// delete).
type Notification struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid"`
	RecipientUserID string    `json:"recipient_user_id" gorm:"type:uuid;not null;index"`
	Title           string    `json:"title" gorm:"type:varchar(255);not null"`
	Message         string    `json:"message" gorm:"type:text;not null"`
	Read            bool      `json:"read" gorm:"default:false;index"`
	CampaignID      *string   `json:"campaign_id,omitempty" gorm:"type:uuid;index"`
	CreatedAt       time.Time `json:"created_at" gorm:"index"`

	// Relationships
	Recipient User `json:"-" gorm:"foreignKey:RecipientUserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}

// BeforeCreate is a GORM hook that runs before creating a new record
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}

// NotificationResponse represents one notification row
type NotificationResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Read       bool      `json:"read"`
	CampaignID *string   `json:"campaign_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// UnreadCountResponse reports the number of unread notifications
type UnreadCountResponse struct {
	Unread int64 `json:"unread" example:"3"`
}
