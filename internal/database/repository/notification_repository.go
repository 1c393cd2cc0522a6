package repository

import (
	"github.com/adreach/campaign-workflow-backend/internal/models"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create creates a notification row for one recipient
func (r *NotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// ListByRecipient retrieves a recipient's notifications, newest first
func (r *NotificationRepository) ListByRecipient(recipientID string) ([]*models.Notification, error) {
	var notifications []*models.Notification
	err := r.db.Where("recipient_user_id = ?", recipientID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

// UnreadCount returns the number of unread notifications for a recipient
func (r *NotificationRepository) UnreadCount(recipientID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("recipient_user_id = ? AND read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

// MarkRead marks one notification read. Scoped to the recipient so a user can
// only mutate their own rows.
func (r *NotificationRepository) MarkRead(id, recipientID string) error {
	return r.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_user_id = ?", id, recipientID).
		Update("read", true).Error
}

// MarkAllRead marks every unread notification read for a recipient
func (r *NotificationRepository) MarkAllRead(recipientID string) error {
	return r.db.Model(&models.Notification{}).
		Where("recipient_user_id = ? AND read = ?", recipientID, false).
		Update("read", true).Error
}

// Delete removes one notification, scoped to the recipient
func (r *NotificationRepository) Delete(id, recipientID string) error {
	return r.db.Where("id = ? AND recipient_user_id = ?", id, recipientID).
		Delete(&models.Notification{}).Error
}
