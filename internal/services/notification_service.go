package services

import (
	"fmt"

	"github.com/adreach/campaign-workflow-backend/internal/database/repository"
	"github.com/adreach/campaign-workflow-backend/internal/models"

	"github.com/sirupsen/logrus"
)

// NotificationPublisher is the outbound delivery sink. The workflow engine
// only decides who is notified and with what content; delivery is someone
// else's problem.
type NotificationPublisher interface {
	PublishMessage(queueName string, message map[string]interface{}) error
}

type NotificationService struct {
	notificationRepo repository.NotificationRepositoryInterface
	userRepo         repository.UserRepositoryInterface
	publisher        NotificationPublisher
}

func NewNotificationService(
	notificationRepo repository.NotificationRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	publisher NotificationPublisher,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		publisher:        publisher,
	}
}

// Notify fans an event out to the given candidate recipients: empty ids are
// dropped, duplicates collapse to one, and one notification row is persisted
// per remaining recipient. Each persisted row is then offered to the delivery
// sink best-effort.
func (s *NotificationService) Notify(title, message string, recipientIDs []string, campaignID *string) error {
	seen := make(map[string]bool, len(recipientIDs))
	var failed int
	for _, id := range recipientIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		notification := &models.Notification{
			RecipientUserID: id,
			Title:           title,
			Message:         message,
			CampaignID:      campaignID,
		}
		if err := s.notificationRepo.Create(notification); err != nil {
			logrus.Warnf("Failed to persist notification for user %s: %v", id, err)
			failed++
			continue
		}
		s.dispatch(notification)
	}
	if failed > 0 {
		return fmt.Errorf("failed to persist %d of %d notifications", failed, len(seen))
	}
	return nil
}

// dispatch offers one notification to the delivery sink. Failure is logged
// and swallowed: delivery may lag or drop, the persisted row is the record.
func (s *NotificationService) dispatch(n *models.Notification) {
	if s.publisher == nil {
		return
	}
	msg := map[string]interface{}{
		"notification_id": n.ID,
		"recipient_id":    n.RecipientUserID,
		"title":           n.Title,
		"message":         n.Message,
	}
	if n.CampaignID != nil {
		msg["campaign_id"] = *n.CampaignID
	}
	if err := s.publisher.PublishMessage(NotificationDispatchQueue, msg); err != nil {
		logrus.Warnf("Failed to publish notification %s for delivery: %v", n.ID, err)
	}
}

// AdminUserIDs returns all users holding role admin or super_admin
func (s *NotificationService) AdminUserIDs() ([]string, error) {
	return s.userRepo.AdminIDs()
}

// CompanyTeamIDs returns all users sharing a company, minus the acting user
func (s *NotificationService) CompanyTeamIDs(companyID, excludeUserID string) ([]string, error) {
	return s.userRepo.CompanyTeamIDs(companyID, excludeUserID)
}

// ListForRecipient retrieves a user's notifications, newest first
func (s *NotificationService) ListForRecipient(recipientID string) ([]*models.NotificationResponse, error) {
	notifications, err := s.notificationRepo.ListByRecipient(recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	responses := make([]*models.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = &models.NotificationResponse{
			ID:         n.ID,
			Title:      n.Title,
			Message:    n.Message,
			Read:       n.Read,
			CampaignID: n.CampaignID,
			CreatedAt:  n.CreatedAt,
		}
	}
	return responses, nil
}

// UnreadCount returns the number of unread notifications for a user
func (s *NotificationService) UnreadCount(recipientID string) (int64, error) {
	return s.notificationRepo.UnreadCount(recipientID)
}

// MarkRead marks one of the recipient's notifications read
func (s *NotificationService) MarkRead(id, recipientID string) error {
	return s.notificationRepo.MarkRead(id, recipientID)
}

// MarkAllRead marks all of the recipient's notifications read
func (s *NotificationService) MarkAllRead(recipientID string) error {
	return s.notificationRepo.MarkAllRead(recipientID)
}

// Delete removes one of the recipient's notifications
func (s *NotificationService) Delete(id, recipientID string) error {
	return s.notificationRepo.Delete(id, recipientID)
}
