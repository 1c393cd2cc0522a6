package handlers

import (
	"net/http"

	"github.com/adreach/campaign-workflow-backend/internal/database/repository"
	"github.com/adreach/campaign-workflow-backend/internal/middleware"
	"github.com/adreach/campaign-workflow-backend/internal/models"
	"github.com/adreach/campaign-workflow-backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(db *gorm.DB, publisher services.NotificationPublisher) *NotificationHandler {
	notificationRepo := repository.NewNotificationRepository(db)
	userRepo := repository.NewUserRepository(db)

	return &NotificationHandler{
		notificationService: services.NewNotificationService(notificationRepo, userRepo, publisher),
	}
}

// GetMyNotifications godoc
// @Summary List notifications
// @Description List the authenticated user's notifications, newest first
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.NotificationResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/notifications [get]
func (h *NotificationHandler) GetMyNotifications(c *gin.Context) {
	user := middleware.CurrentUser(c)

	notifications, err := h.notificationService.ListForRecipient(user.ID)
	if err != nil {
		respondError(c, err, "Failed to list notifications")
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// GetUnreadCount godoc
// @Summary Count unread notifications
// @Description Count the authenticated user's unread notifications
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UnreadCountResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/notifications/unread-count [get]
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	user := middleware.CurrentUser(c)

	count, err := h.notificationService.UnreadCount(user.ID)
	if err != nil {
		respondError(c, err, "Failed to count notifications")
		return
	}

	c.JSON(http.StatusOK, models.UnreadCountResponse{Unread: count})
}

// MarkNotificationRead godoc
// @Summary Mark a notification as read
// @Description Mark one of the authenticated user's notifications as read
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/notifications/{id}/read [post]
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.notificationService.MarkRead(c.Param("id"), user.ID); err != nil {
		respondError(c, err, "Failed to mark notification read")
		return
	}

	c.Status(http.StatusNoContent)
}

// MarkAllNotificationsRead godoc
// @Summary Mark all notifications as read
// @Description Mark every one of the authenticated user's notifications as read
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/notifications/read-all [post]
func (h *NotificationHandler) MarkAllNotificationsRead(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.notificationService.MarkAllRead(user.ID); err != nil {
		respondError(c, err, "Failed to mark notifications read")
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteNotification godoc
// @Summary Delete a notification
// @Description Delete one of the authenticated user's notifications
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/notifications/{id} [delete]
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.notificationService.Delete(c.Param("id"), user.ID); err != nil {
		respondError(c, err, "Failed to delete notification")
		return
	}

	c.Status(http.StatusNoContent)
}
