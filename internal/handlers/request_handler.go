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

type RequestHandler struct {
	requestService  *services.RequestService
	campaignService *services.CampaignService
}

func NewRequestHandler(db *gorm.DB, publisher services.NotificationPublisher) *RequestHandler {
	userRepo := repository.NewUserRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	requestRepo := repository.NewAudienceRequestRepository(db)
	historyRepo := repository.NewWorkflowHistoryRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	activityService := services.NewActivityService(activityRepo, historyRepo)
	notifier := services.NewNotificationService(notificationRepo, userRepo, publisher)
	tx := repository.NewTxManager(db)

	return &RequestHandler{
		requestService: services.NewRequestService(tx, requestRepo, userRepo, historyRepo, activityService, notifier),
		campaignService: services.NewCampaignService(
			tx, campaignRepo, requestRepo, userRepo, historyRepo, activityService, notifier,
		),
	}
}

// GetMyRequests godoc
// @Summary List audience requests
// @Description Admins see all requests (optionally filtered by status); other users see their own
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (pending, approved, rejected)"
// @Param include_archived query bool false "Include archived requests"
// @Success 200 {array} models.AudienceRequestResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/requests [get]
func (h *RequestHandler) GetMyRequests(c *gin.Context) {
	user := middleware.CurrentUser(c)
	status := c.Query("status")
	includeArchived := c.Query("include_archived") == "true"

	requests, err := h.requestService.ListRequests(user, status, includeArchived)
	if err != nil {
		respondError(c, err, "Failed to list requests")
		return
	}

	c.JSON(http.StatusOK, requests)
}

// GetRequestByID godoc
// @Summary Get audience request by ID
// @Description Get a specific request, visible to admins and to its owner
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} models.AudienceRequestResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/requests/{id} [get]
func (h *RequestHandler) GetRequestByID(c *gin.Context) {
	user := middleware.CurrentUser(c)

	request, err := h.requestService.GetRequest(user, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get request")
		return
	}

	c.JSON(http.StatusOK, request)
}

// ApproveRequest godoc
// @Summary Approve a pending audience request
// @Description Approve the request and materialize its snapshot into an approved campaign (admin only). Approving an already-reviewed request returns 409.
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body models.ReviewRequest false "Review notes"
// @Success 200 {object} models.CampaignResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/requests/{id}/approve [post]
func (h *RequestHandler) ApproveRequest(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.ReviewRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
			return
		}
	}

	campaign, err := h.requestService.ApproveRequest(user, c.Param("id"), req.Notes)
	if err != nil {
		respondError(c, err, "Failed to approve request")
		return
	}

	response, err := h.campaignService.GetCampaign(user, campaign.ID)
	if err != nil {
		respondError(c, err, "Failed to load approved campaign")
		return
	}

	c.JSON(http.StatusOK, response)
}

// RejectRequest godoc
// @Summary Reject a pending audience request
// @Description Reject the request (admin only). A campaign linked to the request moves to failed but is kept.
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body models.ReviewRequest false "Rejection reason"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/requests/{id}/reject [post]
func (h *RequestHandler) RejectRequest(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.ReviewRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
			return
		}
	}

	if err := h.requestService.RejectRequest(user, c.Param("id"), req.Notes); err != nil {
		respondError(c, err, "Failed to reject request")
		return
	}

	c.Status(http.StatusNoContent)
}

// ArchiveRequest godoc
// @Summary Archive an audience request
// @Description Hide a request from default listings. Archived requests are never deleted.
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/requests/{id}/archive [post]
func (h *RequestHandler) ArchiveRequest(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.requestService.ArchiveRequest(user, c.Param("id"), true); err != nil {
		respondError(c, err, "Failed to archive request")
		return
	}

	c.Status(http.StatusNoContent)
}

// UnarchiveRequest godoc
// @Summary Restore an archived audience request
// @Description Bring a request back into default listings
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/requests/{id}/unarchive [post]
func (h *RequestHandler) UnarchiveRequest(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.requestService.ArchiveRequest(user, c.Param("id"), false); err != nil {
		respondError(c, err, "Failed to unarchive request")
		return
	}

	c.Status(http.StatusNoContent)
}
