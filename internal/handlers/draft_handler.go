package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/adreach/campaign-workflow-backend/internal/database/repository"
	"github.com/adreach/campaign-workflow-backend/internal/middleware"
	"github.com/adreach/campaign-workflow-backend/internal/models"
	"github.com/adreach/campaign-workflow-backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// draftWaitTimeout bounds how long an audience-add may wait for the in-flight
// draft creation to resolve.
const draftWaitTimeout = 10 * time.Second

type DraftHandler struct {
	draftService *services.DraftService
}

func NewDraftHandler(db *gorm.DB, registry *services.DraftSessionRegistry, publisher services.NotificationPublisher) *DraftHandler {
	userRepo := repository.NewUserRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	requestRepo := repository.NewAudienceRequestRepository(db)
	historyRepo := repository.NewWorkflowHistoryRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	activityService := services.NewActivityService(activityRepo, historyRepo)
	notifier := services.NewNotificationService(notificationRepo, userRepo, publisher)
	campaignService := services.NewCampaignService(
		repository.NewTxManager(db), campaignRepo, requestRepo, userRepo,
		historyRepo, activityService, notifier,
	)

	return &DraftHandler{
		draftService: services.NewDraftService(registry, campaignService, campaignRepo),
	}
}

// StartDraft godoc
// @Summary Start building a draft campaign
// @Description Kick off draft creation in the background. Subsequent draft operations wait for it to resolve.
// @Tags drafts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateCampaignRequest true "Draft campaign fields"
// @Success 202 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/drafts [post]
func (h *DraftHandler) StartDraft(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	h.draftService.StartDraft(user, &req)
	c.JSON(http.StatusAccepted, gin.H{"status": "creating"})
}

// GetActiveDraft godoc
// @Summary Get the active draft campaign
// @Description Return the draft once its creation resolves, waiting if it is still in flight
// @Tags drafts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.CampaignResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Failure 504 {object} map[string]interface{}
// @Router /api/v1/drafts/active [get]
func (h *DraftHandler) GetActiveDraft(c *gin.Context) {
	user := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), draftWaitTimeout)
	defer cancel()

	response, err := h.draftService.ActiveCampaign(ctx, user)
	if err != nil {
		if ctx.Err() != nil {
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Draft creation did not resolve in time"})
			return
		}
		respondError(c, err, "Failed to get active draft")
		return
	}

	c.JSON(http.StatusOK, response)
}

// AddDraftAudience godoc
// @Summary Add an audience to the active draft
// @Description Add an audience snapshot to the in-flight draft, waiting for creation to resolve first
// @Tags drafts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.AddAudienceRequest true "Audience snapshot"
// @Success 200 {object} models.CampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Failure 504 {object} map[string]interface{}
// @Router /api/v1/drafts/active/audiences [post]
func (h *DraftHandler) AddDraftAudience(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.AddAudienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), draftWaitTimeout)
	defer cancel()

	response, err := h.draftService.AddAudience(ctx, user, req.Audience)
	if err != nil {
		if ctx.Err() != nil {
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Draft creation did not resolve in time"})
			return
		}
		respondError(c, err, "Failed to add audience to draft")
		return
	}

	c.JSON(http.StatusOK, response)
}

// DiscardDraft godoc
// @Summary Discard the active draft session
// @Description Reset the draft coordinator, e.g. when the client navigates away
// @Tags drafts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/drafts/active [delete]
func (h *DraftHandler) DiscardDraft(c *gin.Context) {
	user := middleware.CurrentUser(c)
	h.draftService.Discard(user)
	c.Status(http.StatusNoContent)
}
