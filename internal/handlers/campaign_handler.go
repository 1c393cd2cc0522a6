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

type CampaignHandler struct {
	campaignService *services.CampaignService
	commentService  *services.CommentService
	activityService *services.ActivityService
}

func NewCampaignHandler(db *gorm.DB, publisher services.NotificationPublisher) *CampaignHandler {
	userRepo := repository.NewUserRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	requestRepo := repository.NewAudienceRequestRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	historyRepo := repository.NewWorkflowHistoryRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	activityService := services.NewActivityService(activityRepo, historyRepo)
	notifier := services.NewNotificationService(notificationRepo, userRepo, publisher)
	campaignService := services.NewCampaignService(
		repository.NewTxManager(db), campaignRepo, requestRepo, userRepo,
		historyRepo, activityService, notifier,
	)
	commentService := services.NewCommentService(commentRepo, campaignRepo, userRepo, activityService, notifier)

	return &CampaignHandler{
		campaignService: campaignService,
		commentService:  commentService,
		activityService: activityService,
	}
}

// CreateCampaign godoc
// @Summary Create a draft campaign
// @Description Create a new draft campaign owned by the authenticated user
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateCampaignRequest true "Create campaign request"
// @Success 201 {object} models.CampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns [post]
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.campaignService.CreateCampaign(user, &req)
	if err != nil {
		respondError(c, err, "Failed to create campaign")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetMyCampaigns godoc
// @Summary List campaigns
// @Description List campaigns visible to the authenticated user: admins see all, company members see their team's, other users see their own
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param include_archived query bool false "Include archived campaigns"
// @Success 200 {array} models.CampaignResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns [get]
func (h *CampaignHandler) GetMyCampaigns(c *gin.Context) {
	user := middleware.CurrentUser(c)
	includeArchived := c.Query("include_archived") == "true"

	campaigns, err := h.campaignService.ListCampaigns(user, includeArchived)
	if err != nil {
		respondError(c, err, "Failed to list campaigns")
		return
	}

	c.JSON(http.StatusOK, campaigns)
}

// GetCampaignByID godoc
// @Summary Get campaign by ID
// @Description Get a specific campaign the authenticated user may see
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {object} models.CampaignResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id} [get]
func (h *CampaignHandler) GetCampaignByID(c *gin.Context) {
	user := middleware.CurrentUser(c)

	campaign, err := h.campaignService.GetCampaign(user, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get campaign")
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// UpdateCampaign godoc
// @Summary Update campaign
// @Description Update a campaign. Clients may only edit drafts; admins may edit at any status.
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param request body models.UpdateCampaignRequest true "Update campaign request"
// @Success 200 {object} models.CampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id} [put]
func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.campaignService.UpdateCampaign(user, c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "Failed to update campaign")
		return
	}

	c.JSON(http.StatusOK, response)
}

// SubmitCampaign godoc
// @Summary Submit a draft campaign for review
// @Description Snapshot the draft into an audience request and move the campaign to pending_review
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param request body models.SubmitCampaignRequest false "Submission notes"
// @Success 201 {object} models.AudienceRequest
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/submit [post]
func (h *CampaignHandler) SubmitCampaign(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.SubmitCampaignRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
			return
		}
	}

	request, err := h.campaignService.SubmitCampaign(user, c.Param("id"), req.Notes)
	if err != nil {
		respondError(c, err, "Failed to submit campaign")
		return
	}

	c.JSON(http.StatusCreated, request)
}

// UpdateCampaignStatus godoc
// @Summary Advance a campaign's workflow status
// @Description Move a campaign along the workflow graph (admin only). Invalid transitions are rejected.
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param request body models.UpdateCampaignStatusRequest true "Target status"
// @Success 200 {object} models.CampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/status [put]
func (h *CampaignHandler) UpdateCampaignStatus(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.UpdateCampaignStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.campaignService.UpdateCampaignStatus(user, c.Param("id"), req.Status, req.Notes)
	if err != nil {
		respondError(c, err, "Failed to update campaign status")
		return
	}

	c.JSON(http.StatusOK, response)
}

// AddAudience godoc
// @Summary Add an audience to a campaign
// @Description Append an audience snapshot to the campaign. Adding an audience that is already present is a no-op.
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param request body models.AddAudienceRequest true "Audience snapshot"
// @Success 200 {object} models.CampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/audiences [post]
func (h *CampaignHandler) AddAudience(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.AddAudienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.campaignService.AddAudience(user, c.Param("id"), req.Audience)
	if err != nil {
		respondError(c, err, "Failed to add audience")
		return
	}

	c.JSON(http.StatusOK, response)
}

// RemoveAudience godoc
// @Summary Remove an audience from a campaign
// @Description Remove an audience snapshot by id. Removing an absent audience is a no-op.
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param audienceId path string true "Audience segment ID"
// @Success 200 {object} models.CampaignResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/audiences/{audienceId} [delete]
func (h *CampaignHandler) RemoveAudience(c *gin.Context) {
	user := middleware.CurrentUser(c)

	response, err := h.campaignService.RemoveAudience(user, c.Param("id"), c.Param("audienceId"))
	if err != nil {
		respondError(c, err, "Failed to remove audience")
		return
	}

	c.JSON(http.StatusOK, response)
}

// ArchiveCampaign godoc
// @Summary Archive a campaign
// @Description Hide a campaign from default listings. Archived campaigns are never deleted.
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/archive [post]
func (h *CampaignHandler) ArchiveCampaign(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.campaignService.ArchiveCampaign(user, c.Param("id"), true); err != nil {
		respondError(c, err, "Failed to archive campaign")
		return
	}

	c.Status(http.StatusNoContent)
}

// UnarchiveCampaign godoc
// @Summary Restore an archived campaign
// @Description Bring a campaign back into default listings
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/unarchive [post]
func (h *CampaignHandler) UnarchiveCampaign(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.campaignService.ArchiveCampaign(user, c.Param("id"), false); err != nil {
		respondError(c, err, "Failed to unarchive campaign")
		return
	}

	c.Status(http.StatusNoContent)
}

// AddComment godoc
// @Summary Post a comment on a campaign
// @Description Post a root comment or a reply to a root comment. Replies to replies are rejected.
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param request body models.AddCommentRequest true "Comment content"
// @Success 201 {object} models.CommentResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/comments [post]
func (h *CampaignHandler) AddComment(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.commentService.AddComment(user, c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "Failed to post comment")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetComments godoc
// @Summary Get a campaign's comment thread
// @Description List the campaign's comments as root comments with nested replies
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {array} models.CommentResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/comments [get]
func (h *CampaignHandler) GetComments(c *gin.Context) {
	user := middleware.CurrentUser(c)
	campaignID := c.Param("id")

	// Visibility is the campaign's, not the comments'
	if _, err := h.campaignService.GetCampaign(user, campaignID); err != nil {
		respondError(c, err, "Failed to get campaign")
		return
	}

	comments, err := h.commentService.FetchCampaignComments(campaignID)
	if err != nil {
		respondError(c, err, "Failed to get comments")
		return
	}

	c.JSON(http.StatusOK, comments)
}

// GetActivity godoc
// @Summary Get a campaign's activity timeline
// @Description List every recorded action on the campaign, newest first
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {array} models.ActivityResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/activity [get]
func (h *CampaignHandler) GetActivity(c *gin.Context) {
	user := middleware.CurrentUser(c)
	campaignID := c.Param("id")

	if _, err := h.campaignService.GetCampaign(user, campaignID); err != nil {
		respondError(c, err, "Failed to get campaign")
		return
	}

	activity, err := h.activityService.Timeline(campaignID)
	if err != nil {
		respondError(c, err, "Failed to get activity")
		return
	}

	c.JSON(http.StatusOK, activity)
}

// GetWorkflowHistory godoc
// @Summary Get a campaign's workflow history
// @Description List the campaign's status transitions in order
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {array} models.WorkflowHistoryResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/history [get]
func (h *CampaignHandler) GetWorkflowHistory(c *gin.Context) {
	user := middleware.CurrentUser(c)
	campaignID := c.Param("id")

	if _, err := h.campaignService.GetCampaign(user, campaignID); err != nil {
		respondError(c, err, "Failed to get campaign")
		return
	}

	history, err := h.activityService.WorkflowHistory(campaignID)
	if err != nil {
		respondError(c, err, "Failed to get workflow history")
		return
	}

	c.JSON(http.StatusOK, history)
}
