package router

import (
	"time"

	"github.com/adreach/campaign-workflow-backend/internal/database/repository"
	"github.com/adreach/campaign-workflow-backend/internal/handlers"
	"github.com/adreach/campaign-workflow-backend/internal/middleware"
	"github.com/adreach/campaign-workflow-backend/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin router with all workflow routes
func SetupRouter(db *gorm.DB, publisher services.NotificationPublisher) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	identity := middleware.NewIdentityMiddleware(repository.NewUserRepository(db))

	// One registry per process: draft creation and the calls racing ahead of
	// it must meet on the same coordinator.
	draftRegistry := services.NewDraftSessionRegistry()

	campaignHandler := handlers.NewCampaignHandler(db, publisher)
	requestHandler := handlers.NewRequestHandler(db, publisher)
	notificationHandler := handlers.NewNotificationHandler(db, publisher)
	draftHandler := handlers.NewDraftHandler(db, draftRegistry, publisher)
	adminHandler := handlers.NewAdminHandler(db)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	logrus.Info("Swagger UI endpoint registered at /swagger/index.html")

	// API v1 routes
	api := r.Group("/api/v1")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
				"time":   time.Now().Format(time.RFC3339),
			})
		})

		// Protected routes
		protected := api.Group("")
		protected.Use(identity.RequireUser())
		{
			// Campaign routes
			campaigns := protected.Group("/campaigns")
			{
				campaigns.POST("", campaignHandler.CreateCampaign)
				campaigns.GET("", campaignHandler.GetMyCampaigns)
				campaigns.GET("/:id", campaignHandler.GetCampaignByID)
				campaigns.PUT("/:id", campaignHandler.UpdateCampaign)
				campaigns.POST("/:id/submit", campaignHandler.SubmitCampaign)
				campaigns.POST("/:id/audiences", campaignHandler.AddAudience)
				campaigns.DELETE("/:id/audiences/:audienceId", campaignHandler.RemoveAudience)
				campaigns.POST("/:id/archive", campaignHandler.ArchiveCampaign)
				campaigns.POST("/:id/unarchive", campaignHandler.UnarchiveCampaign)
				campaigns.POST("/:id/comments", campaignHandler.AddComment)
				campaigns.GET("/:id/comments", campaignHandler.GetComments)
				campaigns.GET("/:id/activity", campaignHandler.GetActivity)
				campaigns.GET("/:id/history", campaignHandler.GetWorkflowHistory)
			}

			// Draft session routes
			drafts := protected.Group("/drafts")
			{
				drafts.POST("", draftHandler.StartDraft)
				drafts.GET("/active", draftHandler.GetActiveDraft)
				drafts.POST("/active/audiences", draftHandler.AddDraftAudience)
				drafts.DELETE("/active", draftHandler.DiscardDraft)
			}

			// Audience request routes
			requests := protected.Group("/requests")
			{
				requests.GET("", requestHandler.GetMyRequests)
				requests.GET("/:id", requestHandler.GetRequestByID)
				requests.POST("/:id/approve", requestHandler.ApproveRequest)
				requests.POST("/:id/reject", requestHandler.RejectRequest)
				requests.POST("/:id/archive", requestHandler.ArchiveRequest)
				requests.POST("/:id/unarchive", requestHandler.UnarchiveRequest)
			}

			// Notification routes
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", notificationHandler.GetMyNotifications)
				notifications.GET("/unread-count", notificationHandler.GetUnreadCount)
				notifications.POST("/:id/read", notificationHandler.MarkNotificationRead)
				notifications.POST("/read-all", notificationHandler.MarkAllNotificationsRead)
				notifications.DELETE("/:id", notificationHandler.DeleteNotification)
			}

			// Admin routes (requires admin privileges)
			admin := protected.Group("/admin")
			admin.Use(identity.RequireAdmin())
			{
				admin.GET("/users", adminHandler.GetAllUsers)
				admin.PUT("/users/:id/role", adminHandler.UpdateUserRole)
				admin.PUT("/users/:id/company", adminHandler.AssignUserCompany)
				admin.POST("/companies", adminHandler.CreateCompany)
				admin.GET("/companies", adminHandler.GetAllCompanies)
				admin.GET("/companies/:id", adminHandler.GetCompanyByID)
				admin.PUT("/companies/:id", adminHandler.UpdateCompany)
				admin.POST("/companies/:id/account-ids", adminHandler.AddCompanyAccountID)
				admin.GET("/companies/:id/account-ids", adminHandler.GetCompanyAccountIDs)
				admin.DELETE("/companies/:id/account-ids/:accountId", adminHandler.DeleteCompanyAccountID)
				admin.GET("/campaigns/export", adminHandler.ExportCampaigns)
			}

			// Campaign status changes stay under /campaigns but are admin-gated
			statusRoutes := protected.Group("/campaigns")
			statusRoutes.Use(identity.RequireAdmin())
			{
				statusRoutes.PUT("/:id/status", campaignHandler.UpdateCampaignStatus)
			}
		}
	}

	return r
}
