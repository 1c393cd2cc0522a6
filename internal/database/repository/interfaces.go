package repository

import (
	"time"

	"github.com/adreach/campaign-workflow-backend/internal/models"
)

// Repository interfaces consumed by the service layer. The gorm
// implementations below are the production bindings; tests substitute
// in-memory fakes.

type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	List() ([]*models.User, error)
	Update(user *models.User) error
	AdminIDs() ([]string, error)
	CompanyTeamIDs(companyID, excludeUserID string) ([]string, error)
}

type CompanyRepositoryInterface interface {
	Create(company *models.Company) error
	GetByID(id string) (*models.Company, error)
	List() ([]*models.Company, error)
	Update(company *models.Company) error
	Delete(id string) error
	AddAccountID(account *models.CompanyAccountID) error
	ListAccountIDs(companyID string) ([]*models.CompanyAccountID, error)
	DeleteAccountID(companyID, accountID string) error
}

type CampaignRepositoryInterface interface {
	Create(campaign *models.Campaign) error
	GetByID(id string) (*models.Campaign, error)
	ListByClient(clientID string, includeArchived bool) ([]*models.Campaign, error)
	ListByClients(clientIDs []string, includeArchived bool) ([]*models.Campaign, error)
	ListAll(includeArchived bool) ([]*models.Campaign, error)
	Update(campaign *models.Campaign) error
	// UpdateStatusCAS transitions id from fromStatus to toStatus in a single
	// compare-and-swap update. Returns false when the row was not in
	// fromStatus anymore.
	UpdateStatusCAS(id, fromStatus, toStatus string, approvedAt *time.Time) (bool, error)
	UpdateAudiences(id string, audiences models.AudienceList) error
	SetArchived(id string, archived bool) error
}

type AudienceRequestRepositoryInterface interface {
	Create(request *models.AudienceRequest) error
	GetByID(id string) (*models.AudienceRequest, error)
	// GetByIDForUpdate loads the request under a row lock. Only meaningful
	// inside a transaction; the fan-out of concurrent approvals serializes
	// here.
	GetByIDForUpdate(id string) (*models.AudienceRequest, error)
	ListByClient(clientID string, includeArchived bool) ([]*models.AudienceRequest, error)
	ListAll(status string, includeArchived bool) ([]*models.AudienceRequest, error)
	Update(request *models.AudienceRequest) error
	SetArchived(id string, archived bool) error
}

type CommentRepositoryInterface interface {
	Create(comment *models.CampaignComment) error
	GetByID(id string) (*models.CampaignComment, error)
	ListByCampaign(campaignID string) ([]*models.CampaignComment, error)
}

type WorkflowHistoryRepositoryInterface interface {
	Create(entry *models.CampaignWorkflowHistory) error
	ListByCampaign(campaignID string) ([]*models.CampaignWorkflowHistory, error)
}

type ActivityRepositoryInterface interface {
	Create(activity *models.CampaignActivity) error
	ListByCampaign(campaignID string) ([]*models.CampaignActivity, error)
}

type NotificationRepositoryInterface interface {
	Create(notification *models.Notification) error
	ListByRecipient(recipientID string) ([]*models.Notification, error)
	UnreadCount(recipientID string) (int64, error)
	MarkRead(id, recipientID string) error
	MarkAllRead(recipientID string) error
	Delete(id, recipientID string) error
}
