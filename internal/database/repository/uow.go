package repository

import (
	"gorm.io/gorm"
)

// Stores bundles every repository over one database handle, so a transaction
// can hand the service layer a consistent set bound to the same tx.
type Stores struct {
	Users         UserRepositoryInterface
	Companies     CompanyRepositoryInterface
	Campaigns     CampaignRepositoryInterface
	Requests      AudienceRequestRepositoryInterface
	Comments      CommentRepositoryInterface
	Histories     WorkflowHistoryRepositoryInterface
	Activities    ActivityRepositoryInterface
	Notifications NotificationRepositoryInterface
}

// NewStores builds the full repository set over db
func NewStores(db *gorm.DB) *Stores {
	return &Stores{
		Users:         NewUserRepository(db),
		Companies:     NewCompanyRepository(db),
		Campaigns:     NewCampaignRepository(db),
		Requests:      NewAudienceRequestRepository(db),
		Comments:      NewCommentRepository(db),
		Histories:     NewWorkflowHistoryRepository(db),
		Activities:    NewActivityRepository(db),
		Notifications: NewNotificationRepository(db),
	}
}

// TxManagerInterface runs a function inside one database transaction. The
// stores passed to fn are bound to that transaction; returning an error rolls
// everything back.
type TxManagerInterface interface {
	Transaction(fn func(stores *Stores) error) error
}

type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction runs fn inside a gorm transaction
func (m *TxManager) Transaction(fn func(stores *Stores) error) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewStores(tx))
	})
}
