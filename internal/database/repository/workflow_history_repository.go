package repository

import (
	"github.com/adreach/campaign-workflow-backend/internal/models"

	"gorm.io/gorm"
)

type WorkflowHistoryRepository struct {
	db *gorm.DB
}

func NewWorkflowHistoryRepository(db *gorm.DB) *WorkflowHistoryRepository {
	return &WorkflowHistoryRepository{db: db}
}

// Create appends a workflow history entry
func (r *WorkflowHistoryRepository) Create(entry *models.CampaignWorkflowHistory) error {
	return r.db.Create(entry).Error
}

// ListByCampaign retrieves the transition log for a campaign in creation
// order. Display layers reverse it.
func (r *WorkflowHistoryRepository) ListByCampaign(campaignID string) ([]*models.CampaignWorkflowHistory, error) {
	var entries []*models.CampaignWorkflowHistory
	err := r.db.Where("campaign_id = ?", campaignID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}
