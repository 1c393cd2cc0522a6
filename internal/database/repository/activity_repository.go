package repository

import (
	"github.com/adreach/campaign-workflow-backend/internal/models"

	"gorm.io/gorm"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create appends an activity entry
func (r *ActivityRepository) Create(activity *models.CampaignActivity) error {
	return r.db.Create(activity).Error
}

// ListByCampaign retrieves the activity log for a campaign in creation order
func (r *ActivityRepository) ListByCampaign(campaignID string) ([]*models.CampaignActivity, error) {
	var activities []*models.CampaignActivity
	err := r.db.Where("campaign_id = ?", campaignID).
		Order("created_at ASC").
		Find(&activities).Error
	return activities, err
}
