package repository

import (
	"time"

	"github.com/adreach/campaign-workflow-backend/internal/models"

	"gorm.io/gorm"
)

type CampaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// Create creates a new campaign
func (r *CampaignRepository) Create(campaign *models.Campaign) error {
	return r.db.Create(campaign).Error
}

// GetByID retrieves a campaign by ID
func (r *CampaignRepository) GetByID(id string) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.First(&campaign, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// ListByClient retrieves all campaigns for a client. Archived campaigns are
// excluded unless requested.
func (r *CampaignRepository) ListByClient(clientID string, includeArchived bool) ([]*models.Campaign, error) {
	var campaigns []*models.Campaign
	q := r.db.Where("client_id = ?", clientID)
	if !includeArchived {
		q = q.Where("archived = ?", false)
	}
	err := q.Order("created_at DESC").Find(&campaigns).Error
	return campaigns, err
}

// ListByClients retrieves campaigns owned by any of the given clients, for
// company-wide visibility
func (r *CampaignRepository) ListByClients(clientIDs []string, includeArchived bool) ([]*models.Campaign, error) {
	if len(clientIDs) == 0 {
		return nil, nil
	}
	var campaigns []*models.Campaign
	q := r.db.Where("client_id IN ?", clientIDs)
	if !includeArchived {
		q = q.Where("archived = ?", false)
	}
	err := q.Order("created_at DESC").Find(&campaigns).Error
	return campaigns, err
}

// ListAll retrieves all campaigns (admin only)
func (r *CampaignRepository) ListAll(includeArchived bool) ([]*models.Campaign, error) {
	var campaigns []*models.Campaign
	q := r.db.Session(&gorm.Session{})
	if !includeArchived {
		q = q.Where("archived = ?", false)
	}
	err := q.Order("created_at DESC").Find(&campaigns).Error
	return campaigns, err
}

// Update updates a campaign
func (r *CampaignRepository) Update(campaign *models.Campaign) error {
	return r.db.Save(campaign).Error
}

// UpdateStatusCAS transitions a campaign's status with a compare-and-swap on
// the current status. Concurrent transitions racing on the same campaign
// serialize here: the loser sees zero rows affected.
func (r *CampaignRepository) UpdateStatusCAS(id, fromStatus, toStatus string, approvedAt *time.Time) (bool, error) {
	updates := map[string]interface{}{
		"status":     toStatus,
		"updated_at": time.Now(),
	}
	if approvedAt != nil {
		updates["approved_at"] = approvedAt
	}
	res := r.db.Model(&models.Campaign{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// UpdateAudiences replaces the audience snapshot list and bumps updated_at
func (r *CampaignRepository) UpdateAudiences(id string, audiences models.AudienceList) error {
	return r.db.Model(&models.Campaign{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"audiences":  audiences,
			"updated_at": time.Now(),
		}).Error
}

// SetArchived flips the archived flag. Archiving never deletes the row.
func (r *CampaignRepository) SetArchived(id string, archived bool) error {
	return r.db.Model(&models.Campaign{}).
		Where("id = ?", id).
		Update("archived", archived).Error
}
