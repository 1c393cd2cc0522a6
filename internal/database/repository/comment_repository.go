package repository

import (
	"github.com/adreach/campaign-workflow-backend/internal/models"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create creates a new comment
func (r *CommentRepository) Create(comment *models.CampaignComment) error {
	return r.db.Create(comment).Error
}

// GetByID retrieves a comment by ID
func (r *CommentRepository) GetByID(id string) (*models.CampaignComment, error) {
	var comment models.CampaignComment
	err := r.db.First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByCampaign retrieves all comments for a campaign in creation order,
// with authors preloaded for display names
func (r *CommentRepository) ListByCampaign(campaignID string) ([]*models.CampaignComment, error) {
	var comments []*models.CampaignComment
	err := r.db.Where("campaign_id = ?", campaignID).
		Preload("Author").
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}
