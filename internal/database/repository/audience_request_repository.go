package repository

import (
	"github.com/adreach/campaign-workflow-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AudienceRequestRepository struct {
	db *gorm.DB
}

func NewAudienceRequestRepository(db *gorm.DB) *AudienceRequestRepository {
	return &AudienceRequestRepository{db: db}
}

// Create creates a new audience request
func (r *AudienceRequestRepository) Create(request *models.AudienceRequest) error {
	return r.db.Create(request).Error
}

// GetByID retrieves a request by ID
func (r *AudienceRequestRepository) GetByID(id string) (*models.AudienceRequest, error) {
	var request models.AudienceRequest
	err := r.db.First(&request, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// GetByIDForUpdate retrieves a request under SELECT ... FOR UPDATE. Must be
// called on a transaction-bound repository.
func (r *AudienceRequestRepository) GetByIDForUpdate(id string) (*models.AudienceRequest, error) {
	var request models.AudienceRequest
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&request, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ListByClient retrieves all requests for a client, newest first. Archived
// requests are excluded unless requested.
func (r *AudienceRequestRepository) ListByClient(clientID string, includeArchived bool) ([]*models.AudienceRequest, error) {
	var requests []*models.AudienceRequest
	q := r.db.Where("client_id = ?", clientID)
	if !includeArchived {
		q = q.Where("archived = ?", false)
	}
	err := q.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

// ListAll retrieves all requests (admin only), optionally filtered by status
func (r *AudienceRequestRepository) ListAll(status string, includeArchived bool) ([]*models.AudienceRequest, error) {
	var requests []*models.AudienceRequest
	q := r.db.Session(&gorm.Session{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if !includeArchived {
		q = q.Where("archived = ?", false)
	}
	err := q.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

// Update updates a request
func (r *AudienceRequestRepository) Update(request *models.AudienceRequest) error {
	return r.db.Save(request).Error
}

// SetArchived flips the archived flag. Archiving never deletes the row.
func (r *AudienceRequestRepository) SetArchived(id string, archived bool) error {
	return r.db.Model(&models.AudienceRequest{}).
		Where("id = ?", id).
		Update("archived", archived).Error
}
