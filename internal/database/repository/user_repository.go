package repository

import (
	"github.com/adreach/campaign-workflow-backend/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves all users
func (r *UserRepository) List() ([]*models.User, error) {
	var users []*models.User
	err := r.db.Order("created_at ASC").Find(&users).Error
	return users, err
}

// Update updates a user
func (r *UserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// AdminIDs returns the ids of all users holding an administrative role
func (r *UserRepository) AdminIDs() ([]string, error) {
	var ids []string
	err := r.db.Model(&models.User{}).
		Where("role IN ?", []string{models.RoleAdmin, models.RoleSuperAdmin}).
		Pluck("id", &ids).Error
	return ids, err
}

// CompanyTeamIDs returns the ids of all users sharing a company, minus the
// acting user
func (r *UserRepository) CompanyTeamIDs(companyID, excludeUserID string) ([]string, error) {
	if companyID == "" {
		return nil, nil
	}
	var ids []string
	err := r.db.Model(&models.User{}).
		Where("company_id = ? AND id <> ?", companyID, excludeUserID).
		Pluck("id", &ids).Error
	return ids, err
}
