package repository

import (
	"github.com/adreach/campaign-workflow-backend/internal/models"

	"gorm.io/gorm"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Create creates a new company
func (r *CompanyRepository) Create(company *models.Company) error {
	return r.db.Create(company).Error
}

// GetByID retrieves a company with its users and account ids
func (r *CompanyRepository) GetByID(id string) (*models.Company, error) {
	var company models.Company
	err := r.db.Preload("Users").Preload("AccountIDs").First(&company, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// List retrieves all companies
func (r *CompanyRepository) List() ([]*models.Company, error) {
	var companies []*models.Company
	err := r.db.Order("name ASC").Find(&companies).Error
	return companies, err
}

// Update updates a company
func (r *CompanyRepository) Update(company *models.Company) error {
	return r.db.Save(company).Error
}

// Delete deletes a company. Referential integrity against active campaigns is
// the caller's responsibility.
func (r *CompanyRepository) Delete(id string) error {
	return r.db.Delete(&models.Company{}, "id = ?", id).Error
}

// AddAccountID attaches a platform account id to a company
func (r *CompanyRepository) AddAccountID(account *models.CompanyAccountID) error {
	return r.db.Create(account).Error
}

// ListAccountIDs retrieves all platform account ids for a company
func (r *CompanyRepository) ListAccountIDs(companyID string) ([]*models.CompanyAccountID, error) {
	var accounts []*models.CompanyAccountID
	err := r.db.Where("company_id = ?", companyID).Order("created_at ASC").Find(&accounts).Error
	return accounts, err
}

// DeleteAccountID removes a platform account id from a company
func (r *CompanyRepository) DeleteAccountID(companyID, accountID string) error {
	return r.db.Where("company_id = ? AND id = ?", companyID, accountID).
		Delete(&models.CompanyAccountID{}).Error
}
