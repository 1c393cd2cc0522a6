package services

import (
	"fmt"
	"strings"

	"github.com/adreach/campaign-workflow-backend/internal/apperrors"
	"github.com/adreach/campaign-workflow-backend/internal/database/repository"
	"github.com/adreach/campaign-workflow-backend/internal/models"

	"gorm.io/gorm"
)

type CompanyService struct {
	companyRepo repository.CompanyRepositoryInterface
}

func NewCompanyService(companyRepo repository.CompanyRepositoryInterface) *CompanyService {
	return &CompanyService{companyRepo: companyRepo}
}

// CreateCompany creates a company (admin only)
func (s *CompanyService) CreateCompany(actor *models.User, req *models.CreateCompanyRequest) (*models.Company, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewAuthorization("creating companies requires an admin role")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidation("name", "company name must not be empty")
	}

	company := &models.Company{Name: name}
	if err := s.companyRepo.Create(company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return company, nil
}

// GetCompany retrieves a company with its members and account ids
func (s *CompanyService) GetCompany(id string) (*models.Company, error) {
	company, err := s.companyRepo.GetByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFound("company", id)
		}
		return nil, fmt.Errorf("failed to load company: %w", err)
	}
	return company, nil
}

// ListCompanies retrieves all companies (admin only)
func (s *CompanyService) ListCompanies(actor *models.User) ([]*models.Company, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewAuthorization("listing companies requires an admin role")
	}
	return s.companyRepo.List()
}

// RenameCompany updates a company's name (admin only)
func (s *CompanyService) RenameCompany(actor *models.User, id string, req *models.UpdateCompanyRequest) (*models.Company, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewAuthorization("updating companies requires an admin role")
	}
	company, err := s.GetCompany(id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidation("name", "company name must not be empty")
	}
	company.Name = name
	if err := s.companyRepo.Update(company); err != nil {
		return nil, fmt.Errorf("failed to update company: %w", err)
	}
	return company, nil
}

// AddAccountID attaches a named platform account id to a company
func (s *CompanyService) AddAccountID(actor *models.User, companyID string, req *models.CreateCompanyAccountIDRequest) (*models.CompanyAccountID, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewAuthorization("managing account ids requires an admin role")
	}
	if _, err := s.GetCompany(companyID); err != nil {
		return nil, err
	}

	account := &models.CompanyAccountID{
		CompanyID: companyID,
		Platform:  req.Platform,
		AccountID: req.AccountID,
		Label:     req.Label,
	}
	if err := s.companyRepo.AddAccountID(account); err != nil {
		return nil, fmt.Errorf("failed to add account id: %w", err)
	}
	return account, nil
}

// ListAccountIDs retrieves a company's platform account ids
func (s *CompanyService) ListAccountIDs(companyID string) ([]*models.CompanyAccountID, error) {
	return s.companyRepo.ListAccountIDs(companyID)
}

// RemoveAccountID detaches a platform account id from a company
func (s *CompanyService) RemoveAccountID(actor *models.User, companyID, accountID string) error {
	if !actor.IsAdmin() {
		return apperrors.NewAuthorization("managing account ids requires an admin role")
	}
	return s.companyRepo.DeleteAccountID(companyID, accountID)
}
