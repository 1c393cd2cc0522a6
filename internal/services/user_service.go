package services

import (
	"fmt"

	"github.com/adreach/campaign-workflow-backend/internal/apperrors"
	"github.com/adreach/campaign-workflow-backend/internal/database/repository"
	"github.com/adreach/campaign-workflow-backend/internal/models"

	"gorm.io/gorm"
)

// UserService covers the administrative user surface: role changes and
// company reassignment. Identity itself lives with the external provider.
type UserService struct {
	userRepo    repository.UserRepositoryInterface
	companyRepo repository.CompanyRepositoryInterface
}

func NewUserService(
	userRepo repository.UserRepositoryInterface,
	companyRepo repository.CompanyRepositoryInterface,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
	}
}

// GetUser retrieves a user by id
func (s *UserService) GetUser(id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFound("user", id)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// ListUsers retrieves all users (admin only)
func (s *UserService) ListUsers(actor *models.User) ([]*models.User, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewAuthorization("listing users requires an admin role")
	}
	return s.userRepo.List()
}

// ChangeRole reassigns a user's role. Granting or revoking super_admin
// requires a super_admin actor.
func (s *UserService) ChangeRole(actor *models.User, userID, role string) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewAuthorization("changing roles requires an admin role")
	}
	switch role {
	case models.RoleUser, models.RoleAdmin, models.RoleSuperAdmin:
	default:
		return nil, apperrors.NewValidation("role", "unknown role "+role)
	}

	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if (role == models.RoleSuperAdmin || user.Role == models.RoleSuperAdmin) && !actor.IsSuperAdmin() {
		return nil, apperrors.NewAuthorization("changing super_admin roles requires a super_admin role")
	}

	user.Role = role
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user role: %w", err)
	}
	return user, nil
}

// AssignCompany moves a user into a company
func (s *UserService) AssignCompany(actor *models.User, userID, companyID string) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewAuthorization("assigning companies requires an admin role")
	}
	if _, err := s.companyRepo.GetByID(companyID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFound("company", companyID)
		}
		return nil, fmt.Errorf("failed to load company: %w", err)
	}

	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	user.CompanyID = &companyID
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to assign company: %w", err)
	}
	return user, nil
}
