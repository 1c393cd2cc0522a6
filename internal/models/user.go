package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// User represents an account in the system. Identity and sessions are managed
// by the external identity provider; this table only carries what the
// workflow engine needs: role and company membership.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	Email     string    `json:"email" gorm:"type:varchar(255);not null;unique;index"`
	Name      string    `json:"name" gorm:"type:varchar(255)"`
	Role      string    `json:"role" gorm:"type:varchar(20);not null;default:'user';index"`
	CompanyID *string   `json:"company_id,omitempty" gorm:"type:uuid;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Company *Company `json:"company,omitempty" gorm:"foreignKey:CompanyID;references:ID;constraint:OnDelete:SET NULL"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate is a GORM hook that runs before creating a new record
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// IsAdmin reports whether the user holds an administrative role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

// IsSuperAdmin reports whether the user holds the super_admin role
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// UpdateUserRoleRequest represents the request to change a user's role
type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin super_admin" example:"admin"`
}

// AssignCompanyRequest represents the request to move a user into a company
type AssignCompanyRequest struct {
	CompanyID string `json:"company_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// UserResponse represents the response for user operations
type UserResponse struct {
	ID        string  `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Email     string  `json:"email" example:"client@example.com"`
	Name      string  `json:"name" example:"Jordan Lee"`
	Role      string  `json:"role" example:"user"`
	CompanyID *string `json:"company_id,omitempty"`
	CreatedAt string  `json:"created_at" example:"2025-01-09T10:30:00Z"`
}
