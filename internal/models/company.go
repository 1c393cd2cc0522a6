package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company represents an advertising client organization. It owns users and
// named platform-account identifiers (e.g. a Meta advertiser ID).
type Company struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null;unique"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Users      []User             `json:"users,omitempty" gorm:"foreignKey:CompanyID;references:ID"`
	AccountIDs []CompanyAccountID `json:"account_ids,omitempty" gorm:"foreignKey:CompanyID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Company model
func (Company) TableName() string {
	return "companies"
}

// BeforeCreate is a GORM hook that runs before creating a new record
func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// CompanyAccountID is a named platform-account identifier owned by a company
type CompanyAccountID struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	CompanyID string    `json:"company_id" gorm:"type:uuid;not null;index"`
	Platform  string    `json:"platform" gorm:"type:varchar(100);not null"` // meta, google_ads, dv360, ttd, etc.
	AccountID string    `json:"account_id" gorm:"type:varchar(255);not null"`
	Label     string    `json:"label" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the CompanyAccountID model
func (CompanyAccountID) TableName() string {
	return "company_account_ids"
}

// BeforeCreate is a GORM hook that runs before creating a new record
func (a *CompanyAccountID) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// CreateCompanyRequest represents the request to create a new company
type CreateCompanyRequest struct {
	Name string `json:"name" binding:"required" example:"Northwind Media"`
}

// UpdateCompanyRequest represents the request to rename a company
type UpdateCompanyRequest struct {
	Name string `json:"name" binding:"required" example:"Northwind Media Group"`
}

// CreateCompanyAccountIDRequest represents the request to attach a platform account id
type CreateCompanyAccountIDRequest struct {
	Platform  string `json:"platform" binding:"required" example:"meta"`
	AccountID string `json:"account_id" binding:"required" example:"act_1029384756"`
	Label     string `json:"label" example:"Primary Meta account"`
}
