package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/adreach/campaign-workflow-backend/internal/database/repository"
	"github.com/adreach/campaign-workflow-backend/internal/middleware"
	"github.com/adreach/campaign-workflow-backend/internal/models"
	"github.com/adreach/campaign-workflow-backend/internal/services"
	"github.com/adreach/campaign-workflow-backend/internal/services/excel"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminHandler covers the administrative surface: user roles, companies and
// their platform account ids, and Excel reporting.
type AdminHandler struct {
	userService    *services.UserService
	companyService *services.CompanyService
	excelService   *excel.Service
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	historyRepo := repository.NewWorkflowHistoryRepository(db)

	return &AdminHandler{
		userService:    services.NewUserService(userRepo, companyRepo),
		companyService: services.NewCompanyService(companyRepo),
		excelService:   excel.NewExcelService(campaignRepo, historyRepo),
	}
}

// GetAllUsers godoc
// @Summary List all users
// @Description List every user account (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/admin/users [get]
func (h *AdminHandler) GetAllUsers(c *gin.Context) {
	user := middleware.CurrentUser(c)

	users, err := h.userService.ListUsers(user)
	if err != nil {
		respondError(c, err, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, users)
}

// UpdateUserRole godoc
// @Summary Change a user's role
// @Description Reassign a user's role (admin only; super_admin changes require super_admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body models.UpdateUserRoleRequest true "New role"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/admin/users/{id}/role [put]
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	updated, err := h.userService.ChangeRole(user, c.Param("id"), req.Role)
	if err != nil {
		respondError(c, err, "Failed to update user role")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// AssignUserCompany godoc
// @Summary Assign a user to a company
// @Description Move a user into a company (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body models.AssignCompanyRequest true "Company assignment"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/admin/users/{id}/company [put]
func (h *AdminHandler) AssignUserCompany(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.AssignCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	updated, err := h.userService.AssignCompany(user, c.Param("id"), req.CompanyID)
	if err != nil {
		respondError(c, err, "Failed to assign company")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// CreateCompany godoc
// @Summary Create a company
// @Description Create a new client company (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateCompanyRequest true "Company fields"
// @Success 201 {object} models.Company
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/admin/companies [post]
func (h *AdminHandler) CreateCompany(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	company, err := h.companyService.CreateCompany(user, &req)
	if err != nil {
		respondError(c, err, "Failed to create company")
		return
	}

	c.JSON(http.StatusCreated, company)
}

// GetAllCompanies godoc
// @Summary List all companies
// @Description List every client company (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Company
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/admin/companies [get]
func (h *AdminHandler) GetAllCompanies(c *gin.Context) {
	user := middleware.CurrentUser(c)

	companies, err := h.companyService.ListCompanies(user)
	if err != nil {
		respondError(c, err, "Failed to list companies")
		return
	}

	c.JSON(http.StatusOK, companies)
}

// GetCompanyByID godoc
// @Summary Get company by ID
// @Description Get a company with its members and platform account ids
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Company ID"
// @Success 200 {object} models.Company
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/admin/companies/{id} [get]
func (h *AdminHandler) GetCompanyByID(c *gin.Context) {
	company, err := h.companyService.GetCompany(c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get company")
		return
	}

	c.JSON(http.StatusOK, company)
}

// UpdateCompany godoc
// @Summary Rename a company
// @Description Rename a client company (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Company ID"
// @Param request body models.UpdateCompanyRequest true "New name"
// @Success 200 {object} models.Company
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/admin/companies/{id} [put]
func (h *AdminHandler) UpdateCompany(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	company, err := h.companyService.RenameCompany(user, c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "Failed to update company")
		return
	}

	c.JSON(http.StatusOK, company)
}

// AddCompanyAccountID godoc
// @Summary Attach a platform account id to a company
// @Description Add a named platform account identifier (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Company ID"
// @Param request body models.CreateCompanyAccountIDRequest true "Account id fields"
// @Success 201 {object} models.CompanyAccountID
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/admin/companies/{id}/account-ids [post]
func (h *AdminHandler) AddCompanyAccountID(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.CreateCompanyAccountIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	account, err := h.companyService.AddAccountID(user, c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "Failed to add account id")
		return
	}

	c.JSON(http.StatusCreated, account)
}

// GetCompanyAccountIDs godoc
// @Summary List a company's platform account ids
// @Description List the named platform account identifiers attached to a company
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Company ID"
// @Success 200 {array} models.CompanyAccountID
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/admin/companies/{id}/account-ids [get]
func (h *AdminHandler) GetCompanyAccountIDs(c *gin.Context) {
	accounts, err := h.companyService.ListAccountIDs(c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list account ids")
		return
	}

	c.JSON(http.StatusOK, accounts)
}

// DeleteCompanyAccountID godoc
// @Summary Detach a platform account id from a company
// @Description Remove a named platform account identifier (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Company ID"
// @Param accountId path string true "Account ID record"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/admin/companies/{id}/account-ids/{accountId} [delete]
func (h *AdminHandler) DeleteCompanyAccountID(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.companyService.RemoveAccountID(user, c.Param("id"), c.Param("accountId")); err != nil {
		respondError(c, err, "Failed to delete account id")
		return
	}

	c.Status(http.StatusNoContent)
}

// ExportCampaigns godoc
// @Summary Export campaigns to Excel
// @Description Download all campaigns (optionally with workflow history) as an xlsx workbook
// @Tags admin
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param include_archived query bool false "Include archived campaigns"
// @Param include_history query bool false "Add a workflow history sheet"
// @Success 200 {file} binary "Excel file"
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/admin/campaigns/export [get]
func (h *AdminHandler) ExportCampaigns(c *gin.Context) {
	includeArchived := c.Query("include_archived") == "true"
	includeHistory := c.Query("include_history") == "true"

	data, err := h.excelService.ExportCampaigns(includeArchived, includeHistory)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export campaigns", "details": err.Error()})
		return
	}

	filename := fmt.Sprintf("campaigns_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
