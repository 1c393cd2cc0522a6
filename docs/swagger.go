// Package docs provides Swagger documentation for the API.
package docs

// @title Campaign Workflow API
// @version 1.0
// @description Campaign lifecycle and approval workflow engine for advertising clients

// @contact.name API Support
// @contact.email support@adreach.io

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
