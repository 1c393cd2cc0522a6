// Package excel renders admin reports of campaigns and their workflow
// timelines as Excel workbooks.
package excel

import (
	"fmt"
	"time"

	"github.com/adreach/campaign-workflow-backend/internal/database/repository"
	"github.com/adreach/campaign-workflow-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

type Service struct {
	campaignRepo repository.CampaignRepositoryInterface
	historyRepo  repository.WorkflowHistoryRepositoryInterface
}

func NewExcelService(
	campaignRepo repository.CampaignRepositoryInterface,
	historyRepo repository.WorkflowHistoryRepositoryInterface,
) *Service {
	return &Service{
		campaignRepo: campaignRepo,
		historyRepo:  historyRepo,
	}
}

var campaignHeaders = []string{
	"ID", "Name", "Client ID", "Status", "Budget",
	"Start Date", "End Date", "Audiences", "Approved At", "Created At",
}

// ExportCampaigns renders all campaigns (optionally with a per-campaign
// workflow timeline sheet) into an xlsx workbook and returns its bytes.
func (s *Service) ExportCampaigns(includeArchived, includeHistory bool) ([]byte, error) {
	campaigns, err := s.campaignRepo.ListAll(includeArchived)
	if err != nil {
		return nil, fmt.Errorf("failed to load campaigns: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Campaigns"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"DDEBF7"},
			Pattern: 1,
		},
	})

	for col, header := range campaignHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for row, c := range campaigns {
		values := []interface{}{
			c.ID,
			c.Name,
			c.ClientID,
			c.Status,
			c.Budget,
			formatDate(c.StartDate),
			formatDate(c.EndDate),
			len(c.Audiences),
			formatDate(c.ApprovedAt),
			c.CreatedAt.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	if includeHistory {
		if err := s.appendHistorySheet(f, campaigns); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Service) appendHistorySheet(f *excelize.File, campaigns []*models.Campaign) error {
	const sheet = "Workflow History"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create history sheet: %w", err)
	}

	headers := []string{"Campaign ID", "Campaign Name", "From", "To", "Actor ID", "Notes", "At"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	row := 2
	for _, c := range campaigns {
		entries, err := s.historyRepo.ListByCampaign(c.ID)
		if err != nil {
			return fmt.Errorf("failed to load history for campaign %s: %w", c.ID, err)
		}
		for _, e := range entries {
			from := ""
			if e.FromStatus != nil {
				from = *e.FromStatus
			}
			values := []interface{}{
				c.ID, c.Name, from, e.ToStatus, e.ActorID, e.Notes,
				e.CreatedAt.Format(time.RFC3339),
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				f.SetCellValue(sheet, cell, v)
			}
			row++
		}
	}
	return nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
