package services

import (
	"fmt"

	"github.com/adreach/campaign-workflow-backend/internal/database/repository"
	"github.com/adreach/campaign-workflow-backend/internal/models"
)

type ActivityService struct {
	activityRepo repository.ActivityRepositoryInterface
	historyRepo  repository.WorkflowHistoryRepositoryInterface
}

func NewActivityService(
	activityRepo repository.ActivityRepositoryInterface,
	historyRepo repository.WorkflowHistoryRepositoryInterface,
) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		historyRepo:  historyRepo,
	}
}

// Record appends one activity row. The details payload comes from the typed
// structs in models; actionType tells readers which shape to expect.
func (s *ActivityService) Record(campaignID, actorID, actionType string, details models.JSON) error {
	activity := &models.CampaignActivity{
		CampaignID:    campaignID,
		ActorID:       actorID,
		ActionType:    actionType,
		ActionDetails: details,
	}
	if err := s.activityRepo.Create(activity); err != nil {
		return fmt.Errorf("failed to record %s activity: %w", actionType, err)
	}
	return nil
}

// Timeline retrieves the activity log for a campaign in creation order
func (s *ActivityService) Timeline(campaignID string) ([]*models.ActivityResponse, error) {
	activities, err := s.activityRepo.ListByCampaign(campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity timeline: %w", err)
	}
	responses := make([]*models.ActivityResponse, len(activities))
	for i, a := range activities {
		responses[i] = &models.ActivityResponse{
			ID:            a.ID,
			CampaignID:    a.CampaignID,
			ActorID:       a.ActorID,
			ActionType:    a.ActionType,
			ActionDetails: a.ActionDetails,
			CreatedAt:     a.CreatedAt,
		}
	}
	return responses, nil
}

// WorkflowHistory retrieves the transition log for a campaign. Rows come back
// chronological; display layers show them newest first.
func (s *ActivityService) WorkflowHistory(campaignID string) ([]*models.WorkflowHistoryResponse, error) {
	entries, err := s.historyRepo.ListByCampaign(campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to load workflow history: %w", err)
	}
	responses := make([]*models.WorkflowHistoryResponse, len(entries))
	for i, e := range entries {
		responses[i] = &models.WorkflowHistoryResponse{
			ID:         e.ID,
			CampaignID: e.CampaignID,
			ActorID:    e.ActorID,
			FromStatus: e.FromStatus,
			ToStatus:   e.ToStatus,
			Notes:      e.Notes,
			CreatedAt:  e.CreatedAt,
		}
	}
	return responses, nil
}
