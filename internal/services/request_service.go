package services

import (
	"fmt"
	"time"

	"github.com/adreach/campaign-workflow-backend/internal/apperrors"
	"github.com/adreach/campaign-workflow-backend/internal/database/repository"
	"github.com/adreach/campaign-workflow-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RequestService runs the approval workflow on audience requests: the one-shot
// pending → approved/rejected state machine and the campaign materialization
// that approval performs.
type RequestService struct {
	tx          repository.TxManagerInterface
	requestRepo repository.AudienceRequestRepositoryInterface
	userRepo    repository.UserRepositoryInterface
	historyRepo repository.WorkflowHistoryRepositoryInterface
	activities  *ActivityService
	notifier    *NotificationService
}

func NewRequestService(
	tx repository.TxManagerInterface,
	requestRepo repository.AudienceRequestRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	historyRepo repository.WorkflowHistoryRepositoryInterface,
	activities *ActivityService,
	notifier *NotificationService,
) *RequestService {
	return &RequestService{
		tx:          tx,
		requestRepo: requestRepo,
		userRepo:    userRepo,
		historyRepo: historyRepo,
		activities:  activities,
		notifier:    notifier,
	}
}

// ApproveRequest approves a pending audience request and materializes its
// snapshot into a campaign. The request row is locked for the duration of the
// transaction, so a concurrent approval of the same request fails with a
// ConcurrencyConflict instead of creating a second campaign. Workflow
// history, activity, and fan-out run after commit and cannot undo the
// approval.
func (s *RequestService) ApproveRequest(actor *models.User, requestID, notes string) (*models.Campaign, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewAuthorization("approving requests requires an admin role")
	}

	var campaign *models.Campaign
	var priorCampaignStatus string

	err := s.tx.Transaction(func(stores *repository.Stores) error {
		request, err := stores.Requests.GetByIDForUpdate(requestID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.NewNotFound("audience request", requestID)
			}
			return fmt.Errorf("failed to load request: %w", err)
		}
		if request.Status != models.RequestStatusPending {
			return apperrors.NewConcurrencyConflict("audience request", requestID)
		}
		if request.ClientID == "" {
			return apperrors.NewDataIntegrity("audience request " + requestID + " has no client id")
		}

		now := time.Now()

		// Materialize: reuse the campaign the request was submitted from when
		// it still exists, otherwise create a fresh one. Either way the
		// snapshot is copied verbatim from the request.
		if request.CampaignID != nil {
			campaign, err = stores.Campaigns.GetByID(*request.CampaignID)
			if err != nil && err != gorm.ErrRecordNotFound {
				return fmt.Errorf("failed to load linked campaign: %w", err)
			}
		}
		if campaign != nil {
			priorCampaignStatus = campaign.Status
			applySnapshot(campaign, request)
			campaign.Status = models.StatusApproved
			campaign.ApprovedAt = &now
			if err := stores.Campaigns.Update(campaign); err != nil {
				return fmt.Errorf("failed to update campaign from request: %w", err)
			}
		} else {
			priorCampaignStatus = models.StatusPendingReview
			campaign = &models.Campaign{
				ClientID: request.ClientID,
				Name:     request.CampaignName,
			}
			applySnapshot(campaign, request)
			campaign.Status = models.StatusApproved
			campaign.ApprovedAt = &now
			if err := stores.Campaigns.Create(campaign); err != nil {
				return fmt.Errorf("failed to materialize campaign: %w", err)
			}
		}

		request.CampaignID = &campaign.ID
		request.Status = models.RequestStatusApproved
		request.ReviewNotes = notes
		request.ReviewedBy = &actor.ID
		request.ReviewedAt = &now
		if err := stores.Requests.Update(request); err != nil {
			return fmt.Errorf("failed to update request status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterReview(actor, campaign, priorCampaignStatus, models.StatusApproved, models.ActionApproved, requestID, notes)
	return campaign, nil
}

// RejectRequest rejects a pending audience request. A campaign already
// materialized for the request is transitioned to failed, never deleted.
func (s *RequestService) RejectRequest(actor *models.User, requestID, reason string) error {
	if !actor.IsAdmin() {
		return apperrors.NewAuthorization("rejecting requests requires an admin role")
	}

	var campaign *models.Campaign
	var priorCampaignStatus string

	err := s.tx.Transaction(func(stores *repository.Stores) error {
		request, err := stores.Requests.GetByIDForUpdate(requestID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.NewNotFound("audience request", requestID)
			}
			return fmt.Errorf("failed to load request: %w", err)
		}
		if request.Status != models.RequestStatusPending {
			return apperrors.NewConcurrencyConflict("audience request", requestID)
		}

		now := time.Now()
		request.Status = models.RequestStatusRejected
		request.ReviewNotes = reason
		request.ReviewedBy = &actor.ID
		request.ReviewedAt = &now
		if err := stores.Requests.Update(request); err != nil {
			return fmt.Errorf("failed to update request status: %w", err)
		}

		if request.CampaignID != nil {
			campaign, err = stores.Campaigns.GetByID(*request.CampaignID)
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					campaign = nil
					return nil
				}
				return fmt.Errorf("failed to load linked campaign: %w", err)
			}
			priorCampaignStatus = campaign.Status
			campaign.Status = models.StatusFailed
			if err := stores.Campaigns.Update(campaign); err != nil {
				return fmt.Errorf("failed to fail linked campaign: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.afterReview(actor, campaign, priorCampaignStatus, models.StatusFailed, models.ActionRejected, requestID, reason)
	return nil
}

// afterReview runs the secondary effects of a review decision: workflow
// history, the activity row, and fan-out to the request owner's side.
func (s *RequestService) afterReview(actor *models.User, campaign *models.Campaign, fromStatus, toStatus, actionType, requestID, notes string) {
	hooks := &postCommitHooks{}

	if campaign != nil {
		campaignID := campaign.ID
		hooks.add("review history", func() error {
			from := fromStatus
			entry := &models.CampaignWorkflowHistory{
				CampaignID: campaignID,
				ActorID:    actor.ID,
				FromStatus: &from,
				ToStatus:   toStatus,
				Notes:      notes,
			}
			return s.historyRepo.Create(entry)
		})
		hooks.add("review activity", func() error {
			details := models.StatusChangeDetails{
				FromStatus: fromStatus,
				ToStatus:   toStatus,
				Notes:      notes,
				RequestID:  requestID,
			}
			return s.activities.Record(campaignID, actor.ID, actionType, details.Details())
		})
		hooks.add("review fan-out", func() error {
			return s.notifyReviewOutcome(actor, campaign, actionType, notes)
		})
	}

	hooks.run()
}

// notifyReviewOutcome fans the decision out to the request owner and the
// owner's company teammates
func (s *RequestService) notifyReviewOutcome(actor *models.User, campaign *models.Campaign, actionType, notes string) error {
	recipients := []string{campaign.ClientID}
	owner, err := s.userRepo.GetByID(campaign.ClientID)
	if err != nil {
		logrus.Warnf("Failed to load request owner %s for fan-out: %v", campaign.ClientID, err)
	} else if owner.CompanyID != nil {
		teammates, err := s.notifier.CompanyTeamIDs(*owner.CompanyID, actor.ID)
		if err != nil {
			return err
		}
		recipients = append(recipients, teammates...)
	}

	var title, message string
	if actionType == models.ActionApproved {
		title = "Campaign approved"
		message = fmt.Sprintf("Your campaign %q has been approved and is now %s.",
			campaign.Name, HumanizeStatus(campaign.Status))
	} else {
		title = "Request rejected"
		message = fmt.Sprintf("Your request for campaign %q was rejected.", campaign.Name)
		if notes != "" {
			message = fmt.Sprintf("%s Reason: %s", message, notes)
		}
	}
	return s.notifier.Notify(title, message, recipients, &campaign.ID)
}

// applySnapshot copies the request's immutable snapshot onto a campaign
func applySnapshot(campaign *models.Campaign, request *models.AudienceRequest) {
	campaign.Name = request.CampaignName
	campaign.Audiences = request.Audiences
	campaign.SocialPlatforms = request.SocialPlatforms
	campaign.ProgrammaticPlatforms = request.ProgrammaticPlatforms
	campaign.Budget = request.Budget
	campaign.StartDate = request.StartDate
	campaign.EndDate = request.EndDate
}

// GetRequest loads one request, visible to admins and to its owner
func (s *RequestService) GetRequest(actor *models.User, requestID string) (*models.AudienceRequestResponse, error) {
	request, err := s.loadVisible(actor, requestID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(request), nil
}

// ListRequests lists all requests for admins (optionally filtered by status)
// and the actor's own requests otherwise
func (s *RequestService) ListRequests(actor *models.User, status string, includeArchived bool) ([]*models.AudienceRequestResponse, error) {
	var requests []*models.AudienceRequest
	var err error
	if actor.IsAdmin() {
		requests, err = s.requestRepo.ListAll(status, includeArchived)
	} else {
		requests, err = s.requestRepo.ListByClient(actor.ID, includeArchived)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]*models.AudienceRequestResponse, len(requests))
	for i, request := range requests {
		responses[i] = s.toResponse(request)
	}
	return responses, nil
}

// ArchiveRequest flips the archived flag on a request the actor may see.
// Archived requests drop out of default listings but are never deleted.
func (s *RequestService) ArchiveRequest(actor *models.User, requestID string, archived bool) error {
	request, err := s.loadVisible(actor, requestID)
	if err != nil {
		return err
	}
	return s.requestRepo.SetArchived(request.ID, archived)
}

func (s *RequestService) loadVisible(actor *models.User, requestID string) (*models.AudienceRequest, error) {
	request, err := s.requestRepo.GetByID(requestID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFound("audience request", requestID)
		}
		return nil, fmt.Errorf("failed to load request: %w", err)
	}
	if !actor.IsAdmin() && request.ClientID != actor.ID {
		return nil, apperrors.NewNotFound("audience request", requestID)
	}
	return request, nil
}

func (s *RequestService) toResponse(r *models.AudienceRequest) *models.AudienceRequestResponse {
	return &models.AudienceRequestResponse{
		ID:                    r.ID,
		ClientID:              r.ClientID,
		CampaignID:            r.CampaignID,
		CampaignName:          r.CampaignName,
		Audiences:             r.Audiences,
		SocialPlatforms:       r.SocialPlatforms,
		ProgrammaticPlatforms: r.ProgrammaticPlatforms,
		Budget:                r.Budget,
		StartDate:             r.StartDate,
		EndDate:               r.EndDate,
		Notes:                 r.Notes,
		Status:                r.Status,
		ReviewNotes:           r.ReviewNotes,
		ReviewedBy:            r.ReviewedBy,
		ReviewedAt:            r.ReviewedAt,
		Archived:              r.Archived,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}
}
