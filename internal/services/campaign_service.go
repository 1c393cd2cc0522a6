package services

import (
	"fmt"
	"time"

	"github.com/adreach/campaign-workflow-backend/internal/apperrors"
	"github.com/adreach/campaign-workflow-backend/internal/database/repository"
	"github.com/adreach/campaign-workflow-backend/internal/models"

	"gorm.io/gorm"
)

// CampaignService owns the campaign side of the lifecycle: draft building,
// submission for review, the operational status workflow, and audience
// mutations. All mutation flows through here so activity and notification
// side effects are never skipped.
type CampaignService struct {
	tx           repository.TxManagerInterface
	campaignRepo repository.CampaignRepositoryInterface
	requestRepo  repository.AudienceRequestRepositoryInterface
	userRepo     repository.UserRepositoryInterface
	historyRepo  repository.WorkflowHistoryRepositoryInterface
	activities   *ActivityService
	notifier     *NotificationService
}

func NewCampaignService(
	tx repository.TxManagerInterface,
	campaignRepo repository.CampaignRepositoryInterface,
	requestRepo repository.AudienceRequestRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	historyRepo repository.WorkflowHistoryRepositoryInterface,
	activities *ActivityService,
	notifier *NotificationService,
) *CampaignService {
	return &CampaignService{
		tx:           tx,
		campaignRepo: campaignRepo,
		requestRepo:  requestRepo,
		userRepo:     userRepo,
		historyRepo:  historyRepo,
		activities:   activities,
		notifier:     notifier,
	}
}

// CreateCampaign creates a draft campaign owned by the actor
func (s *CampaignService) CreateCampaign(actor *models.User, req *models.CreateCampaignRequest) (*models.CampaignResponse, error) {
	if err := validateCampaignFields(req.Name, req.Budget, req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	campaign := &models.Campaign{
		ClientID:              actor.ID,
		Name:                  req.Name,
		Audiences:             models.AudienceList(req.Audiences),
		SocialPlatforms:       req.SocialPlatforms,
		ProgrammaticPlatforms: req.ProgrammaticPlatforms,
		Budget:                req.Budget,
		StartDate:             req.StartDate,
		EndDate:               req.EndDate,
		Status:                models.StatusDraft,
	}
	if err := s.campaignRepo.Create(campaign); err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	hooks := &postCommitHooks{}
	hooks.add("create activity", func() error {
		return s.activities.Record(campaign.ID, actor.ID, models.ActionCreated, models.FieldChangeDetails{}.Details())
	})
	hooks.run()

	return s.toResponse(campaign), nil
}

// GetCampaign loads one campaign, visible to admins, the owner, and the
// owner's company teammates
func (s *CampaignService) GetCampaign(actor *models.User, campaignID string) (*models.CampaignResponse, error) {
	campaign, err := s.loadVisible(actor, campaignID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(campaign), nil
}

// ListCampaigns lists all campaigns for admins, and the campaigns of the
// actor's company (or just their own, without a company) otherwise
func (s *CampaignService) ListCampaigns(actor *models.User, includeArchived bool) ([]*models.CampaignResponse, error) {
	var campaigns []*models.Campaign
	var err error
	switch {
	case actor.IsAdmin():
		campaigns, err = s.campaignRepo.ListAll(includeArchived)
	case actor.CompanyID != nil:
		var teamIDs []string
		teamIDs, err = s.userRepo.CompanyTeamIDs(*actor.CompanyID, "")
		if err != nil {
			break
		}
		campaigns, err = s.campaignRepo.ListByClients(teamIDs, includeArchived)
	default:
		campaigns, err = s.campaignRepo.ListByClient(actor.ID, includeArchived)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	responses := make([]*models.CampaignResponse, len(campaigns))
	for i, c := range campaigns {
		responses[i] = s.toResponse(c)
	}
	return responses, nil
}

// UpdateCampaign edits a campaign's fields. Clients may only edit their own
// drafts; after submission, edits require an admin and still append activity.
func (s *CampaignService) UpdateCampaign(actor *models.User, campaignID string, req *models.UpdateCampaignRequest) (*models.CampaignResponse, error) {
	campaign, err := s.loadVisible(actor, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.Status != models.StatusDraft && !actor.IsAdmin() {
		return nil, apperrors.NewValidation("status", "only draft campaigns can be edited")
	}
	if !actor.IsAdmin() && campaign.ClientID != actor.ID {
		return nil, apperrors.NewAuthorization("only the campaign owner can edit a draft")
	}
	if err := validateCampaignFields(req.Name, req.Budget, req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	campaign.Name = req.Name
	campaign.Audiences = models.AudienceList(req.Audiences)
	campaign.SocialPlatforms = req.SocialPlatforms
	campaign.ProgrammaticPlatforms = req.ProgrammaticPlatforms
	campaign.Budget = req.Budget
	campaign.StartDate = req.StartDate
	campaign.EndDate = req.EndDate

	if err := s.campaignRepo.Update(campaign); err != nil {
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}

	hooks := &postCommitHooks{}
	hooks.add("update activity", func() error {
		details := models.FieldChangeDetails{
			Fields: []string{"name", "audiences", "platforms", "budget", "dates"},
		}
		return s.activities.Record(campaign.ID, actor.ID, models.ActionUpdated, details.Details())
	})
	hooks.run()

	return s.toResponse(campaign), nil
}

// SubmitCampaign submits a draft for review: it snapshots the draft into an
// AudienceRequest (the durable record of what was asked for) and walks the
// campaign through submitted into pending_review. Admin fan-out runs after
// commit.
func (s *CampaignService) SubmitCampaign(actor *models.User, campaignID, notes string) (*models.AudienceRequest, error) {
	var campaign *models.Campaign
	var request *models.AudienceRequest

	err := s.tx.Transaction(func(stores *repository.Stores) error {
		var err error
		campaign, err = stores.Campaigns.GetByID(campaignID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.NewNotFound("campaign", campaignID)
			}
			return fmt.Errorf("failed to load campaign: %w", err)
		}
		if campaign.ClientID != actor.ID && !actor.IsAdmin() {
			return apperrors.NewAuthorization("only the campaign owner can submit it")
		}
		if campaign.Status != models.StatusDraft {
			return apperrors.NewValidation("status", "only draft campaigns can be submitted")
		}
		if err := validateCampaignFields(campaign.Name, campaign.Budget, campaign.StartDate, campaign.EndDate); err != nil {
			return err
		}

		request = &models.AudienceRequest{
			ClientID:              campaign.ClientID,
			CampaignID:            &campaign.ID,
			CampaignName:          campaign.Name,
			Audiences:             campaign.Audiences,
			SocialPlatforms:       campaign.SocialPlatforms,
			ProgrammaticPlatforms: campaign.ProgrammaticPlatforms,
			Budget:                campaign.Budget,
			StartDate:             campaign.StartDate,
			EndDate:               campaign.EndDate,
			Notes:                 notes,
			Status:                models.RequestStatusPending,
		}
		if err := stores.Requests.Create(request); err != nil {
			return fmt.Errorf("failed to create audience request: %w", err)
		}

		ok, err := stores.Campaigns.UpdateStatusCAS(campaign.ID, models.StatusDraft, models.StatusPendingReview, nil)
		if err != nil {
			return fmt.Errorf("failed to submit campaign: %w", err)
		}
		if !ok {
			return apperrors.NewConcurrencyConflict("campaign", campaign.ID)
		}
		campaign.Status = models.StatusPendingReview
		return nil
	})
	if err != nil {
		return nil, err
	}

	hooks := &postCommitHooks{}
	// Submission walks draft → submitted → pending_review; both hops land in
	// the history so the audit trail stays on the transition graph.
	transitions := []struct{ from, to string }{
		{models.StatusDraft, models.StatusSubmitted},
		{models.StatusSubmitted, models.StatusPendingReview},
	}
	for _, t := range transitions {
		from, to := t.from, t.to
		hooks.add("submit history "+to, func() error {
			return s.historyRepo.Create(&models.CampaignWorkflowHistory{
				CampaignID: campaign.ID,
				ActorID:    actor.ID,
				FromStatus: &from,
				ToStatus:   to,
				Notes:      notes,
			})
		})
	}
	hooks.add("submit activity", func() error {
		details := models.StatusChangeDetails{
			FromStatus: models.StatusDraft,
			ToStatus:   models.StatusPendingReview,
			Notes:      notes,
			RequestID:  request.ID,
		}
		return s.activities.Record(campaign.ID, actor.ID, models.ActionStatusChanged, details.Details())
	})
	hooks.add("submit fan-out", func() error {
		admins, err := s.notifier.AdminUserIDs()
		if err != nil {
			return err
		}
		title := "Audience request awaiting review"
		message := fmt.Sprintf("Campaign %q was submitted for approval.", campaign.Name)
		return s.notifier.Notify(title, message, admins, &campaign.ID)
	})
	hooks.run()

	return request, nil
}

// UpdateCampaignStatus advances a campaign through the operational workflow.
// Admin-only; the transition graph is enforced, and the write is a
// compare-and-swap on the prior status so concurrent transitions cannot race
// on the same campaign. The first arrival at approved stamps approvedAt.
func (s *CampaignService) UpdateCampaignStatus(actor *models.User, campaignID, newStatus, notes string) (*models.CampaignResponse, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewAuthorization("updating campaign status requires an admin role")
	}
	if !KnownStatus(newStatus) {
		return nil, apperrors.NewValidation("status", "unknown status "+newStatus)
	}

	campaign, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFound("campaign", campaignID)
		}
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}

	fromStatus := campaign.Status
	if !CanTransition(fromStatus, newStatus) {
		return nil, apperrors.NewValidation("status",
			fmt.Sprintf("cannot transition from %s to %s", fromStatus, newStatus))
	}

	var approvedAt *time.Time
	if newStatus == models.StatusApproved && campaign.ApprovedAt == nil {
		now := time.Now()
		approvedAt = &now
	}

	ok, err := s.campaignRepo.UpdateStatusCAS(campaignID, fromStatus, newStatus, approvedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update campaign status: %w", err)
	}
	if !ok {
		return nil, apperrors.NewConcurrencyConflict("campaign", campaignID)
	}
	campaign.Status = newStatus
	if approvedAt != nil {
		campaign.ApprovedAt = approvedAt
	}

	hooks := &postCommitHooks{}
	hooks.add("status history", func() error {
		from := fromStatus
		return s.historyRepo.Create(&models.CampaignWorkflowHistory{
			CampaignID: campaignID,
			ActorID:    actor.ID,
			FromStatus: &from,
			ToStatus:   newStatus,
			Notes:      notes,
		})
	})
	hooks.add("status activity", func() error {
		details := models.StatusChangeDetails{
			FromStatus: fromStatus,
			ToStatus:   newStatus,
			Notes:      notes,
		}
		return s.activities.Record(campaignID, actor.ID, models.ActionStatusChanged, details.Details())
	})
	hooks.add("status fan-out", func() error {
		return s.notifyStatusChange(actor, campaign, fromStatus, newStatus)
	})
	hooks.run()

	return s.toResponse(campaign), nil
}

// notifyStatusChange tells the owner and their teammates about a transition,
// in human-readable form
func (s *CampaignService) notifyStatusChange(actor *models.User, campaign *models.Campaign, fromStatus, toStatus string) error {
	recipients := []string{campaign.ClientID}
	owner, err := s.userRepo.GetByID(campaign.ClientID)
	if err == nil && owner.CompanyID != nil {
		teammates, err := s.notifier.CompanyTeamIDs(*owner.CompanyID, actor.ID)
		if err != nil {
			return err
		}
		recipients = append(recipients, teammates...)
	}

	title := "Campaign status updated"
	message := fmt.Sprintf("Campaign %q moved from %s to %s.",
		campaign.Name, HumanizeStatus(fromStatus), HumanizeStatus(toStatus))
	return s.notifier.Notify(title, message, recipients, &campaign.ID)
}

// AddAudience adds an audience snapshot to the campaign's list, keyed by
// audience id. Adding an already-present audience is a silent no-op.
func (s *CampaignService) AddAudience(actor *models.User, campaignID string, segment models.AudienceSegment) (*models.CampaignResponse, error) {
	if segment.ID == "" {
		return nil, apperrors.NewValidation("audience.id", "audience id must not be empty")
	}

	campaign, err := s.loadMutable(actor, campaignID)
	if err != nil {
		return nil, err
	}

	if campaign.Audiences.Contains(segment.ID) {
		return s.toResponse(campaign), nil
	}

	campaign.Audiences = append(campaign.Audiences, segment)
	if err := s.campaignRepo.UpdateAudiences(campaignID, campaign.Audiences); err != nil {
		return nil, fmt.Errorf("failed to add audience: %w", err)
	}

	hooks := &postCommitHooks{}
	hooks.add("audience added activity", func() error {
		details := models.AudienceDetails{AudienceID: segment.ID, AudienceName: segment.Name}
		return s.activities.Record(campaignID, actor.ID, models.ActionAudienceAdded, details.Details())
	})
	hooks.run()

	return s.toResponse(campaign), nil
}

// RemoveAudience removes an audience from the campaign's list by id.
// Removing an absent audience is a silent no-op.
func (s *CampaignService) RemoveAudience(actor *models.User, campaignID, audienceID string) (*models.CampaignResponse, error) {
	campaign, err := s.loadMutable(actor, campaignID)
	if err != nil {
		return nil, err
	}

	var removed *models.AudienceSegment
	kept := make(models.AudienceList, 0, len(campaign.Audiences))
	for _, seg := range campaign.Audiences {
		if seg.ID == audienceID {
			cut := seg
			removed = &cut
			continue
		}
		kept = append(kept, seg)
	}
	if removed == nil {
		return s.toResponse(campaign), nil
	}

	campaign.Audiences = kept
	if err := s.campaignRepo.UpdateAudiences(campaignID, kept); err != nil {
		return nil, fmt.Errorf("failed to remove audience: %w", err)
	}

	hooks := &postCommitHooks{}
	hooks.add("audience removed activity", func() error {
		details := models.AudienceDetails{AudienceID: removed.ID, AudienceName: removed.Name}
		return s.activities.Record(campaignID, actor.ID, models.ActionAudienceRemoved, details.Details())
	})
	hooks.run()

	return s.toResponse(campaign), nil
}

// ArchiveCampaign flips the archived flag. Archived campaigns drop out of
// default listings but are never deleted.
func (s *CampaignService) ArchiveCampaign(actor *models.User, campaignID string, archived bool) error {
	campaign, err := s.loadVisible(actor, campaignID)
	if err != nil {
		return err
	}
	if campaign.ClientID != actor.ID && !actor.IsAdmin() {
		return apperrors.NewAuthorization("only the campaign owner or an admin can archive it")
	}
	return s.campaignRepo.SetArchived(campaignID, archived)
}

// loadVisible loads a campaign if the actor may see it: admins, the owner,
// and the owner's company teammates. Invisible campaigns surface as not found
// rather than forbidden.
func (s *CampaignService) loadVisible(actor *models.User, campaignID string) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFound("campaign", campaignID)
		}
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}
	if actor.IsAdmin() || campaign.ClientID == actor.ID {
		return campaign, nil
	}
	if actor.CompanyID != nil {
		owner, err := s.userRepo.GetByID(campaign.ClientID)
		if err == nil && owner.CompanyID != nil && *owner.CompanyID == *actor.CompanyID {
			return campaign, nil
		}
	}
	return nil, apperrors.NewNotFound("campaign", campaignID)
}

// loadMutable loads a campaign the actor may mutate audiences on: the owner
// while the campaign is a draft, or an admin at any point
func (s *CampaignService) loadMutable(actor *models.User, campaignID string) (*models.Campaign, error) {
	campaign, err := s.loadVisible(actor, campaignID)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return campaign, nil
	}
	if campaign.ClientID != actor.ID {
		return nil, apperrors.NewAuthorization("only the campaign owner can change its audiences")
	}
	if campaign.Status != models.StatusDraft {
		return nil, apperrors.NewValidation("status", "audiences can only be changed while the campaign is a draft")
	}
	return campaign, nil
}

// validateCampaignFields checks the draft invariants: non-empty name,
// non-negative budget, end date not before start date
func validateCampaignFields(name string, budget float64, start, end *time.Time) error {
	if name == "" {
		return apperrors.NewValidation("name", "campaign name must not be empty")
	}
	if budget < 0 {
		return apperrors.NewValidation("budget", "budget must not be negative")
	}
	if start != nil && end != nil && end.Before(*start) {
		return apperrors.NewValidation("end_date", "end date must not be before start date")
	}
	return nil
}

func (s *CampaignService) toResponse(c *models.Campaign) *models.CampaignResponse {
	return &models.CampaignResponse{
		ID:                    c.ID,
		ClientID:              c.ClientID,
		Name:                  c.Name,
		Audiences:             c.Audiences,
		SocialPlatforms:       c.SocialPlatforms,
		ProgrammaticPlatforms: c.ProgrammaticPlatforms,
		Budget:                c.Budget,
		StartDate:             c.StartDate,
		EndDate:               c.EndDate,
		Status:                c.Status,
		StatusPhase:           ClassifyStatus(c.Status),
		Archived:              c.Archived,
		ApprovedAt:            c.ApprovedAt,
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}
}
