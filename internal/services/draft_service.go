package services

import (
	"context"

	"github.com/adreach/campaign-workflow-backend/internal/database/repository"
	"github.com/adreach/campaign-workflow-backend/internal/models"

	"github.com/sirupsen/logrus"
)

// DraftService runs the asynchronous draft-building flow. Campaign creation
// happens in the background; audience-add calls issued before the creation
// round trip resolves rendezvous on the client's readiness coordinator
// instead of racing or silently no-oping.
type DraftService struct {
	registry     *DraftSessionRegistry
	campaigns    *CampaignService
	campaignRepo repository.CampaignRepositoryInterface
}

func NewDraftService(
	registry *DraftSessionRegistry,
	campaigns *CampaignService,
	campaignRepo repository.CampaignRepositoryInterface,
) *DraftService {
	return &DraftService{
		registry:     registry,
		campaigns:    campaigns,
		campaignRepo: campaignRepo,
	}
}

// StartDraft kicks off campaign creation in the background and returns
// immediately. The created campaign (or the creation failure) is published to
// the actor's coordinator, resolving any waiter that raced ahead.
func (s *DraftService) StartDraft(actor *models.User, req *models.CreateCampaignRequest) {
	session := s.registry.Session(actor.ID)
	session.Clear()

	go func() {
		response, err := s.campaigns.CreateCampaign(actor, req)
		if err != nil {
			logrus.Warnf("Background draft creation failed for user %s: %v", actor.ID, err)
			session.Fail(err)
			return
		}
		campaign, err := s.campaignRepo.GetByID(response.ID)
		if err != nil {
			session.Fail(err)
			return
		}
		session.Set(campaign)
	}()
}

// AddAudience blocks until the actor's in-flight draft is ready, then adds
// the audience to it. ctx bounds the wait so a silently failed creation
// cannot hang the caller forever.
func (s *DraftService) AddAudience(ctx context.Context, actor *models.User, segment models.AudienceSegment) (*models.CampaignResponse, error) {
	session := s.registry.Session(actor.ID)
	campaign, err := session.Wait(ctx)
	if err != nil {
		return nil, err
	}
	return s.campaigns.AddAudience(actor, campaign.ID, segment)
}

// ActiveCampaign returns the actor's draft once it is ready, bounded by ctx
func (s *DraftService) ActiveCampaign(ctx context.Context, actor *models.User) (*models.CampaignResponse, error) {
	session := s.registry.Session(actor.ID)
	campaign, err := session.Wait(ctx)
	if err != nil {
		return nil, err
	}
	return s.campaigns.GetCampaign(actor, campaign.ID)
}

// Discard resets the actor's draft session, e.g. on navigation away
func (s *DraftService) Discard(actor *models.User) {
	s.registry.Session(actor.ID).Clear()
	s.registry.Drop(actor.ID)
}
