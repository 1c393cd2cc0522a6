package services

import (
	"testing"

	"github.com/adreach/campaign-workflow-backend/internal/apperrors"
	"github.com/adreach/campaign-workflow-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingRequest(env *testEnv, owner *models.User) *models.AudienceRequest {
	request := &models.AudienceRequest{
		ClientID:     owner.ID,
		CampaignName: "Q3 Travel Push",
		Audiences: models.AudienceList{
			{ID: "aud-1", Name: "Frequent Flyers", Reach: 120000, CPM: 4.5},
		},
		SocialPlatforms: []string{"meta"},
		Budget:          5000,
		Status:          models.RequestStatusPending,
	}
	env.requests.Create(request)
	return request
}

func TestApproveRequestMaterializesCampaign(t *testing.T) {
	env := newTestEnv()
	owner := env.addUser(models.RoleUser, nil)
	admin := env.addUser(models.RoleAdmin, nil)
	request := pendingRequest(env, owner)

	campaign, err := env.requestService.ApproveRequest(admin, request.ID, "looks good")
	require.NoError(t, err)

	assert.Equal(t, models.StatusApproved, campaign.Status)
	assert.Equal(t, owner.ID, campaign.ClientID)
	assert.Equal(t, "Q3 Travel Push", campaign.Name)
	assert.Equal(t, 5000.0, campaign.Budget)
	require.NotNil(t, campaign.ApprovedAt)
	require.Len(t, campaign.Audiences, 1)
	assert.Equal(t, "aud-1", campaign.Audiences[0].ID)

	// Request carries the review outcome and links back to the campaign
	updated, err := env.requests.GetByID(request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusApproved, updated.Status)
	assert.Equal(t, "looks good", updated.ReviewNotes)
	require.NotNil(t, updated.ReviewedBy)
	assert.Equal(t, admin.ID, *updated.ReviewedBy)
	assert.NotNil(t, updated.ReviewedAt)
	require.NotNil(t, updated.CampaignID)
	assert.Equal(t, campaign.ID, *updated.CampaignID)

	// One history row: pending_review → approved
	history, err := env.histories.ListByCampaign(campaign.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.NotNil(t, history[0].FromStatus)
	assert.Equal(t, models.StatusPendingReview, *history[0].FromStatus)
	assert.Equal(t, models.StatusApproved, history[0].ToStatus)
	assert.Equal(t, admin.ID, history[0].ActorID)

	// Activity row of type approved
	activity, err := env.activities.ListByCampaign(campaign.ID)
	require.NoError(t, err)
	require.Len(t, activity, 1)
	assert.Equal(t, models.ActionApproved, activity[0].ActionType)

	// Owner is notified
	notifs, err := env.notifications.ListByRecipient(owner.ID)
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Equal(t, "Campaign approved", notifs[0].Title)
}

func TestApproveRequestReusesLinkedDraftCampaign(t *testing.T) {
	env := newTestEnv()
	owner := env.addUser(models.RoleUser, nil)
	admin := env.addUser(models.RoleAdmin, nil)

	draft := env.addDraft(owner)
	_, err := env.campaignService.SubmitCampaign(owner, draft.ID, "please review")
	require.NoError(t, err)

	requests, err := env.requests.ListAll("", false)
	require.NoError(t, err)
	require.Len(t, requests, 1)

	campaign, err := env.requestService.ApproveRequest(admin, requests[0].ID, "")
	require.NoError(t, err)

	// The draft's row was promoted, not duplicated
	assert.Equal(t, draft.ID, campaign.ID)
	assert.Equal(t, models.StatusApproved, campaign.Status)
	all, err := env.campaigns.ListAll(true)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestApproveRequestIsOneShot(t *testing.T) {
	env := newTestEnv()
	owner := env.addUser(models.RoleUser, nil)
	admin := env.addUser(models.RoleAdmin, nil)
	request := pendingRequest(env, owner)

	_, err := env.requestService.ApproveRequest(admin, request.ID, "")
	require.NoError(t, err)

	// The second decision loses, whichever direction it goes
	_, err = env.requestService.ApproveRequest(admin, request.ID, "")
	assert.True(t, apperrors.IsConcurrencyConflict(err))

	err = env.requestService.RejectRequest(admin, request.ID, "")
	assert.True(t, apperrors.IsConcurrencyConflict(err))

	// Only one campaign was ever materialized
	all, listErr := env.campaigns.ListAll(true)
	require.NoError(t, listErr)
	assert.Len(t, all, 1)
}

func TestApproveRequestRequiresAdmin(t *testing.T) {
	env := newTestEnv()
	owner := env.addUser(models.RoleUser, nil)
	request := pendingRequest(env, owner)

	_, err := env.requestService.ApproveRequest(owner, request.ID, "")
	assert.True(t, apperrors.IsAuthorization(err))

	err = env.requestService.RejectRequest(owner, request.ID, "")
	assert.True(t, apperrors.IsAuthorization(err))
}

func TestApproveRequestUnknownID(t *testing.T) {
	env := newTestEnv()
	admin := env.addUser(models.RoleAdmin, nil)

	_, err := env.requestService.ApproveRequest(admin, "missing", "")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestApproveRequestWithoutClientIsDataIntegrityError(t *testing.T) {
	env := newTestEnv()
	admin := env.addUser(models.RoleAdmin, nil)
	request := &models.AudienceRequest{
		CampaignName: "Orphaned",
		Status:       models.RequestStatusPending,
	}
	env.requests.Create(request)

	_, err := env.requestService.ApproveRequest(admin, request.ID, "")
	assert.True(t, apperrors.IsDataIntegrity(err))
}

func TestRejectRequestFailsLinkedCampaignButKeepsIt(t *testing.T) {
	env := newTestEnv()
	owner := env.addUser(models.RoleUser, nil)
	admin := env.addUser(models.RoleAdmin, nil)

	draft := env.addDraft(owner)
	_, err := env.campaignService.SubmitCampaign(owner, draft.ID, "")
	require.NoError(t, err)

	requests, err := env.requests.ListAll("", false)
	require.NoError(t, err)
	require.Len(t, requests, 1)

	err = env.requestService.RejectRequest(admin, requests[0].ID, "budget too low")
	require.NoError(t, err)

	updated, err := env.requests.GetByID(requests[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusRejected, updated.Status)
	assert.Equal(t, "budget too low", updated.ReviewNotes)

	// The campaign survives rejection as failed
	campaign, err := env.campaigns.GetByID(draft.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, campaign.Status)

	// Owner hears about it with the reason attached
	notifs, err := env.notifications.ListByRecipient(owner.ID)
	require.NoError(t, err)
	require.NotEmpty(t, notifs)
	last := notifs[len(notifs)-1]
	assert.Equal(t, "Request rejected", last.Title)
	assert.Contains(t, last.Message, "budget too low")
}

func TestRejectRequestWithoutCampaignLeavesNoCampaign(t *testing.T) {
	env := newTestEnv()
	owner := env.addUser(models.RoleUser, nil)
	admin := env.addUser(models.RoleAdmin, nil)
	request := pendingRequest(env, owner)

	err := env.requestService.RejectRequest(admin, request.ID, "no")
	require.NoError(t, err)

	all, err := env.campaigns.ListAll(true)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestListRequestsScopesToOwner(t *testing.T) {
	env := newTestEnv()
	owner := env.addUser(models.RoleUser, nil)
	other := env.addUser(models.RoleUser, nil)
	admin := env.addUser(models.RoleAdmin, nil)
	pendingRequest(env, owner)
	pendingRequest(env, other)

	mine, err := env.requestService.ListRequests(owner, "", false)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.Equal(t, owner.ID, mine[0].ClientID)

	all, err := env.requestService.ListRequests(admin, "", false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetRequestInvisibleToStrangersAsNotFound(t *testing.T) {
	env := newTestEnv()
	owner := env.addUser(models.RoleUser, nil)
	stranger := env.addUser(models.RoleUser, nil)
	request := pendingRequest(env, owner)

	_, err := env.requestService.GetRequest(stranger, request.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestArchiveRequestHidesFromDefaultListing(t *testing.T) {
	env := newTestEnv()
	owner := env.addUser(models.RoleUser, nil)
	request := pendingRequest(env, owner)

	require.NoError(t, env.requestService.ArchiveRequest(owner, request.ID, true))

	visible, err := env.requestService.ListRequests(owner, "", false)
	require.NoError(t, err)
	assert.Empty(t, visible)

	withArchived, err := env.requestService.ListRequests(owner, "", true)
	require.NoError(t, err)
	assert.Len(t, withArchived, 1)
	assert.True(t, withArchived[0].Archived)
}
