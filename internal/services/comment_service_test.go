package services

import (
	"strings"
	"testing"

	"github.com/adreach/campaign-workflow-backend/internal/apperrors"
	"github.com/adreach/campaign-workflow-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCommentAndReply(t *testing.T) {
	env := newTestEnv()
	owner := env.addUser(models.RoleUser, nil)
	admin := env.addUser(models.RoleAdmin, nil)
	draft := env.addDraft(owner)

	root, err := env.commentService.AddComment(owner, draft.ID, &models.AddCommentRequest{
		Content: "Can we raise the budget on Meta?",
	})
	require.NoError(t, err)
	assert.Nil(t, root.ParentCommentID)

	reply, err := env.commentService.AddComment(admin, draft.ID, &models.AddCommentRequest{
		Content:         "Yes, within 10%.",
		ParentCommentID: &root.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, reply.ParentCommentID)
	assert.Equal(t, root.ID, *reply.ParentCommentID)
}

func TestReplyToReplyIsRejected(t *testing.T) {
	env := newTestEnv()
	owner := env.addUser(models.RoleUser, nil)
	draft := env.addDraft(owner)

	root, err := env.commentService.AddComment(owner, draft.ID, &models.AddCommentRequest{Content: "root"})
	require.NoError(t, err)
	reply, err := env.commentService.AddComment(owner, draft.ID, &models.AddCommentRequest{
		Content: "reply", ParentCommentID: &root.ID,
	})
	require.NoError(t, err)

	_, err = env.commentService.AddComment(owner, draft.ID, &models.AddCommentRequest{
		Content: "reply to reply", ParentCommentID: &reply.ID,
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestReplyMustTargetSameCampaign(t *testing.T) {
	env := newTestEnv()
	owner := env.addUser(models.RoleUser, nil)
	first := env.addDraft(owner)
	second := env.addDraft(owner)

	root, err := env.commentService.AddComment(owner, first.ID, &models.AddCommentRequest{Content: "root"})
	require.NoError(t, err)

	_, err = env.commentService.AddComment(owner, second.ID, &models.AddCommentRequest{
		Content: "cross-campaign reply", ParentCommentID: &root.ID,
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestAddCommentRejectsBlankContent(t *testing.T) {
	env := newTestEnv()
	owner := env.addUser(models.RoleUser, nil)
	draft := env.addDraft(owner)

	_, err := env.commentService.AddComment(owner, draft.ID, &models.AddCommentRequest{Content: "   "})
	assert.True(t, apperrors.IsValidation(err))
}

func TestAddCommentAuthorization(t *testing.T) {
	env := newTestEnv()
	owner := env.addUser(models.RoleUser, nil)
	stranger := env.addUser(models.RoleUser, nil)
	draft := env.addDraft(owner)

	_, err := env.commentService.AddComment(stranger, draft.ID, &models.AddCommentRequest{Content: "hi"})
	assert.True(t, apperrors.IsAuthorization(err))
}

func TestFetchCampaignCommentsBuildsForest(t *testing.T) {
	env := newTestEnv()
	owner := env.addUser(models.RoleUser, nil)
	draft := env.addDraft(owner)

	first, err := env.commentService.AddComment(owner, draft.ID, &models.AddCommentRequest{Content: "first"})
	require.NoError(t, err)
	second, err := env.commentService.AddComment(owner, draft.ID, &models.AddCommentRequest{Content: "second"})
	require.NoError(t, err)
	_, err = env.commentService.AddComment(owner, draft.ID, &models.AddCommentRequest{
		Content: "reply to first", ParentCommentID: &first.ID,
	})
	require.NoError(t, err)

	forest, err := env.commentService.FetchCampaignComments(draft.ID)
	require.NoError(t, err)
	require.Len(t, forest, 2)
	assert.Equal(t, first.ID, forest[0].ID)
	assert.Equal(t, second.ID, forest[1].ID)
	require.Len(t, forest[0].Replies, 1)
	assert.Equal(t, "reply to first", forest[0].Replies[0].Content)
	assert.Empty(t, forest[1].Replies)
	assert.Empty(t, forest[0].Replies[0].Replies)
}

func TestOrphanedReplyIsPromotedToRoot(t *testing.T) {
	env := newTestEnv()
	owner := env.addUser(models.RoleUser, nil)
	draft := env.addDraft(owner)

	missingParent := "99999999-9999-9999-9999-999999999999"
	orphan := &models.CampaignComment{
		CampaignID:      draft.ID,
		AuthorID:        owner.ID,
		ParentCommentID: &missingParent,
		Content:         "orphan",
	}
	require.NoError(t, env.comments.Create(orphan))

	forest, err := env.commentService.FetchCampaignComments(draft.ID)
	require.NoError(t, err)
	require.Len(t, forest, 1)
	assert.Equal(t, "orphan", forest[0].Content)
}

func TestCommentNotifiesOwnerAndAdminsWithoutDuplicates(t *testing.T) {
	env := newTestEnv()
	owner := env.addUser(models.RoleUser, nil)
	admin := env.addUser(models.RoleAdmin, nil)
	draft := env.addDraft(owner)

	// Owner comments: the owner is excluded, admins hear about it once
	_, err := env.commentService.AddComment(owner, draft.ID, &models.AddCommentRequest{Content: "hello"})
	require.NoError(t, err)

	ownNotifs, err := env.notifications.ListByRecipient(owner.ID)
	require.NoError(t, err)
	assert.Empty(t, ownNotifs)

	adminNotifs, err := env.notifications.ListByRecipient(admin.ID)
	require.NoError(t, err)
	require.Len(t, adminNotifs, 1)
	assert.Contains(t, adminNotifs[0].Title, draft.Name)

	// Admin replies: owner hears, the admin author does not hear again
	_, err = env.commentService.AddComment(admin, draft.ID, &models.AddCommentRequest{Content: "hi back"})
	require.NoError(t, err)

	ownNotifs, err = env.notifications.ListByRecipient(owner.ID)
	require.NoError(t, err)
	assert.Len(t, ownNotifs, 1)

	adminNotifs, err = env.notifications.ListByRecipient(admin.ID)
	require.NoError(t, err)
	assert.Len(t, adminNotifs, 1)
}

func TestCommentActivityCarriesPreview(t *testing.T) {
	env := newTestEnv()
	owner := env.addUser(models.RoleUser, nil)
	draft := env.addDraft(owner)

	long := strings.Repeat("x", 150)
	_, err := env.commentService.AddComment(owner, draft.ID, &models.AddCommentRequest{Content: long})
	require.NoError(t, err)

	activity, err := env.activities.ListByCampaign(draft.ID)
	require.NoError(t, err)
	require.Len(t, activity, 1)
	assert.Equal(t, models.ActionCommentAdded, activity[0].ActionType)

	preview, _ := activity[0].ActionDetails["preview"].(string)
	assert.Len(t, []rune(preview), commentPreviewLimit+3)
	assert.True(t, strings.HasSuffix(preview, "..."))
}

func TestPreviewOfShortContentUnchanged(t *testing.T) {
	assert.Equal(t, "short", previewOf("short"))

	long := strings.Repeat("é", commentPreviewLimit+1)
	preview := previewOf(long)
	assert.Len(t, []rune(preview), commentPreviewLimit+3)
}
