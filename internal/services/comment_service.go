package services

import (
	"fmt"
	"strings"

	"github.com/adreach/campaign-workflow-backend/internal/apperrors"
	"github.com/adreach/campaign-workflow-backend/internal/database/repository"
	"github.com/adreach/campaign-workflow-backend/internal/models"

	"gorm.io/gorm"
)

// commentPreviewLimit caps the comment text stored on activity rows.
const commentPreviewLimit = 100

type CommentService struct {
	commentRepo  repository.CommentRepositoryInterface
	campaignRepo repository.CampaignRepositoryInterface
	userRepo     repository.UserRepositoryInterface
	activities   *ActivityService
	notifier     *NotificationService
}

func NewCommentService(
	commentRepo repository.CommentRepositoryInterface,
	campaignRepo repository.CampaignRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	activities *ActivityService,
	notifier *NotificationService,
) *CommentService {
	return &CommentService{
		commentRepo:  commentRepo,
		campaignRepo: campaignRepo,
		userRepo:     userRepo,
		activities:   activities,
		notifier:     notifier,
	}
}

// AddComment posts a comment or reply on a campaign. Replies must target a
// root comment on the same campaign; replies to replies are rejected, the
// thread depth is fixed at two. Activity and notification fan-out run after
// the comment is persisted and never fail the post.
func (s *CommentService) AddComment(actor *models.User, campaignID string, req *models.AddCommentRequest) (*models.CommentResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.NewValidation("content", "comment content must not be empty")
	}

	campaign, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFound("campaign", campaignID)
		}
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}

	if !s.canDiscuss(actor, campaign) {
		return nil, apperrors.NewAuthorization("not allowed to comment on this campaign")
	}

	isReply := false
	if req.ParentCommentID != nil && *req.ParentCommentID != "" {
		parent, err := s.commentRepo.GetByID(*req.ParentCommentID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, apperrors.NewNotFound("parent comment", *req.ParentCommentID)
			}
			return nil, fmt.Errorf("failed to load parent comment: %w", err)
		}
		if parent.CampaignID != campaignID {
			return nil, apperrors.NewValidation("parent_comment_id", "parent comment belongs to a different campaign")
		}
		if parent.ParentCommentID != nil {
			return nil, apperrors.NewValidation("parent_comment_id", "replies to replies are not allowed")
		}
		isReply = true
	} else {
		req.ParentCommentID = nil
	}

	comment := &models.CampaignComment{
		CampaignID:      campaignID,
		AuthorID:        actor.ID,
		ParentCommentID: req.ParentCommentID,
		Content:         content,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	// Secondary effects: best-effort once the comment exists.
	hooks := &postCommitHooks{}
	hooks.add("comment activity", func() error {
		details := models.CommentDetails{
			CommentID: comment.ID,
			Preview:   previewOf(content),
			IsReply:   isReply,
		}
		return s.activities.Record(campaignID, actor.ID, models.ActionCommentAdded, details.Details())
	})
	hooks.add("comment fan-out", func() error {
		return s.notifyCommentPosted(actor, campaign, content)
	})
	hooks.run()

	return &models.CommentResponse{
		ID:              comment.ID,
		CampaignID:      comment.CampaignID,
		AuthorID:        comment.AuthorID,
		AuthorName:      actor.Name,
		ParentCommentID: comment.ParentCommentID,
		Content:         comment.Content,
		CreatedAt:       comment.CreatedAt,
	}, nil
}

// canDiscuss allows admins, the campaign owner, and the owner's teammates
func (s *CommentService) canDiscuss(actor *models.User, campaign *models.Campaign) bool {
	if actor.IsAdmin() || actor.ID == campaign.ClientID {
		return true
	}
	if actor.CompanyID == nil {
		return false
	}
	owner, err := s.userRepo.GetByID(campaign.ClientID)
	if err != nil || owner.CompanyID == nil {
		return false
	}
	return *owner.CompanyID == *actor.CompanyID
}

// notifyCommentPosted resolves the comment audience: the campaign owner, the
// author's teammates, and all admins when the author is not one — minus the
// author, deduplicated by Notify.
func (s *CommentService) notifyCommentPosted(author *models.User, campaign *models.Campaign, content string) error {
	var recipients []string
	if campaign.ClientID != author.ID {
		recipients = append(recipients, campaign.ClientID)
	}
	if author.CompanyID != nil {
		teammates, err := s.notifier.CompanyTeamIDs(*author.CompanyID, author.ID)
		if err != nil {
			return err
		}
		recipients = append(recipients, teammates...)
	}
	if !author.IsAdmin() {
		admins, err := s.notifier.AdminUserIDs()
		if err != nil {
			return err
		}
		recipients = append(recipients, admins...)
	}

	title := fmt.Sprintf("New comment on %s", campaign.Name)
	return s.notifier.Notify(title, previewOf(content), recipients, &campaign.ID)
}

// FetchCampaignComments reconstructs the comment forest: roots in creation
// order, replies appended to their parent. A reply whose parent is missing
// from the result set is promoted to a root rather than dropped.
func (s *CommentService) FetchCampaignComments(campaignID string) ([]*models.CommentResponse, error) {
	comments, err := s.commentRepo.ListByCampaign(campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}

	roots := make([]*models.CommentResponse, 0, len(comments))
	byID := make(map[string]*models.CommentResponse, len(comments))

	for _, c := range comments {
		node := &models.CommentResponse{
			ID:              c.ID,
			CampaignID:      c.CampaignID,
			AuthorID:        c.AuthorID,
			AuthorName:      c.Author.Name,
			ParentCommentID: c.ParentCommentID,
			Content:         c.Content,
			CreatedAt:       c.CreatedAt,
		}
		if c.ParentCommentID == nil {
			byID[c.ID] = node
			roots = append(roots, node)
			continue
		}
		parent, ok := byID[*c.ParentCommentID]
		if !ok {
			// Orphaned reply: parent deleted or filtered out. Surface it.
			roots = append(roots, node)
			continue
		}
		parent.Replies = append(parent.Replies, *node)
	}

	return roots, nil
}

// previewOf truncates comment content for activity rows and notifications
func previewOf(content string) string {
	runes := []rune(content)
	if len(runes) <= commentPreviewLimit {
		return content
	}
	return string(runes[:commentPreviewLimit]) + "..."
}
