package services

import (
	"testing"

	"github.com/adreach/campaign-workflow-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStatusCoversEveryStatus(t *testing.T) {
	statuses := []string{
		models.StatusDraft, models.StatusSubmitted, models.StatusPendingReview,
		models.StatusApproved, models.StatusInProgress, models.StatusWaitingOnClient,
		models.StatusDelivered, models.StatusLive, models.StatusPaused,
		models.StatusCompleted, models.StatusFailed,
	}
	for _, status := range statuses {
		phase := ClassifyStatus(status)
		assert.Contains(t, []string{PhasePending, PhaseActive, PhaseCompleted}, phase,
			"status %s must classify to a known phase", status)
	}
}

func TestClassifyStatusPhases(t *testing.T) {
	assert.Equal(t, PhasePending, ClassifyStatus(models.StatusDraft))
	assert.Equal(t, PhasePending, ClassifyStatus(models.StatusPendingReview))
	assert.Equal(t, PhaseActive, ClassifyStatus(models.StatusApproved))
	assert.Equal(t, PhaseActive, ClassifyStatus(models.StatusLive))
	assert.Equal(t, PhaseCompleted, ClassifyStatus(models.StatusCompleted))
	assert.Equal(t, PhaseCompleted, ClassifyStatus(models.StatusFailed))
}

func TestClassifyStatusUnknownDefaultsToPending(t *testing.T) {
	assert.Equal(t, PhasePending, ClassifyStatus("some_future_status"))
	assert.Equal(t, PhasePending, ClassifyStatus(""))
}

func TestCanTransitionFollowsGraph(t *testing.T) {
	assert.True(t, CanTransition(models.StatusDraft, models.StatusSubmitted))
	assert.True(t, CanTransition(models.StatusSubmitted, models.StatusPendingReview))
	assert.True(t, CanTransition(models.StatusPendingReview, models.StatusApproved))
	assert.True(t, CanTransition(models.StatusApproved, models.StatusInProgress))
	assert.True(t, CanTransition(models.StatusInProgress, models.StatusWaitingOnClient))
	assert.True(t, CanTransition(models.StatusWaitingOnClient, models.StatusInProgress))
	assert.True(t, CanTransition(models.StatusInProgress, models.StatusDelivered))
	assert.True(t, CanTransition(models.StatusDelivered, models.StatusLive))
	assert.True(t, CanTransition(models.StatusLive, models.StatusPaused))
	assert.True(t, CanTransition(models.StatusPaused, models.StatusLive))
	assert.True(t, CanTransition(models.StatusLive, models.StatusCompleted))

	assert.False(t, CanTransition(models.StatusDraft, models.StatusApproved))
	assert.False(t, CanTransition(models.StatusApproved, models.StatusDraft))
	assert.False(t, CanTransition(models.StatusDelivered, models.StatusInProgress))
}

func TestFailedReachableFromAnyNonTerminalStatus(t *testing.T) {
	nonTerminal := []string{
		models.StatusDraft, models.StatusSubmitted, models.StatusPendingReview,
		models.StatusApproved, models.StatusInProgress, models.StatusWaitingOnClient,
		models.StatusDelivered, models.StatusLive, models.StatusPaused,
	}
	for _, status := range nonTerminal {
		assert.True(t, CanTransition(status, models.StatusFailed), "failed must be reachable from %s", status)
	}
}

func TestTerminalStatusesHaveNoExit(t *testing.T) {
	all := []string{
		models.StatusDraft, models.StatusSubmitted, models.StatusPendingReview,
		models.StatusApproved, models.StatusInProgress, models.StatusWaitingOnClient,
		models.StatusDelivered, models.StatusLive, models.StatusPaused,
		models.StatusCompleted, models.StatusFailed,
	}
	for _, to := range all {
		assert.False(t, CanTransition(models.StatusCompleted, to))
		assert.False(t, CanTransition(models.StatusFailed, to))
	}
	assert.True(t, IsTerminalStatus(models.StatusCompleted))
	assert.True(t, IsTerminalStatus(models.StatusFailed))
	assert.False(t, IsTerminalStatus(models.StatusLive))
}

func TestCanTransitionRejectsUnknownStatuses(t *testing.T) {
	assert.False(t, CanTransition("bogus", models.StatusFailed))
	assert.False(t, CanTransition(models.StatusDraft, "bogus"))
}

func TestHumanizeStatus(t *testing.T) {
	assert.Equal(t, "Pending Review", HumanizeStatus(models.StatusPendingReview))
	assert.Equal(t, "Waiting On Client", HumanizeStatus(models.StatusWaitingOnClient))
	assert.Equal(t, "Live", HumanizeStatus(models.StatusLive))
}
