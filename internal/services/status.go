package services

import (
	"strings"

	"github.com/adreach/campaign-workflow-backend/internal/models"
)

// Life phases of a campaign status
const (
	PhasePending   = "pending"
	PhaseActive    = "active"
	PhaseCompleted = "completed"
)

var statusPhases = map[string]string{
	models.StatusDraft:           PhasePending,
	models.StatusSubmitted:       PhasePending,
	models.StatusPendingReview:   PhasePending,
	models.StatusApproved:        PhaseActive,
	models.StatusInProgress:      PhaseActive,
	models.StatusWaitingOnClient: PhaseActive,
	models.StatusDelivered:       PhaseActive,
	models.StatusLive:            PhaseActive,
	models.StatusPaused:          PhaseActive,
	models.StatusCompleted:       PhaseCompleted,
	models.StatusFailed:          PhaseCompleted,
}

// ClassifyStatus maps a campaign status to its life phase. Unknown statuses
// classify as pending so forward-compatible status additions degrade safely
// instead of erroring.
func ClassifyStatus(status string) string {
	if phase, ok := statusPhases[status]; ok {
		return phase
	}
	return PhasePending
}

// statusTransitions is the enforced operational graph:
// draft → submitted → pending_review → approved → in_progress →
// waiting_on_client ⇄ in_progress → delivered → completed, with live/paused
// as operational sub-states of a delivered campaign and failed reachable from
// any non-terminal state. completed and failed have no exit.
var statusTransitions = map[string][]string{
	models.StatusDraft:           {models.StatusSubmitted},
	models.StatusSubmitted:       {models.StatusPendingReview},
	models.StatusPendingReview:   {models.StatusApproved},
	models.StatusApproved:        {models.StatusInProgress},
	models.StatusInProgress:      {models.StatusWaitingOnClient, models.StatusDelivered},
	models.StatusWaitingOnClient: {models.StatusInProgress},
	models.StatusDelivered:       {models.StatusLive, models.StatusCompleted},
	models.StatusLive:            {models.StatusPaused, models.StatusCompleted},
	models.StatusPaused:          {models.StatusLive, models.StatusCompleted},
	models.StatusCompleted:       {},
	models.StatusFailed:          {},
}

// IsTerminalStatus reports whether a status has no exit transitions
func IsTerminalStatus(status string) bool {
	return status == models.StatusCompleted || status == models.StatusFailed
}

// KnownStatus reports whether the status belongs to the fixed enumeration
func KnownStatus(status string) bool {
	_, ok := statusPhases[status]
	return ok
}

// CanTransition reports whether from → to is a legal transition. failed is
// reachable from every non-terminal state.
func CanTransition(from, to string) bool {
	if !KnownStatus(from) || !KnownStatus(to) {
		return false
	}
	if IsTerminalStatus(from) {
		return false
	}
	if to == models.StatusFailed {
		return true
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// HumanizeStatus renders a status enum for notification copy:
// underscores become spaces, words are title-cased.
func HumanizeStatus(status string) string {
	words := strings.Split(status, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
