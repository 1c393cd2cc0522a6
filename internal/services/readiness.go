package services

import (
	"context"
	"sync"

	"github.com/adreach/campaign-workflow-backend/internal/models"
)

// CampaignReadiness is a single-writer/multiple-waiter rendezvous: campaign
// creation is an asynchronous round trip, and operations like "add this
// audience" can arrive before it resolves. Waiters block until the producer
// publishes the campaign (or its failure) instead of silently no-oping.
type CampaignReadiness struct {
	mu       sync.Mutex
	campaign *models.Campaign
	err      error
	ready    chan struct{}
}

func NewCampaignReadiness() *CampaignReadiness {
	return &CampaignReadiness{}
}

// Set publishes the campaign and wakes every pending waiter. Setting nil
// clears the state without resolving waiters.
func (r *CampaignReadiness) Set(campaign *models.Campaign) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if campaign == nil {
		r.campaign = nil
		r.err = nil
		return
	}
	r.campaign = campaign
	r.err = nil
	r.resolveLocked()
}

// Fail propagates a creation failure to every pending waiter. Without this,
// waiters of a failed producer would hang forever.
func (r *CampaignReadiness) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.campaign = nil
	r.err = err
	r.resolveLocked()
}

// Clear resets the coordinator, intended on navigation away or explicit
// discard. Pending waiters keep their shared channel and resolve against the
// next Set or Fail.
func (r *CampaignReadiness) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.campaign = nil
	r.err = nil
}

// Wait returns the active campaign immediately if one is set; otherwise it
// blocks on a channel shared by all concurrent waiters until the producer
// calls Set or Fail, or ctx expires.
func (r *CampaignReadiness) Wait(ctx context.Context) (*models.Campaign, error) {
	for {
		r.mu.Lock()
		if r.campaign != nil {
			campaign := r.campaign
			r.mu.Unlock()
			return campaign, nil
		}
		if r.err != nil {
			err := r.err
			r.mu.Unlock()
			return nil, err
		}
		if r.ready == nil {
			r.ready = make(chan struct{})
		}
		ready := r.ready
		r.mu.Unlock()

		select {
		case <-ready:
			// Re-check state: a Clear between resolve and wake-up loops us
			// back onto a fresh channel.
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// resolveLocked closes the shared channel, waking all waiters, and detaches
// it so the next wait cycle gets a fresh one. Callers hold r.mu.
func (r *CampaignReadiness) resolveLocked() {
	if r.ready != nil {
		close(r.ready)
		r.ready = nil
	}
}

// DraftSessionRegistry hands out one CampaignReadiness per client building a
// draft, so the async creation flow and the audience-add calls racing ahead
// of it meet on the same coordinator.
type DraftSessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*CampaignReadiness
}

func NewDraftSessionRegistry() *DraftSessionRegistry {
	return &DraftSessionRegistry{sessions: make(map[string]*CampaignReadiness)}
}

// Session returns the client's coordinator, creating it on first use
func (g *DraftSessionRegistry) Session(clientID string) *CampaignReadiness {
	g.mu.Lock()
	defer g.mu.Unlock()
	session, ok := g.sessions[clientID]
	if !ok {
		session = NewCampaignReadiness()
		g.sessions[clientID] = session
	}
	return session
}

// Drop discards the client's coordinator
func (g *DraftSessionRegistry) Drop(clientID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.sessions, clientID)
}
