package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/adreach/campaign-workflow-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitReturnsImmediatelyWhenSet(t *testing.T) {
	r := NewCampaignReadiness()
	r.Set(&models.Campaign{ID: "c1"})

	got, err := r.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "c1", got.ID)
}

func TestSetResolvesAllConcurrentWaiters(t *testing.T) {
	r := NewCampaignReadiness()

	const waiters = 5
	results := make(chan string, waiters)
	var started sync.WaitGroup
	started.Add(waiters)

	for i := 0; i < waiters; i++ {
		go func() {
			started.Done()
			campaign, err := r.Wait(context.Background())
			if err != nil {
				results <- "err:" + err.Error()
				return
			}
			results <- campaign.ID
		}()
	}
	started.Wait()
	time.Sleep(10 * time.Millisecond)

	r.Set(&models.Campaign{ID: "shared"})

	for i := 0; i < waiters; i++ {
		select {
		case id := <-results:
			assert.Equal(t, "shared", id)
		case <-time.After(time.Second):
			t.Fatal("waiter did not resolve")
		}
	}
}

func TestFailPropagatesToWaiters(t *testing.T) {
	r := NewCampaignReadiness()
	boom := errors.New("creation failed")

	done := make(chan error, 1)
	go func() {
		_, err := r.Wait(context.Background())
		done <- err
	}()
	time.Sleep(10 * time.Millisecond)

	r.Fail(boom)

	select {
	case err := <-done:
		assert.Equal(t, boom, err)
	case <-time.After(time.Second):
		t.Fatal("waiter did not resolve")
	}
}

func TestWaitHonorsContextTimeout(t *testing.T) {
	r := NewCampaignReadiness()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := r.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClearThenSetResolvesWaiters(t *testing.T) {
	r := NewCampaignReadiness()
	r.Set(&models.Campaign{ID: "old"})
	r.Clear()

	done := make(chan string, 1)
	go func() {
		campaign, err := r.Wait(context.Background())
		if err != nil {
			done <- "err"
			return
		}
		done <- campaign.ID
	}()
	time.Sleep(10 * time.Millisecond)

	r.Set(&models.Campaign{ID: "new"})

	select {
	case id := <-done:
		assert.Equal(t, "new", id)
	case <-time.After(time.Second):
		t.Fatal("waiter did not resolve")
	}
}

func TestFailThenSetRecovers(t *testing.T) {
	r := NewCampaignReadiness()
	r.Fail(errors.New("first attempt failed"))

	_, err := r.Wait(context.Background())
	require.Error(t, err)

	r.Set(&models.Campaign{ID: "retry"})
	got, err := r.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "retry", got.ID)
}

func TestRegistryHandsOutOneSessionPerClient(t *testing.T) {
	g := NewDraftSessionRegistry()

	a := g.Session("client-a")
	b := g.Session("client-b")
	assert.NotSame(t, a, b)
	assert.Same(t, a, g.Session("client-a"))

	g.Drop("client-a")
	assert.NotSame(t, a, g.Session("client-a"))
}
