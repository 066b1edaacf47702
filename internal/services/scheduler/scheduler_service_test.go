package scheduler

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/augur/internal/common"
	"github.com/ternarybob/augur/internal/models"
)

func TestService_StartDisabled(t *testing.T) {
	cfg := &common.SchedulerConfig{Enabled: false}
	svc := NewService(cfg, func(ctx context.Context, candidates []models.Candidate) {}, arbor.NewLogger())

	require.NoError(t, svc.Start())
	svc.Stop() // no-op when never started
}

func TestService_StartRejectsBadSchedule(t *testing.T) {
	cfg := &common.SchedulerConfig{
		Enabled:   true,
		Schedule:  "not a schedule",
		Watchlist: []string{"AAPL"},
	}
	svc := NewService(cfg, func(ctx context.Context, candidates []models.Candidate) {}, arbor.NewLogger())

	assert.Error(t, svc.Start())
}

func TestService_StartStop(t *testing.T) {
	cfg := &common.SchedulerConfig{
		Enabled:   true,
		Schedule:  "0 7 * * 1-5",
		Watchlist: []string{"AAPL", "TSLA"},
	}
	svc := NewService(cfg, func(ctx context.Context, candidates []models.Candidate) {}, arbor.NewLogger())

	require.NoError(t, svc.Start())
	// Idempotent
	require.NoError(t, svc.Start())
	svc.Stop()
	svc.Stop()
}

func TestService_RunWatchlist(t *testing.T) {
	var mu sync.Mutex
	var got []models.Candidate

	cfg := &common.SchedulerConfig{
		Enabled:   true,
		Schedule:  "0 7 * * 1-5",
		Watchlist: []string{"AAPL", "TSLA", "GME"},
	}
	svc := NewService(cfg, func(ctx context.Context, candidates []models.Candidate) {
		mu.Lock()
		got = candidates
		mu.Unlock()
	}, arbor.NewLogger())

	svc.runWatchlist()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 3)
	assert.Equal(t, "AAPL", got[0].Ticker)
	assert.Equal(t, 1, got[0].Rank)
	assert.Equal(t, "watchlist", got[0].Source)
	assert.Equal(t, "GME", got[2].Ticker)
	assert.Equal(t, 3, got[2].Rank)
}
