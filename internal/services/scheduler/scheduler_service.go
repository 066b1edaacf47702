package scheduler

import (
	"context"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/augur/internal/common"
	"github.com/ternarybob/augur/internal/models"
)

// TriggerFunc starts an analysis run for the given candidates. The
// scheduler does not care about the result; run outcomes are tracked on
// the job record like any other trigger.
type TriggerFunc func(ctx context.Context, candidates []models.Candidate)

// Service runs scheduled analysis passes over the configured watchlist
type Service struct {
	config  *common.SchedulerConfig
	cron    *cron.Cron
	trigger TriggerFunc
	logger  arbor.ILogger
	mu      sync.Mutex
	running bool
}

// NewService creates a scheduler service
func NewService(config *common.SchedulerConfig, trigger TriggerFunc, logger arbor.ILogger) *Service {
	return &Service{
		config:  config,
		cron:    cron.New(),
		trigger: trigger,
		logger:  logger,
	}
}

// Start registers the watchlist job and starts the cron loop. No-op when
// the scheduler is disabled in config.
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.config.Enabled {
		s.logger.Debug().Msg("Scheduler disabled, not starting")
		return nil
	}
	if s.running {
		return nil
	}

	_, err := s.cron.AddFunc(s.config.Schedule, s.runWatchlist)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.running = true

	s.logger.Info().
		Str("schedule", s.config.Schedule).
		Int("watchlist_size", len(s.config.Watchlist)).
		Msg("Scheduler started")

	return nil
}

// Stop halts the cron loop, waiting for a running trigger to finish
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false

	s.logger.Info().Msg("Scheduler stopped")
}

func (s *Service) runWatchlist() {
	candidates := make([]models.Candidate, len(s.config.Watchlist))
	for i, ticker := range s.config.Watchlist {
		candidates[i] = models.Candidate{
			Ticker: ticker,
			Rank:   i + 1,
			Source: "watchlist",
		}
	}

	s.logger.Info().
		Int("candidates", len(candidates)).
		Msg("Scheduled watchlist analysis triggered")

	s.trigger(context.Background(), candidates)
}
