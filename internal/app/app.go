// -----------------------------------------------------------------------
// App - Dependency wiring for the Augur analysis service
// -----------------------------------------------------------------------

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/augur/internal/common"
	"github.com/ternarybob/augur/internal/handlers"
	"github.com/ternarybob/augur/internal/interfaces"
	"github.com/ternarybob/augur/internal/models"
	"github.com/ternarybob/augur/internal/pipeline"
	"github.com/ternarybob/augur/internal/sentiment"
	"github.com/ternarybob/augur/internal/services/events"
	"github.com/ternarybob/augur/internal/services/llm"
	"github.com/ternarybob/augur/internal/services/notify"
	"github.com/ternarybob/augur/internal/services/scheduler"
	"github.com/ternarybob/augur/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Event-driven services
	EventService     interfaces.EventService
	SchedulerService *scheduler.Service

	// Pipeline components
	MetricsProvider interfaces.MetricsProvider
	Scorer          interfaces.SignalScorer
	Notifier        interfaces.Notifier
	Runner          *pipeline.Runner

	// HTTP handlers
	APIHandler      *handlers.APIHandler
	AnalysisHandler *handlers.AnalysisHandler
	JobHandler      *handlers.JobHandler
	SignalHandler   *handlers.SignalHandler
	WSHandler       *handlers.WebSocketHandler

	wsLogWriter *handlers.WebSocketWriter
}

// New initializes the application with all dependencies
func New(ctx context.Context, cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	// Storage
	storageManager, err := badger.NewManager(logger, &cfg.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	app.StorageManager = storageManager

	// Event bus and WebSocket broadcasting. The handler is created early
	// so the log bridge can broadcast startup logs.
	app.EventService = events.NewService(logger)
	app.WSHandler = handlers.NewWebSocketHandler(app.EventService, logger, &cfg.WebSocket)

	app.wsLogWriter = handlers.NewWebSocketWriter(app.WSHandler, logger, &cfg.WebSocket)
	app.wsLogWriter.Start()
	logger.SetChannel("websocket", app.wsLogWriter.Channel())

	// Sentiment metrics provider
	sentimentOpts := []sentiment.ClientOption{
		sentiment.WithLogger(logger),
	}
	if cfg.Sentiment.BaseURL != "" {
		sentimentOpts = append(sentimentOpts, sentiment.WithBaseURL(cfg.Sentiment.BaseURL))
	}
	if cfg.Sentiment.Timeout != "" {
		timeout, err := time.ParseDuration(cfg.Sentiment.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid sentiment timeout: %w", err)
		}
		sentimentOpts = append(sentimentOpts, sentiment.WithTimeout(timeout))
	}
	if cfg.Sentiment.RateLimit > 0 {
		sentimentOpts = append(sentimentOpts, sentiment.WithRateLimit(cfg.Sentiment.RateLimit))
	}
	app.MetricsProvider = sentiment.NewClient(cfg.Sentiment.APIKey, sentimentOpts...)

	// Signal scorer (Claude or Gemini, with rule-based fallback inside)
	scorer, err := llm.NewSignalScorer(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize signal scorer: %w", err)
	}
	app.Scorer = scorer

	// Webhook notifier for high-confidence signals
	if cfg.Notify.Enabled {
		notifier, err := notify.NewWebhookNotifier(&cfg.Notify, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize notifier: %w", err)
		}
		app.Notifier = notifier
	}

	// Pipeline
	tracker := pipeline.NewTracker(storageManager.JobStorage(), app.EventService, logger)
	selector := pipeline.NewSelector(app.MetricsProvider, logger)
	fanout := pipeline.NewScoreFanout(app.Scorer, logger)
	writer := pipeline.NewResultWriter(storageManager.SignalStorage(), logger)
	app.Runner = pipeline.NewRunner(tracker, selector, fanout, writer, app.Notifier, app.EventService, logger)

	// Scheduler runs the watchlist through the same pipeline
	app.SchedulerService = scheduler.NewService(&cfg.Scheduler, app.runScheduled, logger)
	if err := app.SchedulerService.Start(); err != nil {
		return nil, fmt.Errorf("failed to start scheduler: %w", err)
	}

	// HTTP handlers
	app.APIHandler = handlers.NewAPIHandler()
	app.AnalysisHandler = handlers.NewAnalysisHandler(app.Runner, cfg.Pipeline, logger)
	app.JobHandler = handlers.NewJobHandler(storageManager.JobStorage(), logger)
	app.SignalHandler = handlers.NewSignalHandler(storageManager.SignalStorage(), logger)

	logger.Info().
		Str("llm_provider", cfg.LLM.Provider).
		Bool("scheduler_enabled", cfg.Scheduler.Enabled).
		Bool("notify_enabled", cfg.Notify.Enabled).
		Msg("Application initialization complete")

	return app, nil
}

// runScheduled is the scheduler trigger. Each tick gets a fresh job ID.
func (a *App) runScheduled(ctx context.Context, candidates []models.Candidate) {
	req := pipeline.RunRequest{
		JobID:      common.NewJobID(),
		Candidates: candidates,
		Target:     a.Config.Pipeline.Target,
		ScanLimit:  a.Config.Pipeline.ScanLimit,
	}

	if _, err := a.Runner.Run(ctx, req); err != nil {
		a.Logger.Error().Err(err).Str("job_id", req.JobID).Msg("Scheduled analysis run failed")
	}
}

// Close shuts down application components in reverse dependency order
func (a *App) Close() error {
	a.Logger.Info().Msg("Shutting down application...")

	if a.SchedulerService != nil {
		a.SchedulerService.Stop()
	}

	if a.EventService != nil {
		a.EventService.Close()
	}

	if a.wsLogWriter != nil {
		a.wsLogWriter.Close()
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("Failed to close storage")
			return err
		}
	}

	a.Logger.Info().Msg("Application shutdown complete")
	return nil
}
