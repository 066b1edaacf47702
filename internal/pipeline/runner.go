// -----------------------------------------------------------------------
// Runner - Drives the seven-phase signal analysis pipeline
// -----------------------------------------------------------------------

package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/augur/internal/interfaces"
	"github.com/ternarybob/augur/internal/models"
)

// Default run parameters, overridable per trigger
const (
	DefaultTarget    = 3
	DefaultScanLimit = 10
)

// RunRequest describes one analysis run
type RunRequest struct {
	JobID      string
	Candidates []models.Candidate
	Target     int // number of candidates to select (default 3)
	ScanLimit  int // max candidates scanned (default 10, must be >= Target)
}

// RunResult is returned on successful completion
type RunResult struct {
	JobID            string
	SignalsGenerated int
	Summary          models.AnalysisSummary
	Duration         time.Duration
}

// Runner orchestrates one analysis job: initialize -> select -> score ->
// write -> summarize -> notify -> complete. Data flows forward only; a
// fatal phase error is converted to exactly one failed transition at this
// boundary and never propagates past it unhandled.
type Runner struct {
	tracker  *Tracker
	selector *Selector
	fanout   *ScoreFanout
	writer   *ResultWriter
	notifier interfaces.Notifier
	events   interfaces.EventService
	logger   arbor.ILogger
}

// NewRunner creates a pipeline runner
func NewRunner(
	tracker *Tracker,
	selector *Selector,
	fanout *ScoreFanout,
	writer *ResultWriter,
	notifier interfaces.Notifier,
	events interfaces.EventService,
	logger arbor.ILogger,
) *Runner {
	return &Runner{
		tracker:  tracker,
		selector: selector,
		fanout:   fanout,
		writer:   writer,
		notifier: notifier,
		events:   events,
		logger:   logger,
	}
}

// Run executes the pipeline for one job. On a fatal error the job is
// transitioned to failed with the error text as the reason and the error
// is returned to the caller. Re-running with the same job ID fails at
// initialization; re-triggering with a new ID is how a run is retried.
func (r *Runner) Run(ctx context.Context, req RunRequest) (result *RunResult, err error) {
	if req.Target <= 0 {
		req.Target = DefaultTarget
	}
	if req.ScanLimit <= 0 {
		req.ScanLimit = DefaultScanLimit
	}
	if req.ScanLimit < req.Target {
		return nil, fmt.Errorf("scan limit (%d) must be >= target (%d)", req.ScanLimit, req.Target)
	}

	start := time.Now()

	// Phase 1: initialize. A creation failure aborts before any phase
	// runs - there is no tracked job to transition to failed.
	if err := r.tracker.Initialize(ctx, req.JobID, runPayload(req)); err != nil {
		r.logger.Error().Err(err).Str("job_id", req.JobID).Msg("Job initialization failed")
		return nil, err
	}

	defer func() {
		if rec := recover(); rec != nil {
			reason := fmt.Sprintf("pipeline panic: %v", rec)
			r.logger.Error().Str("job_id", req.JobID).Str("panic", fmt.Sprint(rec)).Msg("Pipeline run panicked")
			r.tracker.Fail(ctx, req.JobID, reason)
			err = fmt.Errorf("%s", reason)
			result = nil
		}
	}()

	result, err = r.run(ctx, req, start)
	if err != nil {
		r.tracker.Fail(ctx, req.JobID, err.Error())
		return nil, err
	}
	return result, nil
}

// run executes phases 2-7. Any returned error is fatal and handled once
// by the caller.
func (r *Runner) run(ctx context.Context, req RunRequest, start time.Time) (*RunResult, error) {
	jobID := req.JobID

	if len(req.Candidates) == 0 {
		return nil, ErrNoCandidates
	}

	// Phase 2: select candidates within the scan budget
	scan := req.Candidates
	if len(scan) > req.ScanLimit {
		scan = scan[:req.ScanLimit]
	}

	selected, err := r.selector.Select(ctx, scan, req.Target, func(scanned, found int, ticker string) {
		r.publishScanProgress(ctx, jobID, scanned, len(scan), found, ticker)
	})
	if err != nil {
		return nil, err
	}
	r.tracker.Advance(ctx, jobID, 2, "select_candidates",
		fmt.Sprintf("Selected %d of %d candidates scanned", len(selected), len(scan)))

	// Phase 3: score selected candidates in parallel. The barrier below is
	// absolute: every scoring task resolves before the run proceeds.
	signals := r.fanout.ScoreAll(ctx, selected)
	r.tracker.Advance(ctx, jobID, 3, "score_signals",
		fmt.Sprintf("Scored %d of %d selected candidates", len(signals), len(selected)))

	// Phase 4: persist signals; partial failure degrades the result set
	writeResults := r.writer.WriteAll(ctx, signals)
	persisted := 0
	for _, wr := range writeResults {
		if wr.OK {
			persisted++
		}
	}
	r.tracker.Advance(ctx, jobID, 4, "write_results",
		fmt.Sprintf("Persisted %d of %d signals", persisted, len(signals)))

	// Phase 5: summarize
	summary := Summarize(signals)
	r.tracker.Advance(ctx, jobID, 5, "summarize",
		fmt.Sprintf("%d signals, %d high confidence", summary.TotalAnalyzed, summary.HighConfidence))

	// Phase 6: notify high-confidence signals, best-effort
	alertsSent := r.notifyAlerts(ctx, signals)
	r.tracker.Advance(ctx, jobID, 6, "notify",
		fmt.Sprintf("Sent %d alerts", alertsSent))

	// Phase 7: complete. Signal count reflects scored results, not
	// persisted writes.
	duration := time.Since(start)
	r.tracker.Complete(ctx, jobID, len(signals), alertsSent, duration)

	r.logger.Info().
		Str("job_id", jobID).
		Int("signals", len(signals)).
		Int("alerts", alertsSent).
		Int64("duration_ms", duration.Milliseconds()).
		Msg("Analysis pipeline completed")

	return &RunResult{
		JobID:            jobID,
		SignalsGenerated: len(signals),
		Summary:          summary,
		Duration:         duration,
	}, nil
}

// notifyAlerts forwards high-confidence signals to the notifier. Delivery
// failures are logged and never fatal.
func (r *Runner) notifyAlerts(ctx context.Context, signals []models.TradeSignal) int {
	if r.notifier == nil {
		return 0
	}

	sent := 0
	for i := range signals {
		if !signals[i].IsHighConfidence() {
			continue
		}
		if err := r.notifier.Notify(ctx, &signals[i]); err != nil {
			r.logger.Warn().
				Err(err).
				Str("ticker", signals[i].Ticker).
				Msg("Alert delivery failed")
			continue
		}
		sent++
	}
	return sent
}

func (r *Runner) publishScanProgress(ctx context.Context, jobID string, scanned, total, found int, ticker string) {
	if r.events == nil {
		return
	}
	_ = r.events.Publish(ctx, interfaces.Event{
		Type: interfaces.EventJobProgress,
		Payload: map[string]interface{}{
			"job_id":  jobID,
			"scanned": scanned,
			"total":   total,
			"found":   found,
			"ticker":  ticker,
		},
	})
}

func runPayload(req RunRequest) map[string]interface{} {
	tickers := make([]string, len(req.Candidates))
	for i, c := range req.Candidates {
		tickers[i] = c.Ticker
	}
	return map[string]interface{}{
		"candidates": tickers,
		"target":     req.Target,
		"scan_limit": req.ScanLimit,
	}
}
