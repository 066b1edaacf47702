// -----------------------------------------------------------------------
// Tracker - Job lifecycle state machine and progress reporting
// -----------------------------------------------------------------------

package pipeline

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/augur/internal/interfaces"
	"github.com/ternarybob/augur/internal/models"
)

// TotalPhases is the number of logical phases in one pipeline run
const TotalPhases = 7

// ProgressForPhase returns the progress percentage after completing the
// given phase (1-based), rounded to the nearest integer.
func ProgressForPhase(phase int) int {
	if phase <= 0 {
		return 0
	}
	if phase >= TotalPhases {
		return 100
	}
	return int(math.Round(100 * float64(phase) / float64(TotalPhases)))
}

// Tracker owns the job lifecycle record. Jobs move pending -> running ->
// {completed, failed}; terminal states never transition again. The tracker
// is the only writer of the job record within a run, so updates are
// naturally serialized by the runner's sequential phase execution.
type Tracker struct {
	jobs   interfaces.JobStorage
	events interfaces.EventService
	logger arbor.ILogger
}

// NewTracker creates a job state tracker
func NewTracker(jobs interfaces.JobStorage, events interfaces.EventService, logger arbor.ILogger) *Tracker {
	return &Tracker{
		jobs:   jobs,
		events: events,
		logger: logger,
	}
}

// Initialize creates the job record and moves it to running. A duplicate
// job ID or a failed persistence write is fatal: the pipeline cannot
// proceed without a tracked job.
func (t *Tracker) Initialize(ctx context.Context, jobID string, payload map[string]interface{}) error {
	job := models.NewAnalysisJob(jobID, payload)
	job.Status = models.JobStatusRunning
	job.CurrentStep = "initialize"
	job.StepMessage = "Analysis job accepted"
	job.Progress = ProgressForPhase(1)

	if err := t.jobs.CreateJob(ctx, job); err != nil {
		return &JobCreationError{JobID: jobID, Err: err}
	}

	t.publishStatus(ctx, job)
	return nil
}

// Advance records phase completion on the job record. Best-effort: a
// failed persistence write is logged and swallowed because progress
// reporting is observability, not correctness. Calls after a terminal
// transition are rejected as no-ops.
func (t *Tracker) Advance(ctx context.Context, jobID string, phase int, stepName, message string) {
	job, err := t.jobs.GetJob(ctx, jobID)
	if err != nil {
		t.logger.Warn().
			Err(err).
			Str("job_id", jobID).
			Str("step", stepName).
			Msg("Progress update skipped: job load failed")
		return
	}
	if job.Status.IsTerminal() {
		t.logger.Warn().
			Str("job_id", jobID).
			Str("status", string(job.Status)).
			Str("step", stepName).
			Msg("Progress update rejected: job already terminal")
		return
	}

	job.CurrentStep = stepName
	job.StepMessage = message
	// Progress never decreases while running
	if p := ProgressForPhase(phase); p > job.Progress {
		job.Progress = p
	}

	if err := t.jobs.UpdateJob(ctx, job); err != nil {
		t.logger.Warn().
			Err(err).
			Str("job_id", jobID).
			Str("step", stepName).
			Msg("Progress update write failed, continuing")
		return
	}

	t.publishStatus(ctx, job)
}

// Complete performs the terminal transition to completed. If the final
// write fails, the job stays observably running to pollers - a degraded
// observability condition, not a pipeline failure.
func (t *Tracker) Complete(ctx context.Context, jobID string, signalCount, alertCount int, duration time.Duration) {
	job, err := t.jobs.GetJob(ctx, jobID)
	if err != nil {
		t.logger.Warn().Err(err).Str("job_id", jobID).Msg("Completion update skipped: job load failed")
		return
	}
	if job.Status.IsTerminal() {
		t.logger.Warn().Str("job_id", jobID).Msg("Completion rejected: job already terminal")
		return
	}

	now := time.Now()
	job.Status = models.JobStatusCompleted
	job.CurrentStep = "complete"
	job.StepMessage = fmt.Sprintf("Analysis complete: %d signals generated", signalCount)
	job.Progress = 100
	job.SignalsGenerated = signalCount
	job.AlertsSent = alertCount
	job.DurationMs = duration.Milliseconds()
	job.CompletedAt = &now

	if err := t.jobs.UpdateJob(ctx, job); err != nil {
		t.logger.Error().
			Err(err).
			Str("job_id", jobID).
			Msg("Terminal completion write failed: job remains observably running")
		return
	}

	t.publishStatus(ctx, job)
}

// Fail performs the terminal transition to failed with the reason carried
// in the step message.
func (t *Tracker) Fail(ctx context.Context, jobID string, reason string) {
	job, err := t.jobs.GetJob(ctx, jobID)
	if err != nil {
		t.logger.Warn().Err(err).Str("job_id", jobID).Msg("Failure update skipped: job load failed")
		return
	}
	if job.Status.IsTerminal() {
		t.logger.Warn().Str("job_id", jobID).Msg("Failure rejected: job already terminal")
		return
	}

	now := time.Now()
	job.Status = models.JobStatusFailed
	job.CurrentStep = "failed"
	job.StepMessage = reason
	job.DurationMs = now.Sub(job.StartedAt).Milliseconds()
	job.CompletedAt = &now

	if err := t.jobs.UpdateJob(ctx, job); err != nil {
		t.logger.Error().
			Err(err).
			Str("job_id", jobID).
			Msg("Terminal failure write failed")
		return
	}

	t.logger.Info().
		Str("job_id", jobID).
		Str("reason", reason).
		Msg("Job failed")

	t.publishStatus(ctx, job)
}

func (t *Tracker) publishStatus(ctx context.Context, job *models.AnalysisJob) {
	if t.events == nil {
		return
	}
	if err := t.events.Publish(ctx, interfaces.Event{
		Type:    interfaces.EventJobStatus,
		Payload: job,
	}); err != nil {
		t.logger.Debug().Err(err).Str("job_id", job.ID).Msg("Job status event publish failed")
	}
}
