// -----------------------------------------------------------------------
// AnalysisJob - Lifecycle record for a signal analysis pipeline run
// -----------------------------------------------------------------------

package models

import (
	"time"
)

// JobStatus represents the state of an analysis job
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// IsTerminal returns true for statuses that never transition again
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// AnalysisJob tracks the lifecycle and progress of one pipeline run.
// The record is created at trigger acceptance and mutated exclusively by
// the pipeline's progress tracker. Observers poll it by ID or subscribe
// to job status events over the WebSocket feed.
type AnalysisJob struct {
	ID string `json:"id" badgerhold:"key"`

	Status      JobStatus `json:"status"`
	CurrentStep string    `json:"current_step"`
	StepMessage string    `json:"step_message"`

	// Progress percentage (0-100), monotonically non-decreasing while running
	Progress int `json:"progress"`

	// Result counters recorded at completion
	SignalsGenerated int `json:"signals_generated"`
	AlertsSent       int `json:"alerts_sent"`

	DurationMs int64 `json:"duration_ms"`

	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Opaque input parameters captured at trigger time
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// NewAnalysisJob creates a job record in pending state
func NewAnalysisJob(id string, payload map[string]interface{}) *AnalysisJob {
	return &AnalysisJob{
		ID:        id,
		Status:    JobStatusPending,
		StartedAt: time.Now(),
		Payload:   payload,
	}
}
