package interfaces

import (
	"context"

	"github.com/ternarybob/augur/internal/models"
)

// JobListOptions filters job listings
type JobListOptions struct {
	Status string
	Limit  int
	Offset int
}

// JobStorage persists analysis job lifecycle records keyed by job ID
type JobStorage interface {
	// CreateJob inserts a new job record. Fails if the ID already exists.
	CreateJob(ctx context.Context, job *models.AnalysisJob) error

	// UpdateJob upserts the job record by ID
	UpdateJob(ctx context.Context, job *models.AnalysisJob) error

	// GetJob loads a job by ID. Returns ErrJobNotFound-wrapped error when absent.
	GetJob(ctx context.Context, jobID string) (*models.AnalysisJob, error)

	// ListJobs returns jobs matching the options, newest first
	ListJobs(ctx context.Context, opts *JobListOptions) ([]*models.AnalysisJob, error)

	// DeleteJob removes a job record (administrative operation, not used by the pipeline)
	DeleteJob(ctx context.Context, jobID string) error
}

// SignalStorage persists scored trade signals
type SignalStorage interface {
	// SaveSignal inserts or replaces a signal by ID
	SaveSignal(ctx context.Context, signal *models.TradeSignal) error

	// GetSignal loads a signal by ID
	GetSignal(ctx context.Context, id string) (*models.TradeSignal, error)

	// ListSignals returns signals, optionally filtered by ticker, newest first
	ListSignals(ctx context.Context, ticker string, limit int) ([]*models.TradeSignal, error)
}

// StorageManager provides access to all storage services
type StorageManager interface {
	JobStorage() JobStorage
	SignalStorage() SignalStorage
	Close() error
}
