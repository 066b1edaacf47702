package pipeline

import (
	"errors"
	"fmt"
)

// Fatal pipeline errors. Each one terminates the run and transitions the
// job to failed with the error text as the user-visible reason.
var (
	// ErrNoCandidates is returned when the trigger supplies an empty candidate list
	ErrNoCandidates = errors.New("no candidates supplied for analysis")

	// ErrInsufficientData is returned when no scanned candidate produced
	// usable sentiment data within the scan budget
	ErrInsufficientData = errors.New("no candidate produced usable sentiment data")
)

// JobCreationError indicates the job record could not be created - either
// the ID collides with an existing job or the persistence write failed.
// This is fatal: the pipeline cannot run without a tracked job.
type JobCreationError struct {
	JobID string
	Err   error
}

func (e *JobCreationError) Error() string {
	return fmt.Sprintf("failed to create job %s: %v", e.JobID, e.Err)
}

func (e *JobCreationError) Unwrap() error {
	return e.Err
}
