package common

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewJobID generates a unique analysis job ID with the "job_" prefix
// Format: job_<uuid>
func NewJobID() string {
	return "job_" + uuid.New().String()
}

// NewSignalID generates a unique trade signal ID.
// Format: sig_<ticker>_<unix-nanos> - unique within a run and sortable by time.
func NewSignalID(ticker string) string {
	return fmt.Sprintf("sig_%s_%d", ticker, time.Now().UnixNano())
}
