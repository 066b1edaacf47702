// -----------------------------------------------------------------------
// AnalysisHandler - Triggers signal analysis pipeline runs
// -----------------------------------------------------------------------

package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/augur/internal/common"
	"github.com/ternarybob/augur/internal/models"
	"github.com/ternarybob/augur/internal/pipeline"
)

// AnalysisRequest is the POST /api/analysis request body
type AnalysisRequest struct {
	JobID      string             `json:"job_id"` // optional, generated when empty
	Candidates []CandidateRequest `json:"candidates" validate:"required,min=1,dive"`
	Target     int                `json:"target" validate:"gte=0"`
	ScanLimit  int                `json:"scan_limit" validate:"gte=0"`
}

// CandidateRequest is one candidate ticker in the trigger payload
type CandidateRequest struct {
	Ticker string `json:"ticker" validate:"required"`
	Name   string `json:"name"`
	Rank   int    `json:"rank"`
}

// AnalysisHandler accepts pipeline trigger requests and runs them in the
// background. The response carries the job ID for polling or the
// WebSocket feed.
type AnalysisHandler struct {
	runner   *pipeline.Runner
	defaults common.PipelineConfig
	validate *validator.Validate
	logger   arbor.ILogger
}

// NewAnalysisHandler creates an analysis trigger handler
func NewAnalysisHandler(runner *pipeline.Runner, defaults common.PipelineConfig, logger arbor.ILogger) *AnalysisHandler {
	return &AnalysisHandler{
		runner:   runner,
		defaults: defaults,
		validate: validator.New(),
		logger:   logger,
	}
}

// TriggerHandler starts an analysis run
// POST /api/analysis
func (h *AnalysisHandler) TriggerHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	jobID := req.JobID
	if jobID == "" {
		jobID = common.NewJobID()
	}

	target := req.Target
	if target == 0 {
		target = h.defaults.Target
	}
	scanLimit := req.ScanLimit
	if scanLimit == 0 {
		scanLimit = h.defaults.ScanLimit
	}
	if scanLimit < target {
		WriteError(w, http.StatusBadRequest, "scan_limit must be >= target")
		return
	}

	candidates := make([]models.Candidate, len(req.Candidates))
	for i, c := range req.Candidates {
		rank := c.Rank
		if rank == 0 {
			rank = i + 1
		}
		candidates[i] = models.Candidate{
			Ticker: c.Ticker,
			Name:   c.Name,
			Rank:   rank,
			Source: "manual",
		}
	}

	h.logger.Info().
		Str("job_id", jobID).
		Int("candidates", len(candidates)).
		Int("target", target).
		Msg("Analysis run triggered")

	// The run detaches from the request context: the job outlives the
	// HTTP request and is observed through the job record.
	go func() {
		runReq := pipeline.RunRequest{
			JobID:      jobID,
			Candidates: candidates,
			Target:     target,
			ScanLimit:  scanLimit,
		}
		if _, err := h.runner.Run(context.Background(), runReq); err != nil {
			h.logger.Warn().Err(err).Str("job_id", jobID).Msg("Analysis run finished with error")
		}
	}()

	WriteJSON(w, http.StatusAccepted, map[string]interface{}{
		"status": "accepted",
		"job_id": jobID,
	})
}
