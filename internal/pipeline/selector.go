// -----------------------------------------------------------------------
// Selector - Scans ordered candidates for ones with usable sentiment data
// -----------------------------------------------------------------------

package pipeline

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/augur/internal/interfaces"
	"github.com/ternarybob/augur/internal/models"
)

// Selection pairs a candidate with the metrics fetched for it
type Selection struct {
	Candidate models.Candidate
	Metrics   models.SentimentMetrics
}

// ScanProgressFunc is called once per candidate tested during a scan
type ScanProgressFunc func(scanned, found int, ticker string)

// Selector scans an ordered candidate list and returns the first candidates
// whose fetched metrics pass the completeness predicate.
type Selector struct {
	provider interfaces.MetricsProvider
	logger   arbor.ILogger
}

// NewSelector creates a candidate selector
func NewSelector(provider interfaces.MetricsProvider, logger arbor.ILogger) *Selector {
	return &Selector{
		provider: provider,
		logger:   logger,
	}
}

// Select iterates candidates in order, fetching metrics for each, and stops
// once target candidates with usable data are accumulated or the list is
// exhausted. A fetch failure skips the candidate without aborting the scan.
// Returns between 1 and target selections in discovery order; downstream
// tie-breaks depend on that order being preserved.
func (s *Selector) Select(ctx context.Context, candidates []models.Candidate, target int, onProgress ScanProgressFunc) ([]Selection, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	if target <= 0 {
		return nil, fmt.Errorf("selection target must be positive, got %d", target)
	}

	selected := make([]Selection, 0, target)

	for i, candidate := range candidates {
		if len(selected) >= target {
			break
		}

		metrics, err := s.provider.FetchMetrics(ctx, candidate)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("ticker", candidate.Ticker).
				Msg("Metrics fetch failed, skipping candidate")
		} else if metrics.HasData() {
			selected = append(selected, Selection{Candidate: candidate, Metrics: metrics})
			s.logger.Debug().
				Str("ticker", candidate.Ticker).
				Int("mentions", metrics.Mentions).
				Float64("sentiment_score", metrics.SentimentScore).
				Msg("Candidate selected")
		} else {
			// All-zero counters mean the provider has no coverage for
			// this ticker, not a valid quiet reading.
			s.logger.Debug().
				Str("ticker", candidate.Ticker).
				Msg("Candidate has no sentiment data, skipping")
		}

		if onProgress != nil {
			onProgress(i+1, len(selected), candidate.Ticker)
		}
	}

	if len(selected) == 0 {
		return nil, ErrInsufficientData
	}

	s.logger.Info().
		Int("selected", len(selected)).
		Int("target", target).
		Msg("Candidate selection complete")

	return selected, nil
}
