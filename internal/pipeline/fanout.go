// -----------------------------------------------------------------------
// ScoreFanout - Concurrent per-ticker scoring with isolated failures
// -----------------------------------------------------------------------

package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/augur/internal/interfaces"
	"github.com/ternarybob/augur/internal/models"
)

// ScoreFanout scores selected candidates concurrently. Each ticker gets its
// own goroutine with no shared mutable state; a failed scoring call drops
// that ticker only and never cancels or affects the others.
type ScoreFanout struct {
	scorer interfaces.SignalScorer
	logger arbor.ILogger
}

// NewScoreFanout creates a scoring fan-out
func NewScoreFanout(scorer interfaces.SignalScorer, logger arbor.ILogger) *ScoreFanout {
	return &ScoreFanout{
		scorer: scorer,
		logger: logger,
	}
}

// ScoreAll launches one scoring task per selection and joins all of them
// before returning. Results are collected by input index, so the returned
// order matches input order deterministically regardless of completion
// order. An empty result is not an error at this layer.
func (f *ScoreFanout) ScoreAll(ctx context.Context, selections []Selection) []models.TradeSignal {
	if len(selections) == 0 {
		return nil
	}

	results := make([]*models.TradeSignal, len(selections))

	var wg sync.WaitGroup
	for i, sel := range selections {
		wg.Add(1)
		go func(idx int, sel Selection) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					f.logger.Error().
						Str("ticker", sel.Candidate.Ticker).
						Str("panic", fmt.Sprintf("%v", r)).
						Msg("Scoring panicked, dropping ticker from result set")
				}
			}()

			signal, err := f.scorer.ScoreSignal(ctx, sel.Candidate.Ticker, sel.Metrics)
			if err != nil {
				f.logger.Warn().
					Err(err).
					Str("ticker", sel.Candidate.Ticker).
					Msg("Scoring failed, dropping ticker from result set")
				return
			}
			results[idx] = signal
		}(i, sel)
	}
	wg.Wait()

	// Compact to successes, preserving input order
	signals := make([]models.TradeSignal, 0, len(selections))
	for _, r := range results {
		if r != nil {
			signals = append(signals, *r)
		}
	}

	f.logger.Info().
		Int("scored", len(signals)).
		Int("attempted", len(selections)).
		Msg("Scoring fan-out complete")

	return signals
}
