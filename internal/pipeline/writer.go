package pipeline

import (
	"context"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/augur/internal/interfaces"
	"github.com/ternarybob/augur/internal/models"
)

// WriteResult records the persistence outcome for one signal
type WriteResult struct {
	Ticker string
	OK     bool
}

// ResultWriter persists scored signals as independent units of work. A
// failed write is recorded and reported; it never blocks the remaining
// writes and is never retried here.
type ResultWriter struct {
	store  interfaces.SignalStorage
	logger arbor.ILogger
}

// NewResultWriter creates a result writer
func NewResultWriter(store interfaces.SignalStorage, logger arbor.ILogger) *ResultWriter {
	return &ResultWriter{
		store:  store,
		logger: logger,
	}
}

// WriteAll persists signals sequentially, returning one result per input
// in input order.
func (w *ResultWriter) WriteAll(ctx context.Context, signals []models.TradeSignal) []WriteResult {
	results := make([]WriteResult, 0, len(signals))

	for i := range signals {
		signal := signals[i]
		err := w.store.SaveSignal(ctx, &signal)
		if err != nil {
			w.logger.Error().
				Err(err).
				Str("ticker", signal.Ticker).
				Str("signal_id", signal.ID).
				Msg("Failed to persist signal")
		}
		results = append(results, WriteResult{Ticker: signal.Ticker, OK: err == nil})
	}

	return results
}
