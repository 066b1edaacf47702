package interfaces

import (
	"context"

	"github.com/ternarybob/augur/internal/models"
)

// MetricsProvider fetches sentiment metrics for a candidate ticker.
// Rate-limit, auth, and transient-unavailability failures are all surfaced
// as errors; the pipeline treats every fetch error as "skip candidate".
type MetricsProvider interface {
	FetchMetrics(ctx context.Context, candidate models.Candidate) (models.SentimentMetrics, error)
}

// SignalScorer produces a trade signal for one ticker's metrics.
// Implementations fall back to a deterministic rule-based decision when
// the primary model is unavailable, so errors from ScoreSignal are
// transport-level and rare.
type SignalScorer interface {
	ScoreSignal(ctx context.Context, ticker string, metrics models.SentimentMetrics) (*models.TradeSignal, error)
}

// Notifier delivers best-effort alerts for high-confidence signals
type Notifier interface {
	Notify(ctx context.Context, signal *models.TradeSignal) error
}
