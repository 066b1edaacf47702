// -----------------------------------------------------------------------
// TradeSignal - Scored output of the analysis pipeline
// -----------------------------------------------------------------------

package models

import "time"

// Decision is the categorical trade decision for a scored ticker
type Decision string

const (
	DecisionBuy  Decision = "BUY"
	DecisionSell Decision = "SELL"
	DecisionHold Decision = "HOLD"
)

// Valid reports whether d is one of the three recognized decisions
func (d Decision) Valid() bool {
	switch d {
	case DecisionBuy, DecisionSell, DecisionHold:
		return true
	}
	return false
}

// HighConfidenceThreshold is the confidence at or above which a signal is
// counted as an alert and forwarded to the notifier.
const HighConfidenceThreshold = 70

// TradeSignal is a persisted scoring result for one ticker. Many signals
// may reference the same ticker across job runs; signals are read-only
// once written.
type TradeSignal struct {
	ID     string `json:"id" badgerhold:"key"`
	Ticker string `json:"ticker" badgerhold:"index"`

	Decision   Decision `json:"decision"`
	Confidence int      `json:"confidence"` // clamped to [0,100]
	Rationale  string   `json:"rationale"`

	// Metrics the signal was derived from
	Metrics SentimentMetrics `json:"metrics"`

	CreatedAt time.Time `json:"created_at"`
}

// IsHighConfidence reports whether the signal qualifies for alerting
func (s TradeSignal) IsHighConfidence() bool {
	return s.Confidence >= HighConfidenceThreshold
}

// ClampConfidence bounds a raw confidence value to [0,100]
func ClampConfidence(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
