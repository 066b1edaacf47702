package models

// AnalysisSummary is the per-job aggregate over scored signals. It is
// derived and ephemeral: recomputed on every run, never stored on its own.
type AnalysisSummary struct {
	TotalAnalyzed  int `json:"total_analyzed"`
	HighConfidence int `json:"high_confidence"` // confidence >= HighConfidenceThreshold

	BuyCount  int `json:"buy_count"`
	SellCount int `json:"sell_count"`
	HoldCount int `json:"hold_count"`

	// Top signals by confidence descending, stable on fan-out order, max 3
	TopSignals []TradeSignal `json:"top_signals"`
}
