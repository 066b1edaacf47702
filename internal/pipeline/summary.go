package pipeline

import (
	"sort"

	"github.com/ternarybob/augur/internal/models"
)

const topSignalCount = 3

// Summarize computes distribution statistics and the top-ranked signals
// for one run. Pure function: zero counts and an empty top list for empty
// input, no side effects.
func Summarize(signals []models.TradeSignal) models.AnalysisSummary {
	summary := models.AnalysisSummary{
		TotalAnalyzed: len(signals),
		TopSignals:    []models.TradeSignal{},
	}

	for _, s := range signals {
		if s.IsHighConfidence() {
			summary.HighConfidence++
		}
		switch s.Decision {
		case models.DecisionBuy:
			summary.BuyCount++
		case models.DecisionSell:
			summary.SellCount++
		case models.DecisionHold:
			summary.HoldCount++
		}
	}

	// Stable sort keeps fan-out order for equal confidences, so the top
	// list is reproducible for deterministic inputs.
	ranked := make([]models.TradeSignal, len(signals))
	copy(ranked, signals)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Confidence > ranked[j].Confidence
	})

	if len(ranked) > topSignalCount {
		ranked = ranked[:topSignalCount]
	}
	summary.TopSignals = ranked

	return summary
}
