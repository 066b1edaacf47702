package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/augur/internal/common"
	"github.com/ternarybob/augur/internal/interfaces"
	"github.com/ternarybob/augur/internal/models"
)

// Sentiment thresholds for the rule-based classification
const (
	bullishThreshold = 0.3
	bearishThreshold = -0.3
)

// RuleClassifier produces a deterministic trade signal from sentiment
// metrics WITHOUT making LLM calls. It is the fallback used when the
// primary scoring model is unavailable, so scoring never fails for
// business reasons.
type RuleClassifier struct{}

// NewRuleClassifier creates a rule-based classifier
func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{}
}

// Classify maps metrics to a decision:
//   - sentiment >= 0.3  -> BUY
//   - sentiment <= -0.3 -> SELL
//   - otherwise         -> HOLD
//
// Confidence scales with how far sentiment sits from neutral plus an
// engagement bonus, clamped to [0,100].
func (rc *RuleClassifier) Classify(ticker string, metrics models.SentimentMetrics) *models.TradeSignal {
	var decision models.Decision
	switch {
	case metrics.SentimentScore >= bullishThreshold:
		decision = models.DecisionBuy
	case metrics.SentimentScore <= bearishThreshold:
		decision = models.DecisionSell
	default:
		decision = models.DecisionHold
	}

	magnitude := metrics.SentimentScore
	if magnitude < 0 {
		magnitude = -magnitude
	}

	engagementBonus := metrics.Mentions / 10
	if engagementBonus > 20 {
		engagementBonus = 20
	}

	confidence := models.ClampConfidence(int(magnitude*50) + 30 + engagementBonus)

	return &models.TradeSignal{
		ID:         common.NewSignalID(ticker),
		Ticker:     ticker,
		Decision:   decision,
		Confidence: confidence,
		Rationale: fmt.Sprintf("Rule-based classification: sentiment %.2f with %d mentions",
			metrics.SentimentScore, metrics.Mentions),
		Metrics:   metrics,
		CreatedAt: time.Now(),
	}
}

// RuleScorer adapts the classifier to the SignalScorer interface so the
// "rules" provider can run without any API keys.
type RuleScorer struct {
	classifier *RuleClassifier
}

// Compile-time assertion
var _ interfaces.SignalScorer = (*RuleScorer)(nil)

// NewRuleScorer creates a standalone rule-based scorer
func NewRuleScorer() *RuleScorer {
	return &RuleScorer{classifier: NewRuleClassifier()}
}

// ScoreSignal classifies deterministically; only context cancellation is
// returned as an error.
func (s *RuleScorer) ScoreSignal(ctx context.Context, ticker string, metrics models.SentimentMetrics) (*models.TradeSignal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.classifier.Classify(ticker, metrics), nil
}
