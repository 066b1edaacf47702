package llm

import (
	"fmt"

	"github.com/ternarybob/augur/internal/models"
)

const scoringSystemPrompt = `You are a trading signal analyst. Given social sentiment metrics for a stock ticker, classify it as BUY, SELL, or HOLD with a confidence value.

Respond with ONLY a JSON object in this exact format:
{"decision": "BUY|SELL|HOLD", "confidence": 0-100, "rationale": "one or two sentence justification"}

Guidelines:
- Strong positive sentiment with high engagement suggests BUY
- Strong negative sentiment suggests SELL
- Mixed or weak signals suggest HOLD
- Confidence reflects how decisively the metrics point one way`

// buildScoringPrompt renders the per-ticker user prompt
func buildScoringPrompt(ticker string, metrics models.SentimentMetrics) string {
	return fmt.Sprintf(`Analyze the following sentiment metrics for %s:

Mentions: %d
Upvotes: %d
Comments: %d
Unique users: %d
Sentiment score: %.2f (range -1.0 to 1.0)
Rank score: %.2f
Fetched at: %s`,
		ticker,
		metrics.Mentions,
		metrics.Upvotes,
		metrics.Comments,
		metrics.UniqueUsers,
		metrics.SentimentScore,
		metrics.RankScore,
		metrics.FetchedAt.Format("2006-01-02 15:04:05"),
	)
}
