package models

import "time"

// SentimentMetrics holds engagement counters and ranking scores for one
// ticker, as returned by the external sentiment data provider. Values are
// never mutated after creation.
type SentimentMetrics struct {
	Ticker string `json:"ticker"`

	// Engagement counters
	Mentions  int `json:"mentions"`
	Upvotes   int `json:"upvotes"`
	Comments  int `json:"comments"`
	UniqueUsers int `json:"unique_users"`

	// Ranking scores
	SentimentScore float64 `json:"sentiment_score"` // -1.0 .. 1.0
	RankScore      float64 `json:"rank_score"`      // provider trending rank score

	FetchedAt time.Time `json:"fetched_at"`
}

// HasData reports whether the metrics carry usable engagement data.
// All-zero counters are treated as absent data, not as valid zero
// readings - a deliberate policy: the provider returns zeroed counters
// for tickers it has no coverage of.
func (m SentimentMetrics) HasData() bool {
	return m.Mentions > 0 || m.Upvotes > 0 || m.Comments > 0 || m.UniqueUsers > 0
}
