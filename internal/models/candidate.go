package models

// Candidate is an input ticker eligible for sentiment analysis and scoring.
// Candidates arrive ordered by the trigger context (trending rank or
// watchlist order) and are immutable once received by the pipeline.
type Candidate struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name,omitempty"`

	// Ranking/quality hints supplied by the trigger context
	Rank   int    `json:"rank,omitempty"`
	Source string `json:"source,omitempty"` // e.g. "trending", "watchlist", "manual"
}
