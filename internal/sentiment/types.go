// Package sentiment provides a client for the social sentiment metrics API.
// This package centralizes all sentiment provider interactions for the
// application.
package sentiment

import (
	"fmt"
	"time"
)

// APIError represents an error from the sentiment API.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sentiment API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// RateLimitError represents a rate limit error.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("sentiment rate limit exceeded, retry after %v", e.RetryAfter)
}

// AuthError represents an authentication failure.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("sentiment API authentication failed: %s", e.Message)
}

// tickerMetricsResponse is the provider's wire format for one ticker.
type tickerMetricsResponse struct {
	Ticker      string  `json:"ticker"`
	Mentions    int     `json:"mentions"`
	Upvotes     int     `json:"upvotes"`
	Comments    int     `json:"comments"`
	UniqueUsers int     `json:"unique_users"`
	Sentiment   float64 `json:"sentiment"`
	RankScore   float64 `json:"rank_score"`
}
