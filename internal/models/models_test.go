package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobStatus_IsTerminal(t *testing.T) {
	assert.False(t, JobStatusPending.IsTerminal())
	assert.False(t, JobStatusRunning.IsTerminal())
	assert.True(t, JobStatusCompleted.IsTerminal())
	assert.True(t, JobStatusFailed.IsTerminal())
}

func TestSentimentMetrics_HasData(t *testing.T) {
	t.Run("all zero counters means no data", func(t *testing.T) {
		m := SentimentMetrics{Ticker: "AAPL", SentimentScore: 0.5}
		assert.False(t, m.HasData())
	})

	t.Run("any counter present means data", func(t *testing.T) {
		assert.True(t, SentimentMetrics{Mentions: 1}.HasData())
		assert.True(t, SentimentMetrics{Upvotes: 1}.HasData())
		assert.True(t, SentimentMetrics{Comments: 1}.HasData())
		assert.True(t, SentimentMetrics{UniqueUsers: 1}.HasData())
	})
}

func TestDecision_Valid(t *testing.T) {
	assert.True(t, DecisionBuy.Valid())
	assert.True(t, DecisionSell.Valid())
	assert.True(t, DecisionHold.Valid())
	assert.False(t, Decision("SHORT").Valid())
	assert.False(t, Decision("").Valid())
}

func TestTradeSignal_IsHighConfidence(t *testing.T) {
	assert.True(t, TradeSignal{Confidence: 70}.IsHighConfidence())
	assert.True(t, TradeSignal{Confidence: 100}.IsHighConfidence())
	assert.False(t, TradeSignal{Confidence: 69}.IsHighConfidence())
}

func TestClampConfidence(t *testing.T) {
	assert.Equal(t, 0, ClampConfidence(-5))
	assert.Equal(t, 0, ClampConfidence(0))
	assert.Equal(t, 55, ClampConfidence(55))
	assert.Equal(t, 100, ClampConfidence(100))
	assert.Equal(t, 100, ClampConfidence(130))
}

func TestNewAnalysisJob(t *testing.T) {
	job := NewAnalysisJob("job-1", map[string]interface{}{"target": 3})

	assert.Equal(t, "job-1", job.ID)
	assert.Equal(t, JobStatusPending, job.Status)
	assert.False(t, job.StartedAt.IsZero())
	assert.Nil(t, job.CompletedAt)
	assert.Equal(t, 0, job.Progress)
}
