package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/augur/internal/models"
)

func testSignals(tickers ...string) []models.TradeSignal {
	out := make([]models.TradeSignal, len(tickers))
	for i, ticker := range tickers {
		out[i] = models.TradeSignal{
			ID:         "sig_" + ticker + "_test",
			Ticker:     ticker,
			Decision:   models.DecisionBuy,
			Confidence: 75,
			CreatedAt:  time.Now(),
		}
	}
	return out
}

func TestResultWriter_WriteAll(t *testing.T) {
	ctx := context.Background()
	logger := arbor.NewLogger()

	t.Run("all writes succeed", func(t *testing.T) {
		store := newMemorySignalStorage()
		writer := NewResultWriter(store, logger)

		results := writer.WriteAll(ctx, testSignals("AAPL", "TSLA"))
		require.Len(t, results, 2)
		for _, r := range results {
			assert.True(t, r.OK)
		}
		assert.Len(t, store.signals, 2)
	})

	t.Run("failed write is recorded and does not block the rest", func(t *testing.T) {
		store := newMemorySignalStorage()
		store.failFor["TSLA"] = true
		writer := NewResultWriter(store, logger)

		results := writer.WriteAll(ctx, testSignals("AAPL", "TSLA", "GME"))
		require.Len(t, results, 3)
		assert.True(t, results[0].OK)
		assert.False(t, results[1].OK)
		assert.True(t, results[2].OK)

		// Only the successful writes landed
		assert.Len(t, store.signals, 2)
	})

	t.Run("empty input yields empty results", func(t *testing.T) {
		writer := NewResultWriter(newMemorySignalStorage(), logger)
		assert.Empty(t, writer.WriteAll(ctx, nil))
	})
}
