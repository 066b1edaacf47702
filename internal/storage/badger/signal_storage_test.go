package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/augur/internal/models"
)

func testSignal(id, ticker string, confidence int, createdAt time.Time) *models.TradeSignal {
	return &models.TradeSignal{
		ID:         id,
		Ticker:     ticker,
		Decision:   models.DecisionBuy,
		Confidence: confidence,
		Rationale:  "test rationale",
		CreatedAt:  createdAt,
	}
}

func TestSignalStorage_SaveAndGet(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	storage := NewSignalStorage(db, arbor.NewLogger())
	ctx := context.Background()

	signal := testSignal("sig-1", "AAPL", 85, time.Now())
	signal.Metrics = models.SentimentMetrics{
		Ticker:         "AAPL",
		Mentions:       120,
		SentimentScore: 0.5,
	}
	require.NoError(t, storage.SaveSignal(ctx, signal))

	loaded, err := storage.GetSignal(ctx, "sig-1")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", loaded.Ticker)
	assert.Equal(t, models.DecisionBuy, loaded.Decision)
	assert.Equal(t, 85, loaded.Confidence)
	assert.Equal(t, 120, loaded.Metrics.Mentions)
}

func TestSignalStorage_SaveIsUpsert(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	storage := NewSignalStorage(db, arbor.NewLogger())
	ctx := context.Background()

	require.NoError(t, storage.SaveSignal(ctx, testSignal("sig-1", "AAPL", 60, time.Now())))
	require.NoError(t, storage.SaveSignal(ctx, testSignal("sig-1", "AAPL", 90, time.Now())))

	loaded, err := storage.GetSignal(ctx, "sig-1")
	require.NoError(t, err)
	assert.Equal(t, 90, loaded.Confidence)
}

func TestSignalStorage_GetMissing(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	storage := NewSignalStorage(db, arbor.NewLogger())

	_, err := storage.GetSignal(context.Background(), "no-such-signal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSignalStorage_List(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	storage := NewSignalStorage(db, arbor.NewLogger())
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	require.NoError(t, storage.SaveSignal(ctx, testSignal("sig-1", "AAPL", 80, base)))
	require.NoError(t, storage.SaveSignal(ctx, testSignal("sig-2", "TSLA", 70, base.Add(10*time.Minute))))
	require.NoError(t, storage.SaveSignal(ctx, testSignal("sig-3", "AAPL", 90, base.Add(20*time.Minute))))

	t.Run("all signals newest first", func(t *testing.T) {
		signals, err := storage.ListSignals(ctx, "", 0)
		require.NoError(t, err)
		require.Len(t, signals, 3)
		assert.Equal(t, "sig-3", signals[0].ID)
		assert.Equal(t, "sig-1", signals[2].ID)
	})

	t.Run("filter by ticker", func(t *testing.T) {
		signals, err := storage.ListSignals(ctx, "AAPL", 0)
		require.NoError(t, err)
		require.Len(t, signals, 2)
		for _, s := range signals {
			assert.Equal(t, "AAPL", s.Ticker)
		}
	})

	t.Run("limit", func(t *testing.T) {
		signals, err := storage.ListSignals(ctx, "", 1)
		require.NoError(t, err)
		require.Len(t, signals, 1)
		assert.Equal(t, "sig-3", signals[0].ID)
	})

	t.Run("unknown ticker yields empty", func(t *testing.T) {
		signals, err := storage.ListSignals(ctx, "ZZZZ", 0)
		require.NoError(t, err)
		assert.Empty(t, signals)
	})
}
