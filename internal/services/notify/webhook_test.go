package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/augur/internal/common"
	"github.com/ternarybob/augur/internal/models"
)

func notifyConfig(url string) *common.NotifyConfig {
	return &common.NotifyConfig{
		Enabled:    true,
		WebhookURL: url,
		Timeout:    "5s",
	}
}

func TestNewWebhookNotifier(t *testing.T) {
	logger := arbor.NewLogger()

	t.Run("requires webhook URL", func(t *testing.T) {
		_, err := NewWebhookNotifier(&common.NotifyConfig{Timeout: "5s"}, logger)
		assert.Error(t, err)
	})

	t.Run("rejects bad timeout", func(t *testing.T) {
		_, err := NewWebhookNotifier(&common.NotifyConfig{WebhookURL: "http://x", Timeout: "soonish"}, logger)
		assert.Error(t, err)
	})
}

func TestWebhookNotifier_Notify(t *testing.T) {
	logger := arbor.NewLogger()
	ctx := context.Background()

	signal := &models.TradeSignal{
		ID:         "sig-1",
		Ticker:     "AAPL",
		Decision:   models.DecisionBuy,
		Confidence: 85,
		Rationale:  "strong bullish sentiment",
		CreatedAt:  time.Now(),
	}

	t.Run("posts signal payload as JSON", func(t *testing.T) {
		var body map[string]interface{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			data, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(data, &body))
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		notifier, err := NewWebhookNotifier(notifyConfig(server.URL), logger)
		require.NoError(t, err)

		require.NoError(t, notifier.Notify(ctx, signal))
		assert.Equal(t, "AAPL", body["ticker"])
		assert.Equal(t, "BUY", body["decision"])
		assert.Equal(t, float64(85), body["confidence"])
	})

	t.Run("non-2xx response is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		notifier, err := NewWebhookNotifier(notifyConfig(server.URL), logger)
		require.NoError(t, err)

		err = notifier.Notify(ctx, signal)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("unreachable endpoint is an error", func(t *testing.T) {
		notifier, err := NewWebhookNotifier(notifyConfig("http://127.0.0.1:1"), logger)
		require.NoError(t, err)
		assert.Error(t, notifier.Notify(ctx, signal))
	})
}
