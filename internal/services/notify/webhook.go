// -----------------------------------------------------------------------
// Webhook Notifier - Best-effort delivery of high-confidence signals
// -----------------------------------------------------------------------

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/augur/internal/common"
	"github.com/ternarybob/augur/internal/interfaces"
	"github.com/ternarybob/augur/internal/models"
)

// WebhookNotifier posts high-confidence signals to a configured webhook
// URL. Delivery is best-effort: failures are logged by the caller and
// never abort the pipeline.
type WebhookNotifier struct {
	webhookURL string
	httpClient *http.Client
	logger     arbor.ILogger
}

// Compile-time assertion
var _ interfaces.Notifier = (*WebhookNotifier)(nil)

// NewWebhookNotifier creates a webhook notifier from config
func NewWebhookNotifier(config *common.NotifyConfig, logger arbor.ILogger) (*WebhookNotifier, error) {
	if config.WebhookURL == "" {
		return nil, fmt.Errorf("notify webhook_url is required when notifications are enabled")
	}

	timeout, err := time.ParseDuration(config.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid notify timeout '%s': %w", config.Timeout, err)
	}

	return &WebhookNotifier{
		webhookURL: config.WebhookURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// Notify posts the signal as JSON to the webhook
func (n *WebhookNotifier) Notify(ctx context.Context, signal *models.TradeSignal) error {
	payload, err := json.Marshal(map[string]interface{}{
		"ticker":     signal.Ticker,
		"decision":   signal.Decision,
		"confidence": signal.Confidence,
		"rationale":  signal.Rationale,
		"created_at": signal.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notification delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification rejected with status %d", resp.StatusCode)
	}

	n.logger.Debug().
		Str("ticker", signal.Ticker).
		Int("confidence", signal.Confidence).
		Msg("Alert delivered")

	return nil
}
