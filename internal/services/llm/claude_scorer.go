package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/augur/internal/common"
	"github.com/ternarybob/augur/internal/interfaces"
	"github.com/ternarybob/augur/internal/models"
)

// ClaudeScorer implements the SignalScorer interface using the Anthropic
// Claude API, falling back to the rule classifier when the API call or
// response parsing fails.
type ClaudeScorer struct {
	config   *common.ClaudeConfig
	logger   arbor.ILogger
	client   *anthropic.Client
	fallback *RuleClassifier
	timeout  time.Duration
}

// Compile-time assertion
var _ interfaces.SignalScorer = (*ClaudeScorer)(nil)

// NewClaudeScorer creates a Claude-backed signal scorer
func NewClaudeScorer(config *common.ClaudeConfig, logger arbor.ILogger) (*ClaudeScorer, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required for Claude scorer (set via ANTHROPIC_API_KEY or claude.api_key in config)")
	}

	if config.Model == "" {
		config.Model = "claude-sonnet-4-20250514"
	}

	timeout, err := time.ParseDuration(config.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout duration '%s': %w", config.Timeout, err)
	}

	client := anthropic.NewClient(option.WithAPIKey(config.APIKey))

	logger.Info().
		Str("model", config.Model).
		Str("timeout", config.Timeout).
		Msg("Claude scorer initialized")

	return &ClaudeScorer{
		config:   config,
		logger:   logger,
		client:   &client,
		fallback: NewRuleClassifier(),
		timeout:  timeout,
	}, nil
}

// ScoreSignal scores one ticker. Model or parse failures degrade to the
// deterministic rule classifier; only context cancellation is returned as
// an error.
func (s *ClaudeScorer) ScoreSignal(ctx context.Context, ticker string, metrics models.SentimentMetrics) (*models.TradeSignal, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.generateCompletion(timeoutCtx, ticker, metrics)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Warn().
			Err(err).
			Str("ticker", ticker).
			Msg("Claude scoring failed, using rule-based fallback")
		return s.fallback.Classify(ticker, metrics), nil
	}

	resp, err := parseScoreResponse(raw)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("ticker", ticker).
			Msg("Claude response unusable, using rule-based fallback")
		return s.fallback.Classify(ticker, metrics), nil
	}

	return &models.TradeSignal{
		ID:         common.NewSignalID(ticker),
		Ticker:     ticker,
		Decision:   models.Decision(resp.Decision),
		Confidence: models.ClampConfidence(resp.Confidence),
		Rationale:  resp.Rationale,
		Metrics:    metrics,
		CreatedAt:  time.Now(),
	}, nil
}

// generateCompletion performs the Claude API call and extracts the text
// response.
func (s *ClaudeScorer) generateCompletion(ctx context.Context, ticker string, metrics models.SentimentMetrics) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(s.config.Model),
		MaxTokens: int64(s.config.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(buildScoringPrompt(ticker, metrics)),
			),
		},
		System: []anthropic.TextBlockParam{
			{Text: scoringSystemPrompt},
		},
	}

	if s.config.Temperature > 0 {
		params.Temperature = anthropic.Float(float64(s.config.Temperature))
	}

	resp, err := s.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("Claude API call failed: %w", err)
	}

	var response strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			response.WriteString(block.Text)
		}
	}

	if response.Len() == 0 {
		return "", fmt.Errorf("no response generated from Claude API")
	}

	return response.String(), nil
}
