package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/augur/internal/common"
	"github.com/ternarybob/augur/internal/interfaces"
	"github.com/ternarybob/augur/internal/models"
	"google.golang.org/genai"
)

// GeminiScorer implements the SignalScorer interface using Google Gemini,
// with the same rule-based fallback behavior as the Claude scorer.
type GeminiScorer struct {
	config   *common.GeminiConfig
	logger   arbor.ILogger
	client   *genai.Client
	fallback *RuleClassifier
	timeout  time.Duration
}

// Compile-time assertion
var _ interfaces.SignalScorer = (*GeminiScorer)(nil)

// NewGeminiScorer creates a Gemini-backed signal scorer
func NewGeminiScorer(ctx context.Context, config *common.GeminiConfig, logger arbor.ILogger) (*GeminiScorer, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required for Gemini scorer (set via GEMINI_API_KEY or gemini.api_key in config)")
	}

	if config.Model == "" {
		config.Model = "gemini-2.0-flash"
	}

	timeout, err := time.ParseDuration(config.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout duration '%s': %w", config.Timeout, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	logger.Info().
		Str("model", config.Model).
		Str("timeout", config.Timeout).
		Msg("Gemini scorer initialized")

	return &GeminiScorer{
		config:   config,
		logger:   logger,
		client:   client,
		fallback: NewRuleClassifier(),
		timeout:  timeout,
	}, nil
}

// ScoreSignal scores one ticker. Model or parse failures degrade to the
// deterministic rule classifier; only context cancellation is returned as
// an error.
func (s *GeminiScorer) ScoreSignal(ctx context.Context, ticker string, metrics models.SentimentMetrics) (*models.TradeSignal, error) {
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
			Msg("Gemini scoring failed, using rule-based fallback")
		return s.fallback.Classify(ticker, metrics), nil
	}

	resp, err := parseScoreResponse(raw)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("ticker", ticker).
			Msg("Gemini response unusable, using rule-based fallback")
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

// generateCompletion performs the Gemini API call and extracts the text
// response.
func (s *GeminiScorer) generateCompletion(ctx context.Context, ticker string, metrics models.SentimentMetrics) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(scoringSystemPrompt, genai.RoleUser),
	}
	if s.config.Temperature > 0 {
		config.Temperature = genai.Ptr(s.config.Temperature)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(buildScoringPrompt(ticker, metrics), genai.RoleUser),
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.config.Model, contents, config)
	if err != nil {
		return "", fmt.Errorf("Gemini API call failed: %w", err)
	}

	var response strings.Builder
	if resp != nil && len(resp.Candidates) > 0 {
		for _, candidate := range resp.Candidates {
			// Safety-blocked candidates come back with nil Content
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if part.Text != "" {
					response.WriteString(part.Text)
				}
			}
			if response.Len() > 0 {
				break
			}
		}
	}

	if response.Len() == 0 {
		return "", fmt.Errorf("no response generated from Gemini API")
	}

	return response.String(), nil
}
