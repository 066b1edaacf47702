package llm

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/augur/internal/common"
	"github.com/ternarybob/augur/internal/interfaces"
)

// NewSignalScorer creates the appropriate scorer implementation based on
// configuration.
func NewSignalScorer(ctx context.Context, cfg *common.Config, logger arbor.ILogger) (interfaces.SignalScorer, error) {
	logger.Info().Str("provider", cfg.LLM.Provider).Msg("Initializing signal scorer")

	switch cfg.LLM.Provider {
	case "claude":
		return NewClaudeScorer(&cfg.Claude, logger)
	case "gemini":
		return NewGeminiScorer(ctx, &cfg.Gemini, logger)
	case "rules":
		return NewRuleScorer(), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.LLM.Provider)
	}
}
