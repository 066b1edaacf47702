package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/augur/internal/common"
)

func TestNewSignalScorer(t *testing.T) {
	ctx := context.Background()
	logger := arbor.NewLogger()

	t.Run("unsupported provider", func(t *testing.T) {
		cfg := common.DefaultConfig()
		cfg.LLM.Provider = "openai"

		_, err := NewSignalScorer(ctx, cfg, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported")
	})

	t.Run("claude requires API key", func(t *testing.T) {
		cfg := common.DefaultConfig()
		cfg.Claude.APIKey = ""

		_, err := NewSignalScorer(ctx, cfg, logger)
		assert.Error(t, err)
	})

	t.Run("claude with key", func(t *testing.T) {
		cfg := common.DefaultConfig()
		cfg.Claude.APIKey = "sk-test"

		scorer, err := NewSignalScorer(ctx, cfg, logger)
		require.NoError(t, err)
		assert.NotNil(t, scorer)
	})

	t.Run("claude rejects bad timeout", func(t *testing.T) {
		cfg := common.DefaultConfig()
		cfg.Claude.APIKey = "sk-test"
		cfg.Claude.Timeout = "eventually"

		_, err := NewSignalScorer(ctx, cfg, logger)
		assert.Error(t, err)
	})

	t.Run("gemini requires API key", func(t *testing.T) {
		cfg := common.DefaultConfig()
		cfg.LLM.Provider = "gemini"
		cfg.Gemini.APIKey = ""

		_, err := NewSignalScorer(ctx, cfg, logger)
		assert.Error(t, err)
	})

	t.Run("rules provider needs no API key", func(t *testing.T) {
		cfg := common.DefaultConfig()
		cfg.LLM.Provider = "rules"
		cfg.Claude.APIKey = ""
		cfg.Gemini.APIKey = ""

		scorer, err := NewSignalScorer(ctx, cfg, logger)
		require.NoError(t, err)
		assert.IsType(t, &RuleScorer{}, scorer)
	})
}
