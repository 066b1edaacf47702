package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "augur.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 8085, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 3, cfg.Pipeline.Target)
	assert.Equal(t, 10, cfg.Pipeline.ScanLimit)
	assert.Equal(t, "claude", cfg.LLM.Provider)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFiles(t *testing.T) {
	t.Run("no files returns defaults", func(t *testing.T) {
		cfg, err := LoadFromFiles()
		require.NoError(t, err)
		assert.Equal(t, 8085, cfg.Server.Port)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeConfigFile(t, `
environment = "production"

[server]
port = 9090

[pipeline]
target = 5
scan_limit = 20

[llm]
provider = "gemini"
`)
		cfg, err := LoadFromFiles(path)
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.Environment)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, 5, cfg.Pipeline.Target)
		assert.Equal(t, "gemini", cfg.LLM.Provider)
		// Untouched sections keep defaults
		assert.Equal(t, "localhost", cfg.Server.Host)
	})

	t.Run("later files override earlier ones", func(t *testing.T) {
		first := writeConfigFile(t, "[server]\nport = 9090\n")
		second := writeConfigFile(t, "[server]\nport = 7070\n")

		cfg, err := LoadFromFiles(first, second)
		require.NoError(t, err)
		assert.Equal(t, 7070, cfg.Server.Port)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := LoadFromFiles("/nonexistent/augur.toml")
		assert.Error(t, err)
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("AUGUR_SERVER_PORT", "6060")
		path := writeConfigFile(t, "[server]\nport = 9090\n")

		cfg, err := LoadFromFiles(path)
		require.NoError(t, err)
		assert.Equal(t, 6060, cfg.Server.Port)
	})

	t.Run("anthropic key picked up from env", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "sk-test")

		cfg, err := LoadFromFiles()
		require.NoError(t, err)
		assert.Equal(t, "sk-test", cfg.Claude.APIKey)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("invalid llm provider", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.LLM.Provider = "openai"
		assert.Error(t, cfg.Validate())
	})

	t.Run("rules provider accepted", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.LLM.Provider = "rules"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("scan limit below target", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Pipeline.Target = 20
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad sentiment timeout", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Sentiment.Timeout = "soon"
		assert.Error(t, cfg.Validate())
	})

	t.Run("scheduler enabled requires valid schedule and watchlist", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Scheduler.Enabled = true
		assert.Error(t, cfg.Validate(), "empty watchlist")

		cfg.Scheduler.Watchlist = []string{"AAPL"}
		assert.NoError(t, cfg.Validate())

		cfg.Scheduler.Schedule = "whenever"
		assert.Error(t, cfg.Validate())
	})
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := DefaultConfig()

	ApplyFlagOverrides(cfg, 7777, "0.0.0.0")
	assert.Equal(t, 7777, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	// Zero values leave config untouched
	ApplyFlagOverrides(cfg, 0, "")
	assert.Equal(t, 7777, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}
