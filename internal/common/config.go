package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment"` // "development" or "production"
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Logging     LoggingConfig   `toml:"logging"`
	Pipeline    PipelineConfig  `toml:"pipeline"`
	Sentiment   SentimentConfig `toml:"sentiment"`
	LLM         LLMConfig       `toml:"llm"`
	Claude      ClaudeConfig    `toml:"claude"`
	Gemini      GeminiConfig    `toml:"gemini"`
	Notify      NotifyConfig    `toml:"notify"`
	Scheduler   SchedulerConfig `toml:"scheduler"`
	WebSocket   WebSocketConfig `toml:"websocket"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs
}

// PipelineConfig contains defaults for analysis pipeline runs
type PipelineConfig struct {
	Target    int `toml:"target"`     // Number of candidates to select per run
	ScanLimit int `toml:"scan_limit"` // Max candidates scanned per run
}

// SentimentConfig configures the external sentiment metrics provider
type SentimentConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	Timeout   string `toml:"timeout"`    // e.g. "30s"
	RateLimit int    `toml:"rate_limit"` // requests per second
}

// LLMConfig selects the scoring provider
type LLMConfig struct {
	Provider string `toml:"provider"` // "claude", "gemini" or "rules"
}

// ClaudeConfig contains Anthropic Claude settings
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	Timeout     string  `toml:"timeout"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float32 `toml:"temperature"`
}

// GeminiConfig contains Google Gemini settings
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	Timeout     string  `toml:"timeout"`
	Temperature float32 `toml:"temperature"`
}

// NotifyConfig configures the webhook notifier for high-confidence signals
type NotifyConfig struct {
	Enabled    bool   `toml:"enabled"`
	WebhookURL string `toml:"webhook_url"`
	Timeout    string `toml:"timeout"`
}

// SchedulerConfig configures cron-driven analysis runs
type SchedulerConfig struct {
	Enabled   bool     `toml:"enabled"`
	Schedule  string   `toml:"schedule"`  // Cron schedule format
	Watchlist []string `toml:"watchlist"` // Tickers scanned on each scheduled run
}

type WebSocketConfig struct {
	MinLevel        string   `toml:"min_level"`        // Minimum log level broadcast to clients
	ExcludePatterns []string `toml:"exclude_patterns"` // Log messages to suppress from the stream
	AllowedEvents   []string `toml:"allowed_events"`   // Whitelist of events to broadcast (empty = allow all)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8085,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/augur",
			},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05.000",
		},
		Pipeline: PipelineConfig{
			Target:    3,
			ScanLimit: 10,
		},
		Sentiment: SentimentConfig{
			Timeout:   "30s",
			RateLimit: 10,
		},
		LLM: LLMConfig{
			Provider: "claude",
		},
		Claude: ClaudeConfig{
			Model:     "claude-sonnet-4-20250514",
			Timeout:   "60s",
			MaxTokens: 4096,
		},
		Gemini: GeminiConfig{
			Model:   "gemini-2.0-flash",
			Timeout: "60s",
		},
		Notify: NotifyConfig{
			Timeout: "10s",
		},
		Scheduler: SchedulerConfig{
			Schedule: "0 7 * * 1-5",
		},
	}
}

// LoadFromFiles loads configuration with precedence: defaults -> files (in order) -> env.
// Later files override earlier ones.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := DefaultConfig()

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// applyEnvOverrides applies AUGUR_* environment variable overrides
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("AUGUR_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Server.Port = port
		}
	}
	if v := os.Getenv("AUGUR_SERVER_HOST"); v != "" {
		config.Server.Host = v
	}
	if v := os.Getenv("AUGUR_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("AUGUR_STORAGE_PATH"); v != "" {
		config.Storage.Badger.Path = v
	}
	if v := os.Getenv("AUGUR_SENTIMENT_API_KEY"); v != "" {
		config.Sentiment.APIKey = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" && config.Claude.APIKey == "" {
		config.Claude.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" && config.Gemini.APIKey == "" {
		config.Gemini.APIKey = v
	}
	if v := os.Getenv("AUGUR_WEBHOOK_URL"); v != "" {
		config.Notify.WebhookURL = v
	}
}

// Validate checks configuration invariants
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Pipeline.Target <= 0 {
		return fmt.Errorf("pipeline target must be positive, got %d", c.Pipeline.Target)
	}
	if c.Pipeline.ScanLimit < c.Pipeline.Target {
		return fmt.Errorf("pipeline scan_limit (%d) must be >= target (%d)", c.Pipeline.ScanLimit, c.Pipeline.Target)
	}
	if _, err := time.ParseDuration(c.Sentiment.Timeout); err != nil {
		return fmt.Errorf("invalid sentiment timeout %q: %w", c.Sentiment.Timeout, err)
	}
	if c.LLM.Provider != "claude" && c.LLM.Provider != "gemini" && c.LLM.Provider != "rules" {
		return fmt.Errorf("invalid llm provider %q: must be 'claude', 'gemini' or 'rules'", c.LLM.Provider)
	}
	if c.Scheduler.Enabled {
		if _, err := cron.ParseStandard(c.Scheduler.Schedule); err != nil {
			return fmt.Errorf("invalid scheduler schedule %q: %w", c.Scheduler.Schedule, err)
		}
		if len(c.Scheduler.Watchlist) == 0 {
			return fmt.Errorf("scheduler enabled but watchlist is empty")
		}
	}
	return nil
}
