package model

import "time"

// Config is the complete feedlens configuration, loaded once at startup
// and treated as immutable afterwards.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	LLM         LLMConfig         `yaml:"llm"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr      string          `yaml:"addr"`       // Listen address
	APIKey    string          `yaml:"api_key"`    // Static X-API-Key value clients must present
	RateLimit RateLimitConfig `yaml:"rate_limit"` // Per-client rate limiting
}

// RateLimitConfig configures the per-client-IP limiter
type RateLimitConfig struct {
	RequestsPerMinute float64 `yaml:"requests_per_minute"`
	Burst             int     `yaml:"burst"`
}

// LLMConfig configures the upstream generation provider
type LLMConfig struct {
	Provider       string `yaml:"provider"`        // "grok", "openai", ""
	APIKey         string `yaml:"api_key"`         // Provider API key
	BaseURL        string `yaml:"base_url"`        // API endpoint (default: xAI)
	ContextModel   string `yaml:"context_model"`   // Model for user context gathering
	InsightsModel  string `yaml:"insights_model"`  // Fast model for quick insights
	ReasoningModel string `yaml:"reasoning_model"` // Reasoning model for the full report
	Timeout        int    `yaml:"timeout"`         // seconds
	MaxTokens      int    `yaml:"max_tokens"`

	// Proxy settings for outbound calls
	HTTPProxy  string `yaml:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy"`
	NoProxy    string `yaml:"no_proxy"`
}

// CacheConfig configures user-context caching
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`        // Disk cache directory
	MemoryTTL time.Duration `yaml:"memory_ttl"` // Memory layer TTL
	DiskTTL   time.Duration `yaml:"disk_ttl"`   // Disk layer TTL
}

// ConcurrencyConfig configures batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// OutputConfig configures CLI output behavior
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8000",
			RateLimit: RateLimitConfig{
				RequestsPerMinute: 10,
				Burst:             10,
			},
		},
		LLM: LLMConfig{
			Provider:       "grok",
			BaseURL:        "https://api.x.ai/v1",
			ContextModel:   "grok-4-fast",
			InsightsModel:  "grok-3",
			ReasoningModel: "grok-4-fast-reasoning",
			Timeout:        120,
			MaxTokens:      4000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "",
			MemoryTTL: 5 * time.Minute,
			DiskTTL:   30 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Verbose: false,
		},
	}
}
