package llm

import (
	"context"

	"github.com/akarpov/feedlens/internal/model"
)

// Provider defines the interface for generation providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete runs a single chat completion
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest contains the input for one completion call
type CompletionRequest struct {
	// Model is the specific model to use (provider-specific)
	Model string

	// System is the system message (optional)
	System string

	// Prompt is the user message
	Prompt string

	// MaxTokens limits the response length (0 = provider default)
	MaxTokens int

	// JSONOnly forces the provider to return a JSON object body
	JSONOnly bool
}

// CompletionResponse contains the model's output
type CompletionResponse struct {
	// Content is the raw response text
	Content string

	// Model is the model that generated the response
	Model string

	// Usage tracks token consumption
	Usage model.TokenUsage
}

// Config holds generation provider configuration
type Config struct {
	// Provider name: "grok", "openai", ""
	Provider string

	// APIKey for the provider
	APIKey string

	// BaseURL for custom endpoints (defaults to xAI for grok)
	BaseURL string

	// Timeout for API requests in seconds
	Timeout int

	// MaxTokens default for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "grok",
		BaseURL:   xaiBaseURL,
		Timeout:   120,
		MaxTokens: 4000,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:   mc.Provider,
		APIKey:     mc.APIKey,
		BaseURL:    mc.BaseURL,
		Timeout:    mc.Timeout,
		MaxTokens:  mc.MaxTokens,
		HTTPProxy:  mc.HTTPProxy,
		HTTPSProxy: mc.HTTPSProxy,
		NoProxy:    mc.NoProxy,
	}
}
