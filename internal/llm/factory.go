package llm

import (
	"fmt"
	"strings"
)

// NewProvider creates a generation provider based on configuration.
// An empty provider name disables generation (returns nil, nil);
// the pipeline then serves fallback content only.
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "grok", "xai":
		return NewGrokProvider(config, "grok")

	case "openai":
		if config.BaseURL == "" {
			config.BaseURL = openaiBaseURL
		}
		return NewGrokProvider(config, "openai")

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: grok, openai)", config.Provider)
	}
}
