package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/akarpov/feedlens/internal/model"
	"github.com/akarpov/feedlens/internal/util"
)

const (
	xaiBaseURL    = "https://api.x.ai/v1"
	openaiBaseURL = "https://api.openai.com/v1"
)

// GrokProvider implements the Provider interface against any
// OpenAI-compatible chat completions endpoint (xAI Grok, OpenAI).
type GrokProvider struct {
	client *openai.Client
	name   string
	config Config
}

// NewGrokProvider creates a provider for an OpenAI-compatible API
func NewGrokProvider(config Config, name string) (*GrokProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", name)
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	} else if name == "grok" {
		clientConfig.BaseURL = xaiBaseURL
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	clientConfig.HTTPClient = &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: util.NewProxyFunc(config.HTTPProxy, config.HTTPSProxy, config.NoProxy),
		},
	}

	return &GrokProvider{
		client: openai.NewClientWithConfig(clientConfig),
		name:   name,
		config: config,
	}, nil
}

// Name returns the provider name
func (p *GrokProvider) Name() string {
	return p.name
}

// IsAvailable checks if the provider is properly configured
func (p *GrokProvider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.ListModels(ctx)
	return err == nil
}

// Complete runs a single chat completion
func (p *GrokProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if req.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}

	var messages []openai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	chatReq := openai.ChatCompletionRequest{
		Model:     req.Model,
		Messages:  messages,
		MaxTokens: maxTokens,
	}
	if req.JSONOnly {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("%s API error: %w", p.name, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from %s", p.name)
	}

	return &CompletionResponse{
		Content: strings.TrimSpace(resp.Choices[0].Message.Content),
		Model:   resp.Model,
		Usage: model.TokenUsage{
			CompletionTokens: resp.Usage.CompletionTokens,
			ReasoningTokens:  reasoningTokens(resp.Usage),
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// reasoningTokens pulls the reasoning counter when the endpoint reports it
func reasoningTokens(usage openai.Usage) int {
	if usage.CompletionTokensDetails != nil {
		return usage.CompletionTokensDetails.ReasoningTokens
	}
	return 0
}
