package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/akarpov/feedlens/internal/cache"
	"github.com/akarpov/feedlens/internal/extract"
	"github.com/akarpov/feedlens/internal/llm"
	"github.com/akarpov/feedlens/internal/model"
)

// Pipeline orchestrates the complete analysis: gather user context,
// extract weighted topics, generate the algorithm report, and produce
// quick insights for the fast path. Every upstream step is best-effort:
// on provider failure the pipeline degrades to fixed fallback content
// instead of propagating an error.
type Pipeline struct {
	provider llm.Provider // nil = generation disabled, fallbacks only
	cache    cache.Cache  // nil = caching disabled
	config   *model.Config
}

// NewPipeline creates a pipeline from configuration
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("init provider: %w", err)
	}

	var c cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			c = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		} else {
			c = cache.NewMemoryCache(cfg.Cache.MemoryTTL, 10*cfg.Cache.MemoryTTL)
		}
	}

	return &Pipeline{provider: provider, cache: c, config: cfg}, nil
}

// NewPipelineWith creates a pipeline with explicit collaborators (used in tests)
func NewPipelineWith(provider llm.Provider, c cache.Cache, cfg *model.Config) *Pipeline {
	return &Pipeline{provider: provider, cache: c, config: cfg}
}

// UserContext gathers a summary of the user's recent X activity.
// Results are cached per username; failures return placeholder context.
func (p *Pipeline) UserContext(ctx context.Context, username string) string {
	key := cache.ContextKey(username)
	if p.cache != nil {
		if cached, found := p.cache.Get(key); found {
			p.logf("Using cached context for %s\n", username)
			return string(cached)
		}
	}

	if p.provider == nil {
		return llm.FallbackContext(username)
	}

	resp, err := p.provider.Complete(ctx, llm.CompletionRequest{
		Model:  p.config.LLM.ContextModel,
		Prompt: llm.BuildContextPrompt(username),
	})
	if err != nil {
		p.logf("Warning: context gathering failed for %s: %v\n", username, err)
		return llm.FallbackContext(username)
	}

	if p.cache != nil {
		if err := p.cache.Set(key, []byte(resp.Content), 0); err != nil {
			p.logf("Warning: context cache write failed: %v\n", err)
		}
	}
	return resp.Content
}

// Topics extracts weighted interest topics from gathered context.
// Falls back to keyword-frequency extraction on any provider failure.
func (p *Pipeline) Topics(ctx context.Context, userContext string) []model.TopicWeight {
	if p.provider == nil {
		return extract.FallbackTopics(userContext)
	}

	resp, err := p.provider.Complete(ctx, llm.CompletionRequest{
		Model:    p.config.LLM.ContextModel,
		Prompt:   llm.BuildTopicsPrompt(userContext),
		JSONOnly: true,
	})
	if err != nil {
		p.logf("Warning: topic extraction failed: %v\n", err)
		return extract.FallbackTopics(userContext)
	}

	topics, err := llm.ParseTopics(resp.Content)
	if err != nil {
		p.logf("Warning: %v\n", err)
		return extract.FallbackTopics(userContext)
	}
	return topics
}

// Report generates the full algorithm report with the reasoning model.
// Falls back to the fixed report (zero tokens) on any failure.
func (p *Pipeline) Report(ctx context.Context, topics []model.TopicWeight, userContext string) *model.Recommendations {
	if p.provider == nil {
		return llm.FallbackRecommendations(topics)
	}

	resp, err := p.provider.Complete(ctx, llm.CompletionRequest{
		Model:    p.config.LLM.ReasoningModel,
		Prompt:   llm.BuildReportPrompt(topics, userContext),
		JSONOnly: true,
	})
	if err != nil {
		p.logf("Warning: report generation failed: %v\n", err)
		return llm.FallbackRecommendations(topics)
	}

	report, err := llm.ParseReport(resp.Content)
	if err != nil {
		p.logf("Warning: %v\n", err)
		return llm.FallbackRecommendations(topics)
	}

	return &model.Recommendations{
		Report: *report,
		Tokens: resp.Usage,
	}
}

// QuickInsights generates the fast-path observation list for a username.
// Best-effort: any failure yields the fixed fallback sequence.
func (p *Pipeline) QuickInsights(ctx context.Context, username string) []string {
	userContext := p.UserContext(ctx, username)

	if p.provider == nil {
		return llm.FallbackInsights(username)
	}

	resp, err := p.provider.Complete(ctx, llm.CompletionRequest{
		Model:    p.config.LLM.InsightsModel,
		Prompt:   llm.BuildInsightsPrompt(username, userContext),
		JSONOnly: true,
	})
	if err != nil {
		p.logf("Warning: insight generation failed for %s: %v\n", username, err)
		return llm.FallbackInsights(username)
	}

	insights, err := llm.ParseInsights(resp.Content)
	if err != nil {
		p.logf("Warning: %v\n", err)
		return llm.FallbackInsights(username)
	}
	return insights
}

// Analyze runs the full slow path: context, topics, report
func (p *Pipeline) Analyze(ctx context.Context, username string) (*model.AnalyzeResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	userContext := p.UserContext(ctx, username)
	topics := p.Topics(ctx, userContext)
	recs := p.Report(ctx, topics, userContext)

	return &model.AnalyzeResponse{
		Topics:          topics,
		Recommendations: *recs,
	}, nil
}

func (p *Pipeline) logf(format string, args ...interface{}) {
	if p.config != nil && p.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
