package llm

import (
	"fmt"
	"strings"

	"github.com/akarpov/feedlens/internal/model"
)

// Context passed to the topic and report prompts is truncated so one
// oversized search result cannot blow the token budget.
const (
	contextLimitTopics   = 4000
	contextLimitReport   = 1000
	contextLimitInsights = 1500
)

// BuildContextPrompt asks for a summary of the user's recent X activity
func BuildContextPrompt(username string) string {
	return fmt.Sprintf(`Summarize the recent public X activity of @%s from the past 30 days: topics they post about, accounts and conversations they engage with, media they share, and their posting patterns. Write a compact factual summary suitable as input for further analysis.`, username)
}

// BuildTopicsPrompt asks for weighted interest topics as strict JSON
func BuildTopicsPrompt(context string) string {
	return fmt.Sprintf(`CONTEXT: You're analyzing a LIMITED SAMPLE (approximately 1-20 posts) of a user's X activity to demonstrate how X's recommendation algorithm would personalize their feed. This is for an educational simulator.

Based on this limited sample, extract the main topics or interests. Weight each topic 0-1 by frequency, recency, and engagement indicators. Return the top 5-10 topics, ensuring diversity (no repetitive similar topics).

CRITICAL: The weights MUST be normalized so that they sum to exactly 1.0.

Respond with a JSON object of this exact shape:
{"topics": [{"topic": "string", "weight": 0.0}]}

User Activity Sample: %s`, truncate(context, contextLimitTopics))
}

// BuildInsightsPrompt asks for quick rotating observations as strict JSON
func BuildInsightsPrompt(username, context string) string {
	return fmt.Sprintf(`Based on this X user's activity, generate 10 quick, interesting insights that reveal patterns in their behavior. These will be shown to the user while their full analysis loads.

Keep each insight:
- Short (1-2 sentences max)
- Specific and data-driven when possible
- Varied (topics, engagement style, network, timing, content preferences)
- Neutral/positive tone

Avoid generic statements like "You post about technology." Be specific.

Respond with a JSON object of this exact shape:
{"insights": ["string"]}

Username: @%s
Activity Data: %s`, username, truncate(context, contextLimitInsights))
}

// BuildReportPrompt asks the reasoning model for the full algorithm report
func BuildReportPrompt(topics []model.TopicWeight, context string) string {
	pairs := make([]string, len(topics))
	for i, t := range topics {
		pairs[i] = fmt.Sprintf("%s (weight: %.2f)", t.Topic, t.Weight)
	}

	return fmt.Sprintf(`CONTEXT: You are generating an educational simulator report that demonstrates how X's recommendation algorithm would adjust based on a LIMITED SAMPLE (1-20 posts) of user activity. Be realistic about the limited data available.

USER INTEREST SIGNALS DETECTED: %s
USER ACTIVITY SAMPLE: %s

Generate a technical, analytical report on how the recommendation algorithm would adjust for this user. Use technical language, be specific with metrics and percentages, and avoid conversational tone. This should read like an internal engineering report.

Respond with a JSON object of this exact shape:
{
  "analysis_process": "string",
  "signals_boosted": [{"name": "string", "adjustment": "+40%%", "reason": "string"}],
  "signals_reduced": [{"name": "string", "adjustment": "-30%%", "reason": "string"}],
  "feed_composition": {"increase": ["string"], "decrease": ["string"], "account_distribution": "string"},
  "quality_metrics": {"prioritized_signals": ["string"], "spam_filters": ["string"], "diversity_mechanisms": ["string"]},
  "diversity_metrics": {"diversity_score": 0, "topic_entropy": 0.0, "echo_chamber_risk": "Low|Moderate|High", "explanation": "string"},
  "opposing_viewpoints": {"included": true, "topics": ["string"], "reasoning": "string"},
  "temporal_analysis": {"recency_bias": "string", "content_mix": "string", "freshness_percentage": "string"},
  "recommendation_explanations": [{"signal": "string", "why": "string", "expected_impact": "string"}],
  "expected_outcome": "string"
}

Rules:
- Feed composition uses RELATIVE percentage changes from baseline, not absolute allocations.
- diversity_score is 0-100, topic_entropy is 0-1.
- Provide 3-4 recommendation_explanations.
- Acknowledge in analysis_process and expected_outcome that this is a simulation from a small sample.`,
		strings.Join(pairs, ", "), truncate(context, contextLimitReport))
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
