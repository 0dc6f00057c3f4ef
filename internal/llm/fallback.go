package llm

import (
	"fmt"
	"strings"

	"github.com/akarpov/feedlens/internal/model"
)

// FallbackInsights is the fixed sequence served when insight generation
// fails. The fast path is best-effort: callers never see an error.
func FallbackInsights(username string) []string {
	return []string{
		fmt.Sprintf("Analyzing @%s's recent activity patterns...", username),
		"Detecting primary interest signals...",
		"Mapping engagement behavior across content types...",
		"Identifying network interaction patterns...",
		"Calculating topic weights based on engagement depth...",
		"Analyzing content creation vs consumption balance...",
		"Evaluating temporal activity patterns...",
		"Building personalized recommendation profile...",
	}
}

// FallbackContext is the placeholder served when context gathering fails
func FallbackContext(username string) string {
	return fmt.Sprintf("Mock context for %s: This is a placeholder response for testing purposes. In a real scenario, this would contain actual X search results.", username)
}

// FallbackRecommendations is the fixed report served when generation fails.
// Token counters are zero so the display makes the degradation visible.
func FallbackRecommendations(topics []model.TopicWeight) *model.Recommendations {
	names := make([]string, len(topics))
	for i, t := range topics {
		names[i] = t.Topic
	}

	return &model.Recommendations{
		Report: model.AlgorithmReport{
			AnalysisProcess: fmt.Sprintf("Mock analysis for topics: %s. This is a fallback response for testing.", strings.Join(names, ", ")),
			SignalsBoosted: []model.Signal{
				{Name: "Content relevance", Adjustment: "+30%", Reason: "Matches user interests"},
			},
			SignalsReduced: []model.Signal{
				{Name: "Generic content", Adjustment: "-20%", Reason: "Low relevance"},
			},
			FeedComposition: model.FeedComposition{
				Increase:            []string{"Topic-specific content"},
				Decrease:            []string{"Off-topic posts"},
				AccountDistribution: "Standard distribution",
			},
			QualityMetrics: model.QualityMetrics{
				PrioritizedSignals:  []string{"Engagement rate"},
				SpamFilters:         []string{"Low-quality filter"},
				DiversityMechanisms: []string{"Topic diversity"},
			},
			DiversityMetrics: model.DiversityMetrics{
				DiversityScore:  50,
				TopicEntropy:    0.5,
				EchoChamberRisk: model.RiskModerate,
				Explanation:     "Default diversity profile; no live analysis available.",
			},
			OpposingViewpoints: model.OpposingViewpoints{
				Included: false,
			},
			TemporalAnalysis: model.TemporalAnalysis{
				RecencyBias:         "Moderate",
				ContentMix:          "Standard recency mix",
				FreshnessPercentage: "~50% of feed under 24h old",
			},
			ExpectedOutcome: "Mock outcome: Feed will be adjusted based on user interests.",
		},
		Tokens: model.TokenUsage{},
	}
}
