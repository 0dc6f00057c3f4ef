package model

// AlgorithmReport represents the complete simulated recommendation report.
// This schema is the contract the LLM is asked to produce and the renderer consumes.
type AlgorithmReport struct {
	AnalysisProcess    string                      `json:"analysis_process"`                      // Explanation of the analysis reasoning
	SignalsBoosted     []Signal                    `json:"signals_boosted"`                       // Signals being boosted
	SignalsReduced     []Signal                    `json:"signals_reduced"`                       // Signals being reduced
	FeedComposition    FeedComposition             `json:"feed_composition"`                      // Feed composition changes
	QualityMetrics     QualityMetrics              `json:"quality_metrics"`                       // Quality metrics applied
	DiversityMetrics   DiversityMetrics            `json:"diversity_metrics"`                     // Diversity scoring
	OpposingViewpoints OpposingViewpoints          `json:"opposing_viewpoints"`                   // Counter-perspective injection
	TemporalAnalysis   TemporalAnalysis            `json:"temporal_analysis"`                     // Recency/freshness mix
	Explanations       []RecommendationExplanation `json:"recommendation_explanations,omitempty"` // Why these recommendations (3-4 expected)
	ExpectedOutcome    string                      `json:"expected_outcome"`                      // Summary of expected feed changes
}

// Signal represents one algorithmic knob the simulated system claims to move
type Signal struct {
	Name       string `json:"name"`       // Name of the signal
	Adjustment string `json:"adjustment"` // Adjustment label (e.g., "+40%" or "-30%")
	Reason     string `json:"reason"`     // Brief explanation for the adjustment
}

// FeedComposition describes relative feed mix changes
type FeedComposition struct {
	Increase            []string `json:"increase"`             // Content types that will increase
	Decrease            []string `json:"decrease"`             // Content types that will decrease
	AccountDistribution string   `json:"account_distribution"` // Account size distribution statement
}

// QualityMetrics lists the quality machinery the simulation claims to apply
type QualityMetrics struct {
	PrioritizedSignals  []string `json:"prioritized_signals"`  // Signals being prioritized
	SpamFilters         []string `json:"spam_filters"`         // Spam/low-quality filters applied
	DiversityMechanisms []string `json:"diversity_mechanisms"` // Anti-echo-chamber mechanisms
}

// DiversityMetrics carries the numeric diversity scoring for the simulated feed
type DiversityMetrics struct {
	DiversityScore  float64 `json:"diversity_score"`   // 0-100
	TopicEntropy    float64 `json:"topic_entropy"`     // 0-1
	EchoChamberRisk string  `json:"echo_chamber_risk"` // "Low", "Moderate", "High"
	Explanation     string  `json:"explanation"`       // Free text
}

// Echo chamber risk labels the LLM is asked to choose from
const (
	RiskLow      = "Low"
	RiskModerate = "Moderate"
	RiskHigh     = "High"
)

// OpposingViewpoints describes counter-perspective injection.
// The section is only rendered when Included is true.
type OpposingViewpoints struct {
	Included  bool     `json:"included"`
	Topics    []string `json:"topics,omitempty"`
	Reasoning string   `json:"reasoning,omitempty"`
}

// TemporalAnalysis describes the recency mix of the simulated feed
type TemporalAnalysis struct {
	RecencyBias         string `json:"recency_bias"`         // e.g., "High"
	ContentMix          string `json:"content_mix"`          // Mix explanation
	FreshnessPercentage string `json:"freshness_percentage"` // e.g., "~70% of feed under 24h old"
}

// RecommendationExplanation ties one signal to its expected feed impact
type RecommendationExplanation struct {
	Signal         string `json:"signal"`
	Why            string `json:"why"`
	ExpectedImpact string `json:"expected_impact"`
}

// TokenUsage tracks token consumption for informational display only
type TokenUsage struct {
	CompletionTokens int `json:"completion_tokens"`
	ReasoningTokens  int `json:"reasoning_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// TopicWeight pairs an interest topic with its normalized weight (0-1)
type TopicWeight struct {
	Topic  string  `json:"topic"`
	Weight float64 `json:"weight"`
}

// Recommendations bundles the generated report with its token usage
type Recommendations struct {
	Report AlgorithmReport `json:"report"`
	Tokens TokenUsage      `json:"tokens"`
}
