package render

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/akarpov/feedlens/internal/model"
	"github.com/akarpov/feedlens/internal/score"
)

func sampleResponse() *model.AnalyzeResponse {
	return &model.AnalyzeResponse{
		Topics: []model.TopicWeight{
			{Topic: "SpaceX", Weight: 1.0},
			{Topic: "AI", Weight: 0.0},
		},
		Recommendations: model.Recommendations{
			Report: model.AlgorithmReport{
				AnalysisProcess: "Sampled 12 posts.",
				SignalsBoosted: []model.Signal{
					{Name: "SpaceX content", Adjustment: "+40%", Reason: "High engagement"},
				},
				SignalsReduced: []model.Signal{
					{Name: "Generic news", Adjustment: "-20%", Reason: "Low relevance"},
				},
				FeedComposition: model.FeedComposition{
					Increase:            []string{"Launch threads"},
					Decrease:            []string{"Politics"},
					AccountDistribution: "15% more small accounts",
				},
				QualityMetrics: model.QualityMetrics{
					PrioritizedSignals:  []string{"Reply depth"},
					SpamFilters:         []string{"Engagement bait"},
					DiversityMechanisms: []string{"Topic rotation"},
				},
				DiversityMetrics: model.DiversityMetrics{
					DiversityScore:  71,
					TopicEntropy:    0.8,
					EchoChamberRisk: model.RiskLow,
					Explanation:     "Varied interests",
				},
				OpposingViewpoints: model.OpposingViewpoints{
					Included:  true,
					Topics:    []string{"Nuclear policy"},
					Reasoning: "Balance",
				},
				TemporalAnalysis: model.TemporalAnalysis{
					RecencyBias:         "High",
					ContentMix:          "Mostly fresh",
					FreshnessPercentage: "~70% under 24h",
				},
				Explanations: []model.RecommendationExplanation{
					{Signal: "SpaceX content", Why: "Frequent engagement", ExpectedImpact: "More launch threads"},
				},
				ExpectedOutcome: "Feed tilts toward spaceflight.",
			},
			Tokens: model.TokenUsage{CompletionTokens: 100, ReasoningTokens: 40, TotalTokens: 180},
		},
	}
}

func TestAssemble_BadgeScaling(t *testing.T) {
	view := Assemble("elonmusk", sampleResponse())

	// weight 1.0 -> opacity 1.0, weight 0.0 -> opacity 0.4
	if math.Abs(view.Topics[0].Opacity-1.0) > 1e-9 {
		t.Errorf("opacity for weight 1.0 = %v, want 1.0", view.Topics[0].Opacity)
	}
	if math.Abs(view.Topics[1].Opacity-0.4) > 1e-9 {
		t.Errorf("opacity for weight 0.0 = %v, want 0.4", view.Topics[1].Opacity)
	}
	if view.Topics[0].Percent != 100 || view.Topics[1].Percent != 0 {
		t.Errorf("unexpected percentages: %d, %d", view.Topics[0].Percent, view.Topics[1].Percent)
	}
}

func TestAssemble_DiversityTiers(t *testing.T) {
	resp := sampleResponse()

	resp.Recommendations.Report.DiversityMetrics.DiversityScore = 71
	if view := Assemble("u", resp); view.Diversity.ScoreTier != score.TierFavorable {
		t.Errorf("score 71: tier %s, want favorable", view.Diversity.ScoreTier)
	}

	resp.Recommendations.Report.DiversityMetrics.DiversityScore = 70
	if view := Assemble("u", resp); view.Diversity.ScoreTier != score.TierCaution {
		t.Errorf("score 70: tier %s, want caution", view.Diversity.ScoreTier)
	}

	resp.Recommendations.Report.DiversityMetrics.DiversityScore = 50
	if view := Assemble("u", resp); view.Diversity.ScoreTier != score.TierWarning {
		t.Errorf("score 50: tier %s, want warning", view.Diversity.ScoreTier)
	}

	resp.Recommendations.Report.DiversityMetrics.DiversityScore = 49.9
	if view := Assemble("u", resp); view.Diversity.ScoreTier != score.TierWarning {
		t.Errorf("score 49.9: tier %s, want warning", view.Diversity.ScoreTier)
	}
}

func TestAssemble_OpposingConditional(t *testing.T) {
	resp := sampleResponse()

	view := Assemble("u", resp)
	if view.Opposing == nil {
		t.Fatal("expected opposing section when included")
	}

	resp.Recommendations.Report.OpposingViewpoints.Included = false
	view = Assemble("u", resp)
	if view.Opposing != nil {
		t.Error("expected opposing section to be absent when not included")
	}
}

func TestAssemble_FreeTextVerbatim(t *testing.T) {
	resp := sampleResponse()
	view := Assemble("elonmusk", resp)

	if view.AnalysisProcess != "Sampled 12 posts." {
		t.Errorf("analysis process not verbatim: %q", view.AnalysisProcess)
	}
	if view.Temporal.Freshness != "~70% under 24h" {
		t.Errorf("freshness not verbatim: %q", view.Temporal.Freshness)
	}

	wantBoosted := []SignalRow{{Name: "SpaceX content", Adjustment: "+40%", Reason: "High engagement"}}
	if diff := cmp.Diff(wantBoosted, view.Boosted); diff != "" {
		t.Errorf("boosted signals mismatch (-want +got):\n%s", diff)
	}
}

func TestAssemble_ExplanationsConditional(t *testing.T) {
	resp := sampleResponse()
	resp.Recommendations.Report.Explanations = nil

	view := Assemble("u", resp)
	if len(view.Explanations) != 0 {
		t.Error("expected no explanation rows")
	}
}

func TestAssemble_UnknownRiskDegrades(t *testing.T) {
	resp := sampleResponse()
	resp.Recommendations.Report.DiversityMetrics.EchoChamberRisk = "Catastrophic"

	view := Assemble("u", resp)
	if view.Diversity.RiskTier != score.TierWarning {
		t.Errorf("unknown risk tier = %s, want warning", view.Diversity.RiskTier)
	}
	if view.Diversity.Risk != "Catastrophic" {
		t.Errorf("risk label not verbatim: %q", view.Diversity.Risk)
	}
}
