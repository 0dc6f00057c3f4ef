package render

import (
	"github.com/akarpov/feedlens/internal/model"
	"github.com/akarpov/feedlens/internal/score"
)

// View is the fully assembled, display-ready report. Free text from the
// report passes through verbatim; all derived values (tiers, opacities,
// percentages) are computed here so the templates stay logic-free.
type View struct {
	Username string
	Topics   []TopicBadge

	AnalysisProcess string
	Boosted         []SignalRow
	Reduced         []SignalRow
	Composition     CompositionView
	Quality         QualityView
	Diversity       DiversityView
	Temporal        TemporalView

	// Opposing is nil when the report's inclusion flag is false;
	// the section is then absent from every rendering.
	Opposing *OpposingView

	// Explanations renders only when non-empty
	Explanations []ExplanationRow

	ExpectedOutcome string
	Tokens          model.TokenUsage
}

// TopicBadge is one interest badge, opacity-scaled by weight
type TopicBadge struct {
	Label   string
	Percent int     // weight as whole-number percentage
	Opacity float64 // 0.4 + weight*0.6
}

// SignalRow is one boosted or reduced signal
type SignalRow struct {
	Name       string
	Adjustment string
	Reason     string
}

// CompositionView mirrors the feed composition changes
type CompositionView struct {
	Increase     []string
	Decrease     []string
	Distribution string
}

// QualityView mirrors the applied quality metrics
type QualityView struct {
	Prioritized []string
	SpamFilters []string
	Diversity   []string
}

// DiversityView carries diversity numbers plus their display tiers
type DiversityView struct {
	Score       float64
	ScoreTier   score.TierLevel
	EntropyPct  int
	Risk        string
	RiskTier    score.TierLevel
	Explanation string
}

// TemporalView mirrors the temporal analysis
type TemporalView struct {
	RecencyBias string
	ContentMix  string
	Freshness   string
}

// OpposingView mirrors the opposing-viewpoints block
type OpposingView struct {
	Topics    []string
	Reasoning string
}

// ExplanationRow is one "why this recommendation" entry
type ExplanationRow struct {
	Signal         string
	Why            string
	ExpectedImpact string
}

// Assemble maps an analysis response into the display view
func Assemble(username string, resp *model.AnalyzeResponse) *View {
	report := resp.Recommendations.Report

	badges := make([]TopicBadge, len(resp.Topics))
	for i, t := range resp.Topics {
		badges[i] = TopicBadge{
			Label:   t.Topic,
			Percent: score.Percent(t.Weight),
			Opacity: score.BadgeOpacity(t.Weight),
		}
	}

	view := &View{
		Username:        username,
		Topics:          badges,
		AnalysisProcess: report.AnalysisProcess,
		Boosted:         signalRows(report.SignalsBoosted),
		Reduced:         signalRows(report.SignalsReduced),
		Composition: CompositionView{
			Increase:     report.FeedComposition.Increase,
			Decrease:     report.FeedComposition.Decrease,
			Distribution: report.FeedComposition.AccountDistribution,
		},
		Quality: QualityView{
			Prioritized: report.QualityMetrics.PrioritizedSignals,
			SpamFilters: report.QualityMetrics.SpamFilters,
			Diversity:   report.QualityMetrics.DiversityMechanisms,
		},
		Diversity: DiversityView{
			Score:       report.DiversityMetrics.DiversityScore,
			ScoreTier:   score.Tier(report.DiversityMetrics.DiversityScore),
			EntropyPct:  score.Percent(report.DiversityMetrics.TopicEntropy),
			Risk:        report.DiversityMetrics.EchoChamberRisk,
			RiskTier:    score.RiskTier(report.DiversityMetrics.EchoChamberRisk),
			Explanation: report.DiversityMetrics.Explanation,
		},
		Temporal: TemporalView{
			RecencyBias: report.TemporalAnalysis.RecencyBias,
			ContentMix:  report.TemporalAnalysis.ContentMix,
			Freshness:   report.TemporalAnalysis.FreshnessPercentage,
		},
		ExpectedOutcome: report.ExpectedOutcome,
		Tokens:          resp.Recommendations.Tokens,
	}

	if report.OpposingViewpoints.Included {
		view.Opposing = &OpposingView{
			Topics:    report.OpposingViewpoints.Topics,
			Reasoning: report.OpposingViewpoints.Reasoning,
		}
	}

	for _, e := range report.Explanations {
		view.Explanations = append(view.Explanations, ExplanationRow{
			Signal:         e.Signal,
			Why:            e.Why,
			ExpectedImpact: e.ExpectedImpact,
		})
	}

	return view
}

func signalRows(signals []model.Signal) []SignalRow {
	rows := make([]SignalRow, len(signals))
	for i, s := range signals {
		rows[i] = SignalRow{
			Name:       s.Name,
			Adjustment: s.Adjustment,
			Reason:     s.Reason,
		}
	}
	return rows
}
