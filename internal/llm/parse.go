package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/akarpov/feedlens/internal/extract"
	"github.com/akarpov/feedlens/internal/model"
)

// DecodeError reports a payload that could not be turned into a typed value.
// The generator is free-form, so every decode runs through this boundary:
// either a fully-typed result comes out, or a DecodeError, never a partially
// populated struct accessed optimistically.
type DecodeError struct {
	What   string // which payload ("report", "topics", "insights")
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %s", e.What, e.Reason)
}

// ParseTopics decodes and normalizes the topic-extraction payload.
// Weights are clamped to [0,1], capped at 10 topics, and renormalized
// to sum to 1.0.
func ParseTopics(raw string) ([]model.TopicWeight, error) {
	var payload struct {
		Topics []model.TopicWeight `json:"topics"`
	}
	if err := json.Unmarshal([]byte(stripFences(raw)), &payload); err != nil {
		return nil, &DecodeError{What: "topics", Reason: err.Error()}
	}
	if len(payload.Topics) == 0 {
		return nil, &DecodeError{What: "topics", Reason: "no topics in payload"}
	}

	topics := payload.Topics
	if len(topics) > 10 {
		topics = topics[:10]
	}
	for i := range topics {
		topics[i].Weight = clamp(topics[i].Weight, 0, 1)
	}

	return extract.NormalizeWeights(topics), nil
}

// ParseInsights decodes the quick-insights payload, capped at 12 entries
func ParseInsights(raw string) ([]string, error) {
	var payload struct {
		Insights []string `json:"insights"`
	}
	if err := json.Unmarshal([]byte(stripFences(raw)), &payload); err != nil {
		return nil, &DecodeError{What: "insights", Reason: err.Error()}
	}
	if len(payload.Insights) == 0 {
		return nil, &DecodeError{What: "insights", Reason: "no insights in payload"}
	}

	if len(payload.Insights) > 12 {
		return payload.Insights[:12], nil
	}
	return payload.Insights, nil
}

// ParseReport decodes the full report payload and clamps numeric fields
// into their documented ranges. An out-of-enum echo_chamber_risk label is
// kept verbatim; the presentation layer degrades it to the warning tier.
func ParseReport(raw string) (*model.AlgorithmReport, error) {
	var report model.AlgorithmReport
	if err := json.Unmarshal([]byte(stripFences(raw)), &report); err != nil {
		return nil, &DecodeError{What: "report", Reason: err.Error()}
	}

	if strings.TrimSpace(report.AnalysisProcess) == "" {
		return nil, &DecodeError{What: "report", Reason: "missing analysis_process"}
	}
	if strings.TrimSpace(report.ExpectedOutcome) == "" {
		return nil, &DecodeError{What: "report", Reason: "missing expected_outcome"}
	}

	report.DiversityMetrics.DiversityScore = clamp(report.DiversityMetrics.DiversityScore, 0, 100)
	report.DiversityMetrics.TopicEntropy = clamp(report.DiversityMetrics.TopicEntropy, 0, 1)

	return &report, nil
}

// stripFences removes a markdown code fence wrapper if the model added one
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
