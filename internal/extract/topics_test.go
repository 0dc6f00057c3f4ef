package extract

import (
	"math"
	"strings"
	"testing"

	"github.com/akarpov/feedlens/internal/model"
)

func TestFallbackTopics_FrequencyRanking(t *testing.T) {
	context := strings.Repeat("spacex ", 5) + strings.Repeat("tesla ", 3) + "neuralink"

	topics := FallbackTopics(context)

	if len(topics) != 3 {
		t.Fatalf("Expected 3 topics, got %d", len(topics))
	}
	if topics[0].Topic != "Spacex" {
		t.Errorf("Expected top topic Spacex, got %s", topics[0].Topic)
	}
	if topics[1].Topic != "Tesla" {
		t.Errorf("Expected second topic Tesla, got %s", topics[1].Topic)
	}
	if topics[0].Weight <= topics[1].Weight {
		t.Errorf("Expected weights to be ranked: %v", topics)
	}
}

func TestFallbackTopics_WeightsSumToOne(t *testing.T) {
	topics := FallbackTopics("golang rust python golang rust golang")

	var sum float64
	for _, topic := range topics {
		sum += topic.Weight
	}
	if math.Abs(sum-1.0) > 0.01 {
		t.Errorf("Expected weights to sum to ~1.0, got %v", sum)
	}
}

func TestFallbackTopics_StopwordsFiltered(t *testing.T) {
	// Placeholder-context words must never surface as topics
	topics := FallbackTopics("mock context placeholder testing purposes")

	if len(topics) != 1 || topics[0].Topic != "General Interest" {
		t.Errorf("Expected General Interest fallback, got %v", topics)
	}
}

func TestFallbackTopics_EmptyContext(t *testing.T) {
	topics := FallbackTopics("")

	if len(topics) != 1 {
		t.Fatalf("Expected single fallback topic, got %d", len(topics))
	}
	if topics[0].Topic != "General Interest" || topics[0].Weight != 1.0 {
		t.Errorf("Unexpected fallback topic: %v", topics[0])
	}
}

func TestFallbackTopics_CapsAtEight(t *testing.T) {
	words := []string{
		"alpha", "bravo", "charlie", "delta", "echo",
		"foxtrot", "golf", "hotel", "india", "juliett",
	}
	topics := FallbackTopics(strings.Join(words, " "))

	if len(topics) > 8 {
		t.Errorf("Expected at most 8 topics, got %d", len(topics))
	}
}

func TestNormalizeWeights(t *testing.T) {
	topics := []model.TopicWeight{
		{Topic: "AI", Weight: 3},
		{Topic: "Space", Weight: 1},
	}

	normalized := NormalizeWeights(topics)

	if normalized[0].Weight != 0.75 || normalized[1].Weight != 0.25 {
		t.Errorf("Unexpected normalized weights: %v", normalized)
	}
}

func TestNormalizeWeights_ZeroTotal(t *testing.T) {
	topics := []model.TopicWeight{{Topic: "AI", Weight: 0}}

	normalized := NormalizeWeights(topics)

	if normalized[0].Weight != 0 {
		t.Errorf("Expected zero weights untouched, got %v", normalized)
	}
}
