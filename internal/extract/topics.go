package extract

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/akarpov/feedlens/internal/model"
)

const maxFallbackTopics = 8

var wordPattern = regexp.MustCompile(`\b[a-z]{4,}\b`)

// stopwords filtered from fallback keyword extraction. Includes artifacts
// of the mock-context placeholder so they never surface as topics.
var stopwords = map[string]struct{}{
	"that": {}, "this": {}, "with": {}, "from": {}, "have": {}, "been": {},
	"will": {}, "about": {}, "their": {}, "would": {}, "there": {}, "could": {},
	"when": {}, "what": {}, "which": {}, "these": {}, "those": {}, "some": {},
	"more": {}, "than": {}, "other": {}, "such": {}, "into": {}, "only": {},
	"also": {}, "then": {}, "them": {}, "your": {}, "just": {}, "like": {},
	"much": {}, "make": {}, "made": {}, "many": {}, "over": {}, "posts": {},
	"user": {}, "mock": {}, "context": {}, "placeholder": {}, "testing": {},
	"purposes": {}, "real": {}, "scenario": {}, "contain": {}, "actual": {},
	"results": {}, "search": {},
}

// FallbackTopics extracts topics from raw context text by keyword frequency.
// Used as a last resort when the LLM topic extraction fails; never errors.
func FallbackTopics(context string) []model.TopicWeight {
	words := wordPattern.FindAllString(strings.ToLower(context), -1)

	counts := make(map[string]int)
	for _, w := range words {
		if _, skip := stopwords[w]; skip {
			continue
		}
		counts[w]++
	}

	if len(counts) == 0 {
		return []model.TopicWeight{{Topic: "General Interest", Weight: 1.0}}
	}

	type wordCount struct {
		word  string
		count int
	}
	ranked := make([]wordCount, 0, len(counts))
	for w, c := range counts {
		ranked = append(ranked, wordCount{w, c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].word < ranked[j].word
	})

	if len(ranked) > maxFallbackTopics {
		ranked = ranked[:maxFallbackTopics]
	}

	topics := make([]model.TopicWeight, len(ranked))
	for i, wc := range ranked {
		topics[i] = model.TopicWeight{
			Topic:  strings.ToUpper(wc.word[:1]) + wc.word[1:],
			Weight: float64(wc.count),
		}
	}

	return NormalizeWeights(topics)
}

// NormalizeWeights rescales topic weights so they sum to exactly 1.0,
// rounded to three decimal places. Zero or negative totals are left as-is.
func NormalizeWeights(topics []model.TopicWeight) []model.TopicWeight {
	var total float64
	for _, t := range topics {
		total += t.Weight
	}
	if total <= 0 {
		return topics
	}

	normalized := make([]model.TopicWeight, len(topics))
	for i, t := range topics {
		normalized[i] = model.TopicWeight{
			Topic:  t.Topic,
			Weight: math.Round(t.Weight/total*1000) / 1000,
		}
	}
	return normalized
}
