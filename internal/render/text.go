package render

import (
	"fmt"
	"io"
	"strings"
)

const rule = "═══════════════════════════════════════════════════════════"

// Text renders the view for the terminal
func Text(w io.Writer, view *View) {
	fmt.Fprintf(w, "%s\n", rule)
	fmt.Fprintf(w, "  Recommendation Algorithm Report — @%s\n", view.Username)
	fmt.Fprintf(w, "%s\n\n", rule)

	if len(view.Topics) > 0 {
		fmt.Fprintf(w, "Detected interests:\n")
		for _, t := range view.Topics {
			fmt.Fprintf(w, "  • %s (%d%%)\n", t.Label, t.Percent)
		}
		fmt.Fprintln(w)
	}

	section(w, "Analysis process")
	fmt.Fprintf(w, "%s\n\n", view.AnalysisProcess)

	section(w, "Signals boosted")
	writeSignals(w, view.Boosted)

	section(w, "Signals reduced")
	writeSignals(w, view.Reduced)

	section(w, "Feed composition")
	writeList(w, "Increasing", view.Composition.Increase)
	writeList(w, "Decreasing", view.Composition.Decrease)
	fmt.Fprintf(w, "  Account distribution: %s\n\n", view.Composition.Distribution)

	section(w, "Quality metrics")
	writeList(w, "Prioritized signals", view.Quality.Prioritized)
	writeList(w, "Spam filters", view.Quality.SpamFilters)
	writeList(w, "Diversity mechanisms", view.Quality.Diversity)
	fmt.Fprintln(w)

	section(w, "Diversity metrics")
	fmt.Fprintf(w, "  Diversity score:   %.0f/100 [%s]\n", view.Diversity.Score, view.Diversity.ScoreTier)
	fmt.Fprintf(w, "  Topic entropy:     %d%%\n", view.Diversity.EntropyPct)
	fmt.Fprintf(w, "  Echo chamber risk: %s [%s]\n", view.Diversity.Risk, view.Diversity.RiskTier)
	fmt.Fprintf(w, "  %s\n\n", view.Diversity.Explanation)

	if view.Opposing != nil {
		section(w, "Opposing viewpoints")
		for _, topic := range view.Opposing.Topics {
			fmt.Fprintf(w, "  • %s\n", topic)
		}
		fmt.Fprintf(w, "  %s\n\n", view.Opposing.Reasoning)
	}

	section(w, "Temporal analysis")
	fmt.Fprintf(w, "  Recency bias: %s\n", view.Temporal.RecencyBias)
	fmt.Fprintf(w, "  Content mix:  %s\n", view.Temporal.ContentMix)
	fmt.Fprintf(w, "  Freshness:    %s\n\n", view.Temporal.Freshness)

	if len(view.Explanations) > 0 {
		section(w, "Why these recommendations")
		for _, e := range view.Explanations {
			fmt.Fprintf(w, "  • %s: %s (%s)\n", e.Signal, e.Why, e.ExpectedImpact)
		}
		fmt.Fprintln(w)
	}

	section(w, "Expected outcome")
	fmt.Fprintf(w, "%s\n\n", view.ExpectedOutcome)

	fmt.Fprintf(w, "Tokens: %d completion, %d reasoning, %d total\n",
		view.Tokens.CompletionTokens, view.Tokens.ReasoningTokens, view.Tokens.TotalTokens)
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "## %s\n", title)
}

func writeSignals(w io.Writer, rows []SignalRow) {
	if len(rows) == 0 {
		fmt.Fprintf(w, "  (none)\n\n")
		return
	}
	for _, s := range rows {
		fmt.Fprintf(w, "  %s %s — %s\n", pad(s.Adjustment, 6), s.Name, s.Reason)
	}
	fmt.Fprintln(w)
}

func writeList(w io.Writer, label string, items []string) {
	fmt.Fprintf(w, "  %s:\n", label)
	for _, item := range items {
		fmt.Fprintf(w, "    • %s\n", item)
	}
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
