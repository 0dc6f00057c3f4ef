package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/akarpov/feedlens/internal/client"
	"github.com/akarpov/feedlens/internal/model"
	"github.com/akarpov/feedlens/internal/pipeline"
	"github.com/akarpov/feedlens/internal/render"
	"github.com/akarpov/feedlens/internal/rotate"
	"github.com/akarpov/feedlens/internal/validate"
)

var (
	serverURL      string
	clientAPIKey   string
	outJSON        bool
	analyzeTimeout time.Duration
	rotateInterval time.Duration
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <username>",
	Short: "Generate a simulated algorithm report for an X username",
	Long: `Analyze synthesizes a recommendation algorithm report for the given
account. While the full report is being generated, quick observations
rotate on stderr so the wait is not silent.

With --server the request goes through a running feedlens API; without
it the pipeline runs in-process (requires XAI_API_KEY or a fallback-only
run).

Example:
  feedlens analyze elonmusk
  feedlens analyze @jack --json
  feedlens analyze jack --server http://localhost:8000 --api-key demo-key`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&serverURL, "server", "", "feedlens API base URL (empty: run in-process)")
	analyzeCmd.Flags().StringVar(&clientAPIKey, "api-key", "", "X-API-Key for the remote API")
	analyzeCmd.Flags().BoolVar(&outJSON, "json", false, "print the raw analysis JSON instead of the report")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 5*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().DurationVar(&rotateInterval, "rotate-interval", rotate.DefaultInterval, "how often the quick observations rotate")

	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "grok", "LLM provider for in-process runs (grok, openai; empty disables the LLM)")
	analyzeCmd.Flags().StringVar(&llmBaseURL, "llm-base-url", "", "override provider base URL")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable user context caching")
}

type analyzeOutcome struct {
	resp *model.AnalyzeResponse
	err  error
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	username := validate.Normalize(args[0])
	if err := validate.Username(username); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	insightsCh, done, err := startAnalysis(ctx, username)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: @%s\n", username)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", analyzeTimeout)
		fmt.Fprintln(os.Stderr)
	}

	var rot *rotate.Rotator
	var ticks <-chan string
	defer func() {
		if rot != nil {
			rot.Stop()
		}
	}()

	for {
		select {
		case insights := <-insightsCh:
			insightsCh = nil
			rot, err = rotate.New(insights, rotateInterval)
			if err != nil {
				rot, _ = rotate.New(client.FallbackInsights(username), rotateInterval)
			}
			rot.Start()
			ticks = rot.Ticks()
			fmt.Fprintf(os.Stderr, "⚙️  %s\n", rot.Current())

		case entry := <-ticks:
			fmt.Fprintf(os.Stderr, "⚙️  %s\n", entry)

		case out := <-done:
			if rot != nil {
				rot.Stop()
			}
			return finishAnalysis(username, out)

		case <-ctx.Done():
			return fmt.Errorf("analysis timed out after %v", analyzeTimeout)
		}
	}
}

// startAnalysis fires the fast and slow paths, either against a remote
// feedlens API or an in-process pipeline.
func startAnalysis(ctx context.Context, username string) (<-chan []string, <-chan analyzeOutcome, error) {
	done := make(chan analyzeOutcome, 1)

	if serverURL != "" {
		c := client.NewClient(serverURL, clientAPIKey, analyzeTimeout)
		insightsCh, subCh := c.SubmitAsync(ctx, username)
		go func() {
			sub := <-subCh
			done <- analyzeOutcome{resp: sub.Response, err: sub.Err}
		}()
		return insightsCh, done, nil
	}

	cfg, err := buildConfig()
	if err != nil {
		return nil, nil, err
	}
	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return nil, nil, err
	}

	insightsCh := make(chan []string, 1)
	go func() {
		insightsCh <- p.QuickInsights(ctx, username)
	}()
	go func() {
		resp, err := p.Analyze(ctx, username)
		done <- analyzeOutcome{resp: resp, err: err}
	}()
	return insightsCh, done, nil
}

func finishAnalysis(username string, out analyzeOutcome) error {
	if out.err != nil {
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
		fmt.Fprintf(os.Stderr, "  Analysis Failed\n")
		fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
		fmt.Fprintf(os.Stderr, "\n  %v\n\n", out.err)
		return out.err
	}

	if outJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out.resp)
	}

	render.Text(os.Stdout, render.Assemble(username, out.resp))

	if verbose {
		tokens := out.resp.Recommendations.Tokens
		fmt.Fprintf(os.Stderr, "✓ Report generated (%d tokens, %d reasoning)\n", tokens.TotalTokens, tokens.ReasoningTokens)
	}
	return nil
}
