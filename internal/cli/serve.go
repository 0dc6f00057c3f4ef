package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/akarpov/feedlens/internal/model"
	"github.com/akarpov/feedlens/internal/pipeline"
	"github.com/akarpov/feedlens/internal/server"
)

var (
	serveAddr   string
	serveAPIKey string
	serveRPM    int
	serveBurst  int
	llmProvider string
	llmBaseURL  string
	llmTimeout  time.Duration
	noCache     bool
	cacheDir    string
	httpProxy   string
	httpsProxy  string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the feedlens HTTP API",
	Long: `Serve exposes the analysis pipeline over HTTP:
- POST /insights  fast quick-observations endpoint
- POST /analyze   full report generation
- GET  /report    server-rendered HTML report page
- GET  /healthz   liveness probe

API endpoints require the X-API-Key header and are rate limited per
client IP.

Example:
  feedlens serve
  feedlens serve --addr :9000 --api-key demo-key
  XAI_API_KEY=xai-... feedlens serve --llm-provider grok`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8000", "listen address")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "required X-API-Key value (empty disables auth)")
	serveCmd.Flags().IntVar(&serveRPM, "rate-limit", 10, "requests per minute per client IP")
	serveCmd.Flags().IntVar(&serveBurst, "rate-burst", 10, "rate limit burst size")

	serveCmd.Flags().StringVar(&llmProvider, "llm-provider", "grok", "LLM provider (grok, openai; empty disables the LLM)")
	serveCmd.Flags().StringVar(&llmBaseURL, "llm-base-url", "", "override provider base URL")
	serveCmd.Flags().DurationVar(&llmTimeout, "llm-timeout", 2*time.Minute, "per-request LLM timeout")

	serveCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable user context caching")
	serveCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "disk cache directory (empty: memory only)")

	serveCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	serveCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Server.Addr = serveAddr
	if serveAPIKey != "" {
		cfg.Server.APIKey = serveAPIKey
	}
	cfg.Server.RateLimit.RequestsPerMinute = float64(serveRPM)
	cfg.Server.RateLimit.Burst = serveBurst

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}
	srv := server.NewServer(p, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if verbose {
		fmt.Fprintf(os.Stderr, "Provider: %s\n", cfg.LLM.Provider)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintf(os.Stderr, "Rate limit: %.0f req/min\n", cfg.Server.RateLimit.RequestsPerMinute)
	}

	return srv.Run(ctx)
}

// buildConfig assembles configuration shared by the serve, analyze,
// and batch commands from defaults, flags, and environment variables.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose
	cfg.Cache.Enabled = !noCache
	if cacheDir != "" {
		cfg.Cache.Dir = cacheDir
	}
	cfg.LLM.HTTPProxy = httpProxy
	cfg.LLM.HTTPSProxy = httpsProxy
	if llmTimeout > 0 {
		cfg.LLM.Timeout = int(llmTimeout.Seconds())
	}
	if llmBaseURL != "" {
		cfg.LLM.BaseURL = llmBaseURL
	}

	cfg.LLM.Provider = llmProvider
	switch llmProvider {
	case "grok", "xai":
		cfg.LLM.APIKey = os.Getenv("XAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			fmt.Fprintln(os.Stderr, "Warning: XAI_API_KEY not set, responses will use fixed fallbacks")
			cfg.LLM.Provider = ""
		}
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "":
		// LLM disabled, fallbacks everywhere
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", llmProvider)
	}

	if key := os.Getenv("FEEDLENS_API_KEY"); key != "" {
		cfg.Server.APIKey = key
	}

	return cfg, nil
}
