// Package client is the Go consumer of the feedlens API. It issues the
// fast insights call and the slow analyze call concurrently so total
// latency is bounded by the slower of the two.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/akarpov/feedlens/internal/model"
)

// Client calls the feedlens HTTP API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	// latest is the token of the newest submission; older submissions
	// are stale and their results must be discarded by the caller
	latest atomic.Uint64
}

// NewClient creates an API client
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 5 * time.Minute
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FallbackInsights is the single-element sequence shown when the fast
// path fails; rotation still works against it (index stays 0).
func FallbackInsights(username string) []string {
	return []string{fmt.Sprintf("Analyzing @%s's activity...", username)}
}

// Insights fetches the fast-path observation list. Best-effort: any
// transport, status, or decode failure yields the fallback sequence,
// never an error.
func (c *Client) Insights(ctx context.Context, username string) []string {
	body, err := c.post(ctx, "/insights", model.InsightsRequest{Username: username})
	if err != nil {
		return FallbackInsights(username)
	}

	var resp model.InsightsResponse
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Insights) == 0 {
		return FallbackInsights(username)
	}
	return resp.Insights
}

// Analyze fetches the authoritative report. Non-2xx status or transport
// failure is fatal to the submission; there is no retry.
func (c *Client) Analyze(ctx context.Context, username string) (*model.AnalyzeResponse, error) {
	body, err := c.post(ctx, "/analyze", model.AnalyzeRequest{Username: username})
	if err != nil {
		return nil, err
	}

	var resp model.AnalyzeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode analyze response: %w", err)
	}
	return &resp, nil
}

// Submission is the outcome of one concurrent fast/slow request pair
type Submission struct {
	Username string
	Insights []string
	Response *model.AnalyzeResponse
	Err      error

	token  uint64
	client *Client
}

// Stale reports whether a newer submission has been issued since this
// one; stale results must not overwrite a newer display.
func (s *Submission) Stale() bool {
	return s.client.latest.Load() != s.token
}

// Submit fires both calls concurrently and waits for both. The fast
// path cannot fail; Err carries the slow-path outcome.
func (c *Client) Submit(ctx context.Context, username string) *Submission {
	sub := &Submission{
		Username: username,
		token:    c.latest.Add(1),
		client:   c,
	}

	var g errgroup.Group
	g.Go(func() error {
		sub.Insights = c.Insights(ctx, username)
		return nil
	})
	g.Go(func() error {
		sub.Response, sub.Err = c.Analyze(ctx, username)
		return nil
	})
	_ = g.Wait()

	return sub
}

// SubmitAsync fires both calls and delivers the insights as soon as
// they land, then the submission once the slow path resolves. Used by
// the CLI to rotate insights while the report is outstanding.
func (c *Client) SubmitAsync(ctx context.Context, username string) (<-chan []string, <-chan *Submission) {
	insightsCh := make(chan []string, 1)
	done := make(chan *Submission, 1)

	sub := &Submission{
		Username: username,
		token:    c.latest.Add(1),
		client:   c,
	}

	go func() {
		insights := c.Insights(ctx, username)
		sub.Insights = insights
		insightsCh <- insights
	}()

	go func() {
		sub.Response, sub.Err = c.Analyze(ctx, username)
		done <- sub
	}()

	return insightsCh, done
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s failed: status %d", path, resp.StatusCode)
	}

	return body, nil
}
