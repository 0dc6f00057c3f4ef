package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/akarpov/feedlens/internal/model"
	"github.com/akarpov/feedlens/internal/validate"
)

// Analyzer defines the interface for analyzing one username
type Analyzer interface {
	Analyze(ctx context.Context, username string) (*model.AnalyzeResponse, error)
}

// AnalyzeJob analyzes one username
type AnalyzeJob struct {
	Username string
	Analyzer Analyzer
}

// Execute runs the analysis for the job's username
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	resp, err := j.Analyzer.Analyze(ctx, j.Username)
	return &AnalyzeResult{
		Username: j.Username,
		Response: resp,
		Error:    err,
	}
}

// AnalyzeResult is the outcome of one username analysis
type AnalyzeResult struct {
	Username string
	Response *model.AnalyzeResponse
	Error    error
}

// GetError returns the error from the analysis
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes multiple usernames concurrently
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessUsernames analyzes the given usernames concurrently
func (b *BatchProcessor) ProcessUsernames(ctx context.Context, usernames []string) []*AnalyzeResult {
	if len(usernames) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, username := range usernames {
		pool.Submit(&AnalyzeJob{
			Username: username,
			Analyzer: b.analyzer,
		})
	}

	results := pool.Wait()

	analyzeResults := make([]*AnalyzeResult, len(results))
	for i, result := range results {
		analyzeResults[i] = result.(*AnalyzeResult)
	}
	return analyzeResults
}

// ProcessFile reads usernames from a file and analyzes them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*AnalyzeResult, error) {
	usernames, err := ReadUsernamesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read usernames: %w", err)
	}

	return b.ProcessUsernames(ctx, usernames), nil
}

// ReadUsernamesFromFile reads usernames from a file (one per line).
// Empty lines and # comments are skipped; invalid handles are rejected
// before any network work starts.
func ReadUsernamesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var usernames []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		username := validate.Normalize(line)
		if err := validate.Username(username); err != nil {
			return nil, fmt.Errorf("invalid username %q: %w", line, err)
		}

		if !seen[username] {
			seen[username] = true
			usernames = append(usernames, username)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return usernames, nil
}
